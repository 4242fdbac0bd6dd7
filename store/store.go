package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Record keys. Each record holds one JSON document and is rewritten in full
// on every mutation.
const (
	KeyBills      = "nailSpaBills"
	KeyServices   = "nailSpaServices"
	KeyCategories = "nailSpaCategories"
	KeySettings   = "nailSpaShopSettings"
)

// Keys lists every record the application owns.
var Keys = []string{KeyBills, KeyServices, KeyCategories, KeySettings}

// KV is the persistence boundary: a flat string store with no transactions.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}
