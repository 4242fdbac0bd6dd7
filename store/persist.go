package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"nailspa-backend/utils"
)

// persister writes whole records through a KV. Failures are logged and
// counted but never returned: in-memory state stays authoritative.
type persister struct {
	kv  KV
	log *zap.Logger
}

func (p persister) save(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		p.fail(key, err)
		return
	}
	if err := p.kv.Set(ctx, key, string(data)); err != nil {
		p.fail(key, err)
	}
}

type loadResult int

const (
	recordMissing loadResult = iota
	recordInvalid
	recordLoaded
)

// load decodes the record under key into v. Callers must discard v unless
// the result is recordLoaded.
func (p persister) load(ctx context.Context, key string, v interface{}) loadResult {
	raw, found, err := p.kv.Get(ctx, key)
	if err != nil {
		p.log.Error("read record failed", zap.String("key", key), zap.Error(err))
		return recordInvalid
	}
	if !found {
		return recordMissing
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		p.log.Warn("corrupt record, using defaults", zap.String("key", key), zap.Error(err))
		return recordInvalid
	}
	return recordLoaded
}

func (p persister) fail(key string, err error) {
	utils.PersistFailures.WithLabelValues(key).Inc()
	p.log.Error("persist record failed", zap.String("key", key), zap.Error(err))
}
