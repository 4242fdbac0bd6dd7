package models

import (
	"strings"
	"time"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

// ParseDiscountType maps unknown or empty values to DiscountAmount.
func ParseDiscountType(v string) DiscountType {
	if DiscountType(v) == DiscountPercent {
		return DiscountPercent
	}
	return DiscountAmount
}

// ServiceItem is one bill line. It is a snapshot copied from the catalog when the
// line was built: Name and Price are never re-read afterwards, and Price is the
// line-extended total (unit price x Quantity), not a unit price.
type ServiceItem struct {
	ID          string `json:"id"`
	ServiceID   string `json:"serviceId"`
	Name        string `json:"name"`
	VariantName string `json:"variantName,omitempty"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

// Bill is a saved bill. Total is max(0, sum(Items.Price) - discount).
type Bill struct {
	ID            string        `json:"id"`
	CustomerName  string        `json:"customerName"`
	Date          time.Time     `json:"date"`
	Items         []ServiceItem `json:"items"`
	Total         int64         `json:"total"`
	DiscountValue float64       `json:"discountValue"`
	DiscountType  DiscountType  `json:"discountType"`
}

// Normalize fills defaults for bills written before quantities and
// discount types existed. Dates are kept in UTC.
func (b *Bill) Normalize() {
	b.Date = b.Date.UTC()
	if b.Items == nil {
		b.Items = []ServiceItem{}
	}
	for i := range b.Items {
		if b.Items[i].Quantity < 1 {
			b.Items[i].Quantity = 1
		}
	}
	b.DiscountType = ParseDiscountType(string(b.DiscountType))
	if b.DiscountValue < 0 {
		b.DiscountValue = 0
	}
}

// Customer returns the trimmed customer name used for grouping.
func (b Bill) Customer() string {
	return strings.TrimSpace(b.CustomerName)
}
