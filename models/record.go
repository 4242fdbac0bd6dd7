package models

import "time"

// KVRecord is the table row backing the gorm key-value store.
type KVRecord struct {
	Key       string `gorm:"column:record_key;primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVRecord) TableName() string {
	return "kv_records"
}
