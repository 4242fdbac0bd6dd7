package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nailspa-backend/models"
)

// GormKV stores records as rows of kv_records. It backs both the sqlite and
// postgres drivers.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV migrates the kv_records table.
func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&models.KVRecord{}); err != nil {
		return nil, err
	}
	return &GormKV{db: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) (string, bool, error) {
	var rec models.KVRecord
	err := g.db.WithContext(ctx).Where("record_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (g *GormKV) Set(ctx context.Context, key, value string) error {
	rec := models.KVRecord{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (g *GormKV) Clear(ctx context.Context) error {
	return g.db.WithContext(ctx).Where("1 = 1").Delete(&models.KVRecord{}).Error
}
