package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"nailspa-backend/models"
	"nailspa-backend/store"
	"nailspa-backend/utils"
)

// BackupService exports, imports and resets the whole data set.
type BackupService struct {
	kv       store.KV
	bills    *store.BillStore
	catalog  *store.CatalogStore
	settings *store.SettingsStore
	loc      *time.Location
	log      *zap.Logger
	now      func() time.Time
}

func NewBackupService(kv store.KV, bills *store.BillStore, catalog *store.CatalogStore, settings *store.SettingsStore, loc *time.Location, log *zap.Logger) *BackupService {
	return &BackupService{
		kv:       kv,
		bills:    bills,
		catalog:  catalog,
		settings: settings,
		loc:      loc,
		log:      log.Named("backup"),
		now:      time.Now,
	}
}

func (s *BackupService) Export() models.Backup {
	return models.Backup{
		Bills:      s.bills.List(),
		Services:   s.catalog.Services(),
		Categories: s.catalog.Categories(),
		Settings:   s.settings.Get(),
	}
}

// ExportJSON renders the backup document indented by two spaces.
func (s *BackupService) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s.Export(), "", "  ")
}

// Filename names a backup taken now.
func (s *BackupService) Filename() string {
	return fmt.Sprintf("nail-spa-backup-%s.json", s.now().In(s.loc).Format(dateLayout))
}

// Snapshot writes the backup document into dir and returns its path.
func (s *BackupService) Snapshot(dir string) (string, error) {
	data, err := s.ExportJSON()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.Filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type importedSettings struct {
	ShopName  string `json:"shopName"`
	BillTheme string `json:"billTheme"`
}

// Import replaces bills and services, and categories and settings when the
// document carries them. Any decoding problem rejects the whole document
// before a store is touched.
func (s *BackupService) Import(ctx context.Context, data []byte) error {
	if err := s.restore(ctx, data); err != nil {
		utils.BackupImports.WithLabelValues("rejected").Inc()
		s.log.Warn("backup import rejected", zap.Error(err))
		return err
	}
	utils.BackupImports.WithLabelValues("ok").Inc()
	return nil
}

func (s *BackupService) restore(ctx context.Context, data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if !isJSONArray(doc["bills"]) || !isJSONArray(doc["services"]) {
		return ErrInvalidBackup
	}

	var bills []models.Bill
	if err := json.Unmarshal(doc["bills"], &bills); err != nil {
		return fmt.Errorf("%w: bills: %v", ErrInvalidBackup, err)
	}
	var services []models.PredefinedService
	if err := json.Unmarshal(doc["services"], &services); err != nil {
		return fmt.Errorf("%w: services: %v", ErrInvalidBackup, err)
	}

	var categories []models.ServiceCategory
	hasCategories := isJSONArray(doc["categories"])
	if hasCategories {
		if err := json.Unmarshal(doc["categories"], &categories); err != nil {
			return fmt.Errorf("%w: categories: %v", ErrInvalidBackup, err)
		}
	}

	// settings of the wrong shape are ignored
	var settings importedSettings
	if raw, ok := doc["settings"]; ok {
		_ = json.Unmarshal(raw, &settings)
	}

	s.bills.Restore(ctx, bills)
	s.catalog.RestoreServices(ctx, services)
	if hasCategories {
		s.catalog.RestoreCategories(ctx, categories)
	}
	if settings.ShopName != "" || settings.BillTheme != "" {
		s.settings.Update(ctx, models.ShopSettings{ShopName: settings.ShopName, BillTheme: settings.BillTheme})
	}

	s.log.Info("backup imported",
		zap.Int("bills", len(bills)),
		zap.Int("services", len(services)),
		zap.Bool("categories", hasCategories))
	return nil
}

// Reset clears every record and returns the stores to their first-run state.
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	s.bills.Reset()
	s.catalog.Reset(ctx)
	s.settings.Reset()
	s.log.Warn("all data reset")
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
