package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"nailspa-backend/models"
)

type SettingsStore struct {
	mu       sync.RWMutex
	settings models.ShopSettings
	p        persister
}

func NewSettingsStore(kv KV, log *zap.Logger) *SettingsStore {
	return &SettingsStore{
		settings: models.DefaultShopSettings(),
		p:        persister{kv: kv, log: log.Named("settings")},
	}
}

func (s *SettingsStore) Load(ctx context.Context) {
	settings := models.DefaultShopSettings()
	var stored models.ShopSettings
	if s.p.load(ctx, KeySettings, &stored) == recordLoaded {
		settings = stored
		settings.Normalize()
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

func (s *SettingsStore) Get() models.ShopSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies the non-empty fields of patch.
func (s *SettingsStore) Update(ctx context.Context, patch models.ShopSettings) models.ShopSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.ShopName != "" {
		s.settings.ShopName = patch.ShopName
	}
	if patch.BillTheme != "" {
		s.settings.BillTheme = patch.BillTheme
	}
	s.p.save(ctx, KeySettings, s.settings)
	return s.settings
}

// Reset restores the defaults without persisting.
func (s *SettingsStore) Reset() {
	s.mu.Lock()
	s.settings = models.DefaultShopSettings()
	s.mu.Unlock()
}
