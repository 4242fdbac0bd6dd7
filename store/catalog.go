package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nailspa-backend/models"
)

// CatalogStore holds the predefined services and their categories. New
// services go to the head of the list; categories keep creation order.
type CatalogStore struct {
	mu         sync.RWMutex
	services   []models.PredefinedService
	categories []models.ServiceCategory
	p          persister
}

func NewCatalogStore(kv KV, log *zap.Logger) *CatalogStore {
	return &CatalogStore{
		services:   []models.PredefinedService{},
		categories: []models.ServiceCategory{},
		p:          persister{kv: kv, log: log.Named("catalog")},
	}
}

// Load reads both records. A missing services record seeds the default
// catalog and persists it.
func (s *CatalogStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadServices(ctx)

	var categories []models.ServiceCategory
	if s.p.load(ctx, KeyCategories, &categories) != recordLoaded || categories == nil {
		categories = []models.ServiceCategory{}
	}
	s.categories = categories
}

func (s *CatalogStore) loadServices(ctx context.Context) {
	var services []models.PredefinedService
	switch s.p.load(ctx, KeyServices, &services) {
	case recordMissing:
		s.services = seedServices()
		s.p.save(ctx, KeyServices, s.services)
		return
	case recordInvalid:
		services = nil
	}
	if services == nil {
		services = []models.PredefinedService{}
	}
	for i := range services {
		services[i].Normalize()
	}
	s.services = services
}

func (s *CatalogStore) Services() []models.PredefinedService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PredefinedService, len(s.services))
	for i, svc := range s.services {
		out[i] = cloneService(svc)
	}
	return out
}

// FindService looks a service up by id.
func (s *CatalogStore) FindService(id string) (models.PredefinedService, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.serviceIndex(id); i >= 0 {
		return cloneService(s.services[i]), true
	}
	return models.PredefinedService{}, false
}

// AddService assigns an id and inserts svc at the head of the catalog.
func (s *CatalogStore) AddService(ctx context.Context, svc models.PredefinedService) models.PredefinedService {
	svc = cloneService(svc)
	svc.ID = uuid.NewString()
	svc.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = append([]models.PredefinedService{svc}, s.services...)
	s.p.save(ctx, KeyServices, s.services)
	return cloneService(svc)
}

// UpdateService replaces the service with svc.ID in place. Saved bills are
// unaffected: they hold snapshots.
func (s *CatalogStore) UpdateService(ctx context.Context, svc models.PredefinedService) (models.PredefinedService, error) {
	svc = cloneService(svc)
	svc.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.serviceIndex(svc.ID)
	if i < 0 {
		return models.PredefinedService{}, ErrNotFound
	}
	s.services[i] = svc
	s.p.save(ctx, KeyServices, s.services)
	return cloneService(svc), nil
}

func (s *CatalogStore) DeleteService(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.serviceIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.services = append(s.services[:i:i], s.services[i+1:]...)
	s.p.save(ctx, KeyServices, s.services)
	return nil
}

func (s *CatalogStore) RestoreServices(ctx context.Context, services []models.PredefinedService) {
	restored := make([]models.PredefinedService, len(services))
	for i, svc := range services {
		restored[i] = cloneService(svc)
		restored[i].Normalize()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = restored
	s.p.save(ctx, KeyServices, s.services)
}

func (s *CatalogStore) Categories() []models.ServiceCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ServiceCategory, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *CatalogStore) AddCategory(ctx context.Context, name string) models.ServiceCategory {
	cat := models.ServiceCategory{ID: uuid.NewString(), Name: strings.TrimSpace(name)}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, cat)
	s.p.save(ctx, KeyCategories, s.categories)
	return cat
}

func (s *CatalogStore) RenameCategory(ctx context.Context, id, name string) (models.ServiceCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Name = strings.TrimSpace(name)
			s.p.save(ctx, KeyCategories, s.categories)
			return s.categories[i], nil
		}
	}
	return models.ServiceCategory{}, ErrNotFound
}

// DeleteCategory removes the category only. Services keep their categoryId
// and are treated as uncategorized.
func (s *CatalogStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i:i], s.categories[i+1:]...)
			s.p.save(ctx, KeyCategories, s.categories)
			return nil
		}
	}
	return ErrNotFound
}

func (s *CatalogStore) RestoreCategories(ctx context.Context, categories []models.ServiceCategory) {
	restored := make([]models.ServiceCategory, len(categories))
	copy(restored, categories)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = restored
	s.p.save(ctx, KeyCategories, s.categories)
}

// Reset returns the catalog to its first-run state and persists the seed.
func (s *CatalogStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = []models.ServiceCategory{}
	s.services = seedServices()
	s.p.save(ctx, KeyServices, s.services)
}

func (s *CatalogStore) serviceIndex(id string) int {
	for i := range s.services {
		if s.services[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneService(svc models.PredefinedService) models.PredefinedService {
	if svc.Variants != nil {
		variants := make([]models.PriceVariant, len(svc.Variants))
		copy(variants, svc.Variants)
		svc.Variants = variants
	}
	return svc
}
