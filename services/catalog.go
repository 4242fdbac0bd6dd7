package services

import (
	"context"
	"fmt"
	"strings"

	"nailspa-backend/models"
	"nailspa-backend/store"
)

// CatalogService validates catalog edits before they reach the store.
type CatalogService struct {
	store *store.CatalogStore
}

func NewCatalogService(s *store.CatalogStore) *CatalogService {
	return &CatalogService{store: s}
}

func (c *CatalogService) FindService(id string) (models.PredefinedService, bool) {
	return c.store.FindService(id)
}

func (c *CatalogService) Services() []models.PredefinedService {
	return c.store.Services()
}

func (c *CatalogService) GetService(id string) (models.PredefinedService, error) {
	svc, ok := c.store.FindService(id)
	if !ok {
		return models.PredefinedService{}, store.ErrNotFound
	}
	return svc, nil
}

func (c *CatalogService) AddService(ctx context.Context, svc models.PredefinedService) (models.PredefinedService, error) {
	if err := ValidateService(&svc); err != nil {
		return models.PredefinedService{}, err
	}
	return c.store.AddService(ctx, svc), nil
}

func (c *CatalogService) UpdateService(ctx context.Context, svc models.PredefinedService) (models.PredefinedService, error) {
	if err := ValidateService(&svc); err != nil {
		return models.PredefinedService{}, err
	}
	return c.store.UpdateService(ctx, svc)
}

func (c *CatalogService) DeleteService(ctx context.Context, id string) error {
	return c.store.DeleteService(ctx, id)
}

func (c *CatalogService) Categories() []models.ServiceCategory {
	return c.store.Categories()
}

func (c *CatalogService) AddCategory(ctx context.Context, name string) (models.ServiceCategory, error) {
	if strings.TrimSpace(name) == "" {
		return models.ServiceCategory{}, &ValidationError{Field: "name", Message: "category name is required"}
	}
	return c.store.AddCategory(ctx, name), nil
}

func (c *CatalogService) RenameCategory(ctx context.Context, id, name string) (models.ServiceCategory, error) {
	if strings.TrimSpace(name) == "" {
		return models.ServiceCategory{}, &ValidationError{Field: "name", Message: "category name is required"}
	}
	return c.store.RenameCategory(ctx, id, name)
}

func (c *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return c.store.DeleteCategory(ctx, id)
}

// ValidateService checks a catalog entry and trims its names in place.
// Variable services need at least one variant, with unique non-empty names.
func ValidateService(svc *models.PredefinedService) error {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.Name == "" {
		return ErrServiceNameRequired
	}
	if svc.PriceType == "" {
		svc.PriceType = models.PriceFixed
	}

	switch svc.PriceType {
	case models.PriceFixed:
		if svc.Price < 0 {
			return &ValidationError{Field: "price", Message: "price must not be negative"}
		}
		svc.Variants = nil
	case models.PriceVariable:
		if len(svc.Variants) == 0 {
			return &ValidationError{Field: "variants", Message: "a variable-price service needs at least one variant"}
		}
		seen := make(map[string]bool, len(svc.Variants))
		for i := range svc.Variants {
			v := &svc.Variants[i]
			v.Name = strings.TrimSpace(v.Name)
			if v.Name == "" {
				return &ValidationError{Field: "variants", Message: fmt.Sprintf("variant %d has no name", i+1)}
			}
			if seen[v.Name] {
				return &ValidationError{Field: "variants", Message: fmt.Sprintf("duplicate variant %q", v.Name)}
			}
			if v.Price < 0 {
				return &ValidationError{Field: "variants", Message: fmt.Sprintf("variant %q has a negative price", v.Name)}
			}
			seen[v.Name] = true
		}
	default:
		return &ValidationError{Field: "priceType", Message: "price type must be fixed or variable"}
	}
	return nil
}
