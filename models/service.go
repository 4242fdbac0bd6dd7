package models

import (
	"strings"

	"github.com/google/uuid"
)

type PriceType string

const (
	PriceFixed    PriceType = "fixed"
	PriceVariable PriceType = "variable"
)

// ServiceCategory groups catalog services. Categories are flat.
type ServiceCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PriceVariant is a named price point of a variable-price service (e.g. a size tier).
type PriceVariant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// PredefinedService is a catalog entry. Price is only meaningful for fixed-price
// services; variable services price through Variants, whose order is significant.
type PredefinedService struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Price         int64          `json:"price"`
	PriceType     PriceType      `json:"priceType"`
	Variants      []PriceVariant `json:"variants,omitempty"`
	AllowQuantity bool           `json:"allowQuantity"`
	CategoryID    string         `json:"categoryId,omitempty"`
}

// IsVariable reports whether the service prices through variants.
func (s PredefinedService) IsVariable() bool {
	return s.PriceType == PriceVariable
}

// DefaultVariant returns the first variant of a variable service.
func (s PredefinedService) DefaultVariant() (PriceVariant, bool) {
	if !s.IsVariable() || len(s.Variants) == 0 {
		return PriceVariant{}, false
	}
	return s.Variants[0], true
}

// FindVariant looks a variant up by its exact name.
func (s PredefinedService) FindVariant(name string) (PriceVariant, bool) {
	for _, v := range s.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return PriceVariant{}, false
}

// UnitPrice resolves the per-unit price for variantName. An empty variantName
// selects the default variant of a variable service; an unknown one is a miss.
func (s PredefinedService) UnitPrice(variantName string) (int64, bool) {
	if !s.IsVariable() {
		return s.Price, true
	}
	if variantName == "" {
		v, ok := s.DefaultVariant()
		return v.Price, ok
	}
	v, ok := s.FindVariant(variantName)
	return v.Price, ok
}

// VariantNames lists variant names in catalog order.
func (s PredefinedService) VariantNames() []string {
	names := make([]string, 0, len(s.Variants))
	for _, v := range s.Variants {
		names = append(names, v.Name)
	}
	return names
}

// Normalize fills defaults for records written by older versions.
func (s *PredefinedService) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	switch s.PriceType {
	case PriceFixed, PriceVariable:
	default:
		s.PriceType = PriceFixed
	}
	if s.PriceType == PriceVariable && len(s.Variants) == 0 {
		s.PriceType = PriceFixed
	}
	for i := range s.Variants {
		if s.Variants[i].ID == "" {
			s.Variants[i].ID = uuid.NewString()
		}
	}
}
