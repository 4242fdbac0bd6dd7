package services

import "nailspa-backend/models"

// Catalog resolves service ids for line construction.
type Catalog interface {
	FindService(id string) (models.PredefinedService, bool)
}

// resolveUnit returns the unit price of serviceID for variantName. A missing
// service or an unknown variant is a miss.
func resolveUnit(cat Catalog, serviceID, variantName string) (models.PredefinedService, int64, bool) {
	if serviceID == "" {
		return models.PredefinedService{}, 0, false
	}
	svc, ok := cat.FindService(serviceID)
	if !ok {
		return models.PredefinedService{}, 0, false
	}
	unit, ok := svc.UnitPrice(variantName)
	return svc, unit, ok
}
