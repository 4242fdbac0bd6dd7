package services

import (
	"time"

	"nailspa-backend/models"
)

type fakeCatalog map[string]models.PredefinedService

func (f fakeCatalog) FindService(id string) (models.PredefinedService, bool) {
	svc, ok := f[id]
	return svc, ok
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		"gel": {ID: "gel", Name: "Sơn Gel", Price: 80000, PriceType: models.PriceFixed},
		"stone": {ID: "stone", Name: "Design - Đá", Price: 5000, PriceType: models.PriceFixed, AllowQuantity: true},
		"ext": {
			ID:        "ext",
			Name:      "Nối móng",
			PriceType: models.PriceVariable,
			Variants: []models.PriceVariant{
				{ID: "v1", Name: "Ngắn", Price: 200000},
				{ID: "v2", Name: "Dài", Price: 250000},
			},
			AllowQuantity: true,
		},
	}
}

var ict = time.FixedZone("ICT", 7*3600)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, ict)
}

func billOn(id, customer string, total int64, date time.Time) models.Bill {
	return models.Bill{
		ID:           id,
		CustomerName: customer,
		Date:         date,
		Items:        []models.ServiceItem{{ID: id + "-1", ServiceID: "gel", Name: "Sơn Gel", Price: total, Quantity: 1}},
		Total:        total,
		DiscountType: models.DiscountAmount,
	}
}
