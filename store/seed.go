package store

import (
	"github.com/google/uuid"

	"nailspa-backend/models"
)

// defaultServices is the catalog written on first run.
var defaultServices = []models.PredefinedService{
	// Chăm sóc móng
	{Name: "Cắt da", Price: 30000},
	{Name: "Phá Gel/Bột", Price: 20000},
	// Sơn
	{Name: "Sơn Gel", Price: 80000},
	{Name: "Sơn Thạch", Price: 80000},
	{Name: "Sơn Nhũ", Price: 110000},
	{Name: "Sơn Mắt Mèo", Price: 120000},
	// Đắp móng
	{Name: "Úp Gel", Price: 180000},
	{Name: "Úp Keo", Price: 80000},
	{Name: "Đắp Gel/Bột", Price: 200000},
	{Name: "Fill Gel/Bột", Price: 150000},
	// Design
	{Name: "Design - Tráng gương (1 ngón)", Price: 10000, AllowQuantity: true},
	{Name: "Design - Ombre (1 ngón)", Price: 15000, AllowQuantity: true},
	{Name: "Design - Sơn nhũ (1 ngón)", Price: 5000, AllowQuantity: true},
	{Name: "Design - Ẩn nhũ/cừ/hoa khô (1 ngón)", Price: 10000, AllowQuantity: true},
	{Name: "Design - Thủ nổi/Hoạ nổi (1 ngón)", Price: 10000, AllowQuantity: true},
	{Name: "Design - Charm", Price: 10000, AllowQuantity: true},
	{Name: "Design - Đá (1 viên)", Price: 5000, AllowQuantity: true},
	{Name: "Design - Vẽ hoạt hình (1 ngón)", Price: 10000, AllowQuantity: true},
}

func seedServices() []models.PredefinedService {
	out := make([]models.PredefinedService, len(defaultServices))
	for i, svc := range defaultServices {
		svc.ID = uuid.NewString()
		svc.PriceType = models.PriceFixed
		out[i] = svc
	}
	return out
}
