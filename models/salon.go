package models

const (
	DefaultShopName  = "Nail Spa"
	DefaultBillTheme = "default"
)

// BillThemes are the display themes a bill can be rendered with.
var BillThemes = []string{"default", "pink", "blue", "gold", "green"}

// ShopSettings holds the shop name and bill display theme.
type ShopSettings struct {
	ShopName  string `json:"shopName"`
	BillTheme string `json:"billTheme"`
}

func DefaultShopSettings() ShopSettings {
	return ShopSettings{ShopName: DefaultShopName, BillTheme: DefaultBillTheme}
}

// IsBillTheme reports whether theme is one of BillThemes.
func IsBillTheme(theme string) bool {
	for _, t := range BillThemes {
		if t == theme {
			return true
		}
	}
	return false
}

// Normalize replaces blank fields with defaults.
func (s *ShopSettings) Normalize() {
	if s.ShopName == "" {
		s.ShopName = DefaultShopName
	}
	if s.BillTheme == "" {
		s.BillTheme = DefaultBillTheme
	}
}

// Backup is the export/import document.
type Backup struct {
	Bills      []Bill              `json:"bills"`
	Services   []PredefinedService `json:"services"`
	Categories []ServiceCategory   `json:"categories"`
	Settings   ShopSettings        `json:"settings"`
}
