package models

// Service types distinguish the sacrifice programs a product belongs to.
const (
	ServiceTypeQurban  = "qurban"
	ServiceTypeAqiqah  = "aqiqah"
	ServiceTypeRegular = "regular"
)

type Category struct {
	BaseModel
	Name        string    `json:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Status      string    `gorm:"default:active" json:"status"`
	Products    []Product `gorm:"many2many:product_categories;" json:"products,omitempty"`
}

type Service struct {
	BaseModel
	Name        string    `json:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Type        string    `gorm:"default:qurban" json:"type"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Status      string    `gorm:"default:active" json:"status"`
	Products    []Product `gorm:"many2many:product_services;" json:"products,omitempty"`
}

type Warehouse struct {
	BaseModel
	Name         string    `json:"name"`
	AddressLine  string    `json:"address_line"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	Status       string    `gorm:"default:active" json:"status"`
	Products     []Product `gorm:"many2many:product_warehouses;" json:"products,omitempty"`
}

// Banner is a storefront marketing slot managed from the dashboard.
type Banner struct {
	BaseModel
	Title    string `json:"title"`
	Image    string `json:"image"`
	URL      string `json:"url"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
