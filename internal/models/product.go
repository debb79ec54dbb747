package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups products in the catalog.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(100);not null"`
	Description string `json:"description,omitempty"`
}

// Product represents a toy in the store.
type Product struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	Name              string          `json:"name" gorm:"type:varchar(255);not null"`
	Description       string          `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;check:price > 0"`
	StockQuantity     int             `json:"stock_quantity" gorm:"not null;check:stock_quantity >= 0"`
	CategoryID        uint            `json:"category_id" gorm:"not null;index"`
	Category          *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Manufacturer      string          `json:"manufacturer"`
	Material          string          `json:"material"`
	AgeMin            int             `json:"age_min" gorm:"not null;check:age_min > 0"`
	BatteriesIncluded bool            `json:"batteries_included" gorm:"default:false"`
	ImageFilename     string          `json:"image_filename,omitempty"`
	DeletedAt         gorm.DeletedAt  `json:"-" gorm:"index"` // retired products stay referenced by order items
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID uint
	MinAge     int // products whose age_min does not exceed this value
	Search     string
}
