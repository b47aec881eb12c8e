package models

import "time"

type Property struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	Address       string     `json:"address"`
	City          string     `json:"city" gorm:"index"`
	State         string     `json:"state" gorm:"index"`
	ZipCode       string     `json:"zip_code"`
	PropertyType  string     `json:"property_type" gorm:"index"`
	Bedrooms      int        `json:"bedrooms"`
	Bathrooms     float64    `json:"bathrooms"`
	SquareFeet    int        `json:"square_feet"`
	LotSize       float64    `json:"lot_size"`
	YearBuilt     *int       `json:"year_built"`
	CurrentValue  float64    `json:"current_value"`
	PurchasePrice *float64   `json:"purchase_price"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	LastSalePrice *float64   `json:"last_sale_price"`
	LastSaleDate  *time.Time `json:"last_sale_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Populated by the seed pipeline only, never serialized
	Sales       []Sale       `json:"-" gorm:"foreignKey:PropertyID"`
	Renovations []Renovation `json:"-" gorm:"foreignKey:PropertyID"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyRequest is the payload accepted by the create and update endpoints.
// Numeric fields are validated at the boundary; shapes are never trusted.
type PropertyRequest struct {
	Address       string     `json:"address" binding:"required"`
	City          string     `json:"city" binding:"required"`
	State         string     `json:"state" binding:"required"`
	ZipCode       string     `json:"zip_code" binding:"required"`
	PropertyType  string     `json:"property_type" binding:"required"`
	Bedrooms      int        `json:"bedrooms" binding:"min=0"`
	Bathrooms     float64    `json:"bathrooms" binding:"min=0"`
	SquareFeet    int        `json:"square_feet" binding:"min=0"`
	LotSize       float64    `json:"lot_size" binding:"min=0"`
	YearBuilt     *int       `json:"year_built" binding:"omitempty,min=1800,max=2100"`
	CurrentValue  float64    `json:"current_value" binding:"min=0"`
	PurchasePrice *float64   `json:"purchase_price" binding:"omitempty,min=0"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	LastSalePrice *float64   `json:"last_sale_price" binding:"omitempty,min=0"`
	LastSaleDate  *time.Time `json:"last_sale_date"`
}

func (r PropertyRequest) ToProperty() Property {
	return Property{
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
		PropertyType:  r.PropertyType,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		SquareFeet:    r.SquareFeet,
		LotSize:       r.LotSize,
		YearBuilt:     r.YearBuilt,
		CurrentValue:  r.CurrentValue,
		PurchasePrice: r.PurchasePrice,
		PurchaseDate:  r.PurchaseDate,
		LastSalePrice: r.LastSalePrice,
		LastSaleDate:  r.LastSaleDate,
	}
}
