package models

import "time"

type Sale struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	PropertyID int64     `json:"property_id" gorm:"index"`
	SalePrice  float64   `json:"sale_price"`
	SaleDate   time.Time `json:"sale_date"`
	BuyerName  string    `json:"buyer_name"`
	BuyerEmail string    `json:"buyer_email"`
	BuyerPhone string    `json:"buyer_phone"`
	AgentName  string    `json:"agent_name"`
	AgentEmail string    `json:"agent_email"`
	AgentPhone string    `json:"agent_phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Sale) TableName() string {
	return "sales"
}

type SaleRequest struct {
	PropertyID int64     `json:"property_id" binding:"required"`
	SalePrice  float64   `json:"sale_price" binding:"required,gt=0"`
	SaleDate   time.Time `json:"sale_date" binding:"required"`
	BuyerName  string    `json:"buyer_name"`
	BuyerEmail string    `json:"buyer_email" binding:"omitempty,email"`
	BuyerPhone string    `json:"buyer_phone"`
	AgentName  string    `json:"agent_name"`
	AgentEmail string    `json:"agent_email" binding:"omitempty,email"`
	AgentPhone string    `json:"agent_phone"`
}

func (r SaleRequest) ToSale() Sale {
	return Sale{
		PropertyID: r.PropertyID,
		SalePrice:  r.SalePrice,
		SaleDate:   r.SaleDate,
		BuyerName:  r.BuyerName,
		BuyerEmail: r.BuyerEmail,
		BuyerPhone: r.BuyerPhone,
		AgentName:  r.AgentName,
		AgentEmail: r.AgentEmail,
		AgentPhone: r.AgentPhone,
	}
}
