package models

import "time"

// Renovation statuses
const (
	RenovationStatusPending    = "pending"
	RenovationStatusInProgress = "in_progress"
	RenovationStatusCompleted  = "completed"
	RenovationStatusCancelled  = "cancelled"
)

type Renovation struct {
	ID                     int64      `json:"id" gorm:"primaryKey"`
	PropertyID             int64      `json:"property_id" gorm:"index"`
	RenovationType         string     `json:"renovation_type"`
	Description            string     `json:"description"`
	Cost                   float64    `json:"cost"`
	StartDate              *time.Time `json:"start_date"`
	EndDate                *time.Time `json:"end_date"`
	Status                 string     `json:"status"`
	ContractorName         string     `json:"contractor_name"`
	EstimatedValueIncrease float64    `json:"estimated_value_increase"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (Renovation) TableName() string {
	return "renovations"
}

type RenovationRequest struct {
	PropertyID             int64      `json:"property_id" binding:"required"`
	RenovationType         string     `json:"renovation_type" binding:"required"`
	Description            string     `json:"description"`
	Cost                   float64    `json:"cost" binding:"min=0"`
	StartDate              *time.Time `json:"start_date"`
	EndDate                *time.Time `json:"end_date"`
	Status                 string     `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	ContractorName         string     `json:"contractor_name"`
	EstimatedValueIncrease float64    `json:"estimated_value_increase" binding:"min=0"`
}

func (r RenovationRequest) ToRenovation() Renovation {
	status := r.Status
	if status == "" {
		status = RenovationStatusPending
	}
	return Renovation{
		PropertyID:             r.PropertyID,
		RenovationType:         r.RenovationType,
		Description:            r.Description,
		Cost:                   r.Cost,
		StartDate:              r.StartDate,
		EndDate:                r.EndDate,
		Status:                 status,
		ContractorName:         r.ContractorName,
		EstimatedValueIncrease: r.EstimatedValueIncrease,
	}
}
