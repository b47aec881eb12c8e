package database

import (
	"fmt"

	"estatedash/server/internal/models"
)

func (d *Database) ListRenovations() ([]models.Renovation, error) {
	renovations := make([]models.Renovation, 0)
	if err := d.db.Order("id").Find(&renovations).Error; err != nil {
		return nil, fmt.Errorf("failed to list renovations: %w", err)
	}
	return renovations, nil
}

func (d *Database) CreateRenovation(renovation *models.Renovation) error {
	if err := d.db.Create(renovation).Error; err != nil {
		return fmt.Errorf("failed to create renovation: %w", err)
	}
	return nil
}
