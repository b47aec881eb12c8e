package database

import (
	"fmt"

	"estatedash/server/internal/models"
)

func (d *Database) ListSales() ([]models.Sale, error) {
	sales := make([]models.Sale, 0)
	if err := d.db.Order("sale_date DESC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (d *Database) CreateSale(sale *models.Sale) error {
	if err := d.db.Create(sale).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}
