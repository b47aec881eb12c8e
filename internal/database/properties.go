package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"estatedash/server/internal/models"
)

// PropertyFilter holds the optional listing constraints. A nil field means
// the constraint was not set and must not reach the query; min and max
// bounds are applied independently and inclusively.
type PropertyFilter struct {
	PropertyType *string
	City         *string
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *float64
	MaxBedrooms  *float64
	MinBathrooms *float64
	MaxBathrooms *float64
	MinSqft      *int
	MaxSqft      *int
}

// ListProperties returns properties matching the active constraints.
// Price bounds apply to current_value. A min greater than max is applied
// literally and yields an empty result.
func (d *Database) ListProperties(filter PropertyFilter) ([]models.Property, error) {
	query := d.db.Model(&models.Property{})

	if filter.PropertyType != nil {
		query = query.Where("property_type = ?", *filter.PropertyType)
	}
	if filter.City != nil {
		query = query.Where("city = ?", *filter.City)
	}
	if filter.MinPrice != nil {
		query = query.Where("current_value >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("current_value <= ?", *filter.MaxPrice)
	}
	if filter.MinBedrooms != nil {
		query = query.Where("bedrooms >= ?", *filter.MinBedrooms)
	}
	if filter.MaxBedrooms != nil {
		query = query.Where("bedrooms <= ?", *filter.MaxBedrooms)
	}
	if filter.MinBathrooms != nil {
		query = query.Where("bathrooms >= ?", *filter.MinBathrooms)
	}
	if filter.MaxBathrooms != nil {
		query = query.Where("bathrooms <= ?", *filter.MaxBathrooms)
	}
	if filter.MinSqft != nil {
		query = query.Where("square_feet >= ?", *filter.MinSqft)
	}
	if filter.MaxSqft != nil {
		query = query.Where("square_feet <= ?", *filter.MaxSqft)
	}

	properties := make([]models.Property, 0)
	if err := query.Order("id").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (d *Database) GetProperty(id int64) (*models.Property, error) {
	var property models.Property
	err := d.db.First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

func (d *Database) CreateProperty(property *models.Property) error {
	if err := d.db.Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (d *Database) UpdateProperty(id int64, req models.PropertyRequest) (*models.Property, error) {
	property, err := d.GetProperty(id)
	if err != nil {
		return nil, err
	}

	updated := req.ToProperty()
	updated.ID = property.ID
	updated.CreatedAt = property.CreatedAt
	if err := d.db.Save(&updated).Error; err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return &updated, nil
}

func (d *Database) DeleteProperty(id int64) error {
	result := d.db.Delete(&models.Property{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PropertyExists reports whether a property with the given id is present.
// Used to validate foreign references before creating sales or renovations.
func (d *Database) PropertyExists(id int64) (bool, error) {
	var count int64
	if err := d.db.Model(&models.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check property existence: %w", err)
	}
	return count > 0, nil
}

// PropertyTypes returns the distinct property types in the dataset, used to
// populate the dashboard's filter choice sets.
func (d *Database) PropertyTypes() ([]string, error) {
	types := make([]string, 0)
	err := d.db.Model(&models.Property{}).
		Distinct("property_type").
		Where("property_type <> ''").
		Order("property_type").
		Pluck("property_type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list property types: %w", err)
	}
	return types, nil
}

// Cities returns the distinct cities in the dataset.
func (d *Database) Cities() ([]string, error) {
	cities := make([]string, 0)
	err := d.db.Model(&models.Property{}).
		Distinct("city").
		Where("city <> ''").
		Order("city").
		Pluck("city", &cities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

// InsertProperties inserts a batch of properties, including any nested sales
// and renovations, inside the given transaction.
func InsertProperties(tx *gorm.DB, properties []*models.Property) error {
	for _, property := range properties {
		if err := tx.Create(property).Error; err != nil {
			return fmt.Errorf("failed to insert property: %w", err)
		}
	}
	return nil
}
