package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatedash/server/internal/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	// Named in-memory database so all pooled connections share state
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := NewDatabase(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func seedTestProperties(t *testing.T, db *Database) {
	t.Helper()

	properties := []models.Property{
		{Address: "100 Pine St", City: "Seattle", State: "WA", ZipCode: "98101", PropertyType: "Condo", Bedrooms: 2, Bathrooms: 1.5, SquareFeet: 900, CurrentValue: 350000},
		{Address: "200 Maple Ave", City: "Seattle", State: "WA", ZipCode: "98102", PropertyType: "Single Family", Bedrooms: 4, Bathrooms: 2.5, SquareFeet: 2400, CurrentValue: 850000},
		{Address: "300 Cedar Blvd", City: "Bellevue", State: "WA", ZipCode: "98004", PropertyType: "Condo", Bedrooms: 1, Bathrooms: 1, SquareFeet: 650, CurrentValue: 280000},
		{Address: "400 Alder Ln", City: "Redmond", State: "WA", ZipCode: "98052", PropertyType: "Townhouse", Bedrooms: 3, Bathrooms: 2, SquareFeet: 1600, CurrentValue: 620000},
	}
	for i := range properties {
		require.NoError(t, db.CreateProperty(&properties[i]))
	}
}

func TestListPropertiesNoFilters(t *testing.T) {
	db := newTestDatabase(t)
	seedTestProperties(t, db)

	properties, err := db.ListProperties(PropertyFilter{})

	require.NoError(t, err)
	assert.Len(t, properties, 4)
}

func TestListPropertiesEqualityFilters(t *testing.T) {
	db := newTestDatabase(t)
	seedTestProperties(t, db)

	propertyType := "Condo"
	properties, err := db.ListProperties(PropertyFilter{PropertyType: &propertyType})
	require.NoError(t, err)
	assert.Len(t, properties, 2)

	city := "Seattle"
	properties, err = db.ListProperties(PropertyFilter{PropertyType: &propertyType, City: &city})
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "100 Pine St", properties[0].Address)
}

func TestListPropertiesRangeFilters(t *testing.T) {
	db := newTestDatabase(t)
	seedTestProperties(t, db)

	minPrice := 300000.0
	maxPrice := 700000.0
	properties, err := db.ListProperties(PropertyFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.Len(t, properties, 2)

	// Bounds are inclusive
	exact := 620000.0
	properties, err = db.ListProperties(PropertyFilter{MinPrice: &exact, MaxPrice: &exact})
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "400 Alder Ln", properties[0].Address)

	minSqft := 1000
	properties, err = db.ListProperties(PropertyFilter{MinSqft: &minSqft})
	require.NoError(t, err)
	assert.Len(t, properties, 2)
}

func TestListPropertiesMinGreaterThanMax(t *testing.T) {
	db := newTestDatabase(t)
	seedTestProperties(t, db)

	minPrice := 700000.0
	maxPrice := 300000.0
	properties, err := db.ListProperties(PropertyFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})

	// Applied literally, yielding an empty (non-nil) result
	require.NoError(t, err)
	assert.NotNil(t, properties)
	assert.Empty(t, properties)
}

func TestGetUpdateDeleteProperty(t *testing.T) {
	db := newTestDatabase(t)
	seedTestProperties(t, db)

	property, err := db.GetProperty(1)
	require.NoError(t, err)
	assert.Equal(t, "100 Pine St", property.Address)

	updated, err := db.UpdateProperty(1, models.PropertyRequest{
		Address:      "100 Pine St",
		City:         "Seattle",
		State:        "WA",
		ZipCode:      "98101",
		PropertyType: "Condo",
		Bedrooms:     2,
		Bathrooms:    1.5,
		SquareFeet:   900,
		CurrentValue: 375000,
	})
	require.NoError(t, err)
	assert.Equal(t, 375000.0, updated.CurrentValue)
	assert.Equal(t, int64(1), updated.ID)

	require.NoError(t, db.DeleteProperty(1))

	_, err = db.GetProperty(1)
	assert.ErrorIs(t, err, ErrNotFound)

	err = db.DeleteProperty(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyTypesAndCitiesAreDistinctAndSorted(t *testing.T) {
	db := newTestDatabase(t)
	seedTestProperties(t, db)

	types, err := db.PropertyTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Condo", "Single Family", "Townhouse"}, types)

	cities, err := db.Cities()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bellevue", "Redmond", "Seattle"}, cities)
}

func TestPropertyTypesEmptyDataset(t *testing.T) {
	db := newTestDatabase(t)

	types, err := db.PropertyTypes()
	require.NoError(t, err)
	assert.NotNil(t, types)
	assert.Empty(t, types)
}

func TestPropertyExists(t *testing.T) {
	db := newTestDatabase(t)
	seedTestProperties(t, db)

	exists, err := db.PropertyExists(1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.PropertyExists(999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreatePropertyWithNestedRecords(t *testing.T) {
	db := newTestDatabase(t)

	property := models.Property{
		Address:      "500 Summit Pl",
		City:         "Kirkland",
		State:        "WA",
		ZipCode:      "98033",
		PropertyType: "Single Family",
		CurrentValue: 900000,
		Renovations: []models.Renovation{
			{RenovationType: "Kitchen", Cost: 25000, Status: models.RenovationStatusCompleted},
		},
	}
	require.NoError(t, db.CreateProperty(&property))

	renovations, err := db.ListRenovations()
	require.NoError(t, err)
	require.Len(t, renovations, 1)
	assert.Equal(t, property.ID, renovations[0].PropertyID)
}
