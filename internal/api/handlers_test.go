package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatedash/server/internal/database"
	"estatedash/server/internal/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.NewDatabase(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() {
		_ = db.Close()
	})

	router := gin.New()
	require.NoError(t, SetupRoutes(router, db, nil))
	return router, db
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createTestProperty(t *testing.T, db *database.Database) *models.Property {
	t.Helper()
	property := &models.Property{
		Address:      "100 Pine St",
		City:         "Seattle",
		State:        "WA",
		ZipCode:      "98101",
		PropertyType: "Condo",
		Bedrooms:     2,
		Bathrooms:    1.5,
		SquareFeet:   900,
		CurrentValue: 350000,
	}
	require.NoError(t, db.CreateProperty(property))
	return property
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetPropertiesAppliesFilters(t *testing.T) {
	router, db := newTestRouter(t)
	createTestProperty(t, db)
	require.NoError(t, db.CreateProperty(&models.Property{
		Address: "200 Maple Ave", City: "Bellevue", State: "WA", ZipCode: "98004",
		PropertyType: "Single Family", Bedrooms: 4, Bathrooms: 2.5, SquareFeet: 2400, CurrentValue: 850000,
	}))

	w := doJSON(router, http.MethodGet, "/api/properties?propertyType=Condo&city=&minPrice=200000", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var properties []models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &properties))
	require.Len(t, properties, 1)
	assert.Equal(t, "100 Pine St", properties[0].Address)
}

func TestGetPropertiesIgnoresBlankNumericFilters(t *testing.T) {
	router, db := newTestRouter(t)
	createTestProperty(t, db)
	require.NoError(t, db.CreateProperty(&models.Property{
		Address: "200 Maple Ave", City: "Bellevue", State: "WA", ZipCode: "98004",
		PropertyType: "Single Family", Bedrooms: 4, Bathrooms: 2.5, SquareFeet: 2400, CurrentValue: 850000,
	}))

	// Blank numeric values must behave like absent parameters, not like 0
	w := doJSON(router, http.MethodGet, "/api/properties?maxPrice=&minPrice=&maxSqft=&maxBathrooms=", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var properties []models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &properties))
	assert.Len(t, properties, 2)
}

func TestGetPropertiesRejectsMalformedNumericFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/properties?maxPrice=expensive", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid filter parameters")
}

func TestGetPropertiesEmptyDatasetReturnsEmptyArray(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/properties", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestCreatePropertyValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	// Missing required address
	w := doJSON(router, http.MethodPost, "/api/properties", map[string]interface{}{
		"city": "Seattle", "state": "WA", "zip_code": "98101", "property_type": "Condo",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"address"`)
}

func TestCreateAndGetProperty(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/properties", map[string]interface{}{
		"address": "300 Cedar Blvd", "city": "Bellevue", "state": "WA", "zip_code": "98004",
		"property_type": "Townhouse", "bedrooms": 3, "bathrooms": 2.5, "square_feet": 1600,
		"lot_size": 0.15, "current_value": 700000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/properties/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/properties/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Property not found")
}

func TestUpdateAndDeleteProperty(t *testing.T) {
	router, db := newTestRouter(t)
	property := createTestProperty(t, db)

	w := doJSON(router, http.MethodPut, fmt.Sprintf("/api/properties/%d", property.ID), map[string]interface{}{
		"address": "100 Pine St", "city": "Seattle", "state": "WA", "zip_code": "98101",
		"property_type": "Condo", "bedrooms": 2, "bathrooms": 1.5, "square_feet": 900,
		"current_value": 380000,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 380000.0, updated.CurrentValue)

	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/properties/%d", property.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/properties/%d", property.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPropertyChoiceSets(t *testing.T) {
	router, db := newTestRouter(t)
	createTestProperty(t, db)

	w := doJSON(router, http.MethodGet, "/api/properties/types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Condo"]`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/properties/cities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Seattle"]`, w.Body.String())
}

func TestCreateSaleRejectsUnknownProperty(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/sales", map[string]interface{}{
		"property_id": 42,
		"sale_price":  500000,
		"sale_date":   "2024-02-01T00:00:00Z",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"property_id"`)
}

func TestCreateSale(t *testing.T) {
	router, db := newTestRouter(t)
	property := createTestProperty(t, db)

	w := doJSON(router, http.MethodPost, "/api/sales", map[string]interface{}{
		"property_id": property.ID,
		"sale_price":  500000,
		"sale_date":   "2024-02-01T00:00:00Z",
		"buyer_name":  "Jordan Lee",
		"agent_name":  "Sarah Chen",
		"agent_email": "sarahchen@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var sale models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.NotZero(t, sale.ID)
	assert.Equal(t, property.ID, sale.PropertyID)

	w = doJSON(router, http.MethodGet, "/api/sales", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sales []models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sales))
	assert.Len(t, sales, 1)
}

func TestCreateRenovationRejectsEndBeforeStart(t *testing.T) {
	router, db := newTestRouter(t)
	property := createTestProperty(t, db)

	w := doJSON(router, http.MethodPost, "/api/renovations", map[string]interface{}{
		"property_id":     property.ID,
		"renovation_type": "Kitchen",
		"cost":            25000,
		"start_date":      "2024-01-10T00:00:00Z",
		"end_date":        "2024-01-05T00:00:00Z",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"end_date"`)
	assert.Contains(t, w.Body.String(), "must not be before")
}

func TestCreateRenovationDefaultsStatus(t *testing.T) {
	router, db := newTestRouter(t)
	property := createTestProperty(t, db)

	w := doJSON(router, http.MethodPost, "/api/renovations", map[string]interface{}{
		"property_id":     property.ID,
		"renovation_type": "Roof",
		"cost":            18000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var renovation models.Renovation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &renovation))
	assert.Equal(t, models.RenovationStatusPending, renovation.Status)
}

func TestCreateRenovationRejectsUnknownStatus(t *testing.T) {
	router, db := newTestRouter(t)
	property := createTestProperty(t, db)

	w := doJSON(router, http.MethodPost, "/api/renovations", map[string]interface{}{
		"property_id":     property.ID,
		"renovation_type": "Roof",
		"status":          "paused",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"status"`)
}

func TestAnalyticsEndpoints(t *testing.T) {
	router, db := newTestRouter(t)
	property := createTestProperty(t, db)

	sale := models.Sale{PropertyID: property.ID, SalePrice: 450000, SaleDate: mustParseTime(t, "2024-03-10T00:00:00Z"), AgentName: "Sarah Chen"}
	require.NoError(t, db.CreateSale(&sale))

	w := doJSON(router, http.MethodGet, "/api/analytics/properties", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var propertySummary models.PropertyAnalytics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &propertySummary))
	assert.Equal(t, 1, propertySummary.TotalProperties)

	w = doJSON(router, http.MethodGet, "/api/analytics/sales", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var salesSummary models.SalesAnalytics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &salesSummary))
	assert.Equal(t, 1, salesSummary.TotalSales)
	assert.Equal(t, 450000.0, salesSummary.TotalRevenue)

	w = doJSON(router, http.MethodGet, "/api/analytics/renovations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Empty renovation dataset still yields a complete summary
	assert.Contains(t, w.Body.String(), `"renovations_by_type":[]`)
	assert.Contains(t, w.Body.String(), `"total_renovations":0`)
}

func mustParseTime(t *testing.T, value string) (parsed time.Time) {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}
