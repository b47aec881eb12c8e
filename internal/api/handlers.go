package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estatedash/server/internal/analytics"
	"estatedash/server/internal/database"
	"estatedash/server/internal/models"
)

type Handler struct {
	db        *database.Database
	analytics *analytics.Service
	logger    *logrus.Logger
}

// PropertyFilterQuery binds the listing query parameters. Numeric values
// are bound as strings because gin's form mapping turns an empty numeric
// value into zero; blank values must stay distinguishable from 0 so they
// can be normalized away before the filter reaches the store.
type PropertyFilterQuery struct {
	PropertyType *string `form:"propertyType"`
	City         *string `form:"city"`
	MinPrice     *string `form:"minPrice"`
	MaxPrice     *string `form:"maxPrice"`
	MinBedrooms  *string `form:"minBedrooms"`
	MaxBedrooms  *string `form:"maxBedrooms"`
	MinBathrooms *string `form:"minBathrooms"`
	MaxBathrooms *string `form:"maxBathrooms"`
	MinSqft      *string `form:"minSqft"`
	MaxSqft      *string `form:"maxSqft"`
}

// floatParam parses an optional numeric parameter; nil and "" both mean
// "not set".
func floatParam(raw *string) (*float64, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func intParam(raw *string) (*int, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func (q PropertyFilterQuery) toFilter() (database.PropertyFilter, error) {
	var filter database.PropertyFilter
	var err error

	if filter.MinPrice, err = floatParam(q.MinPrice); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = floatParam(q.MaxPrice); err != nil {
		return filter, err
	}
	if filter.MinBedrooms, err = floatParam(q.MinBedrooms); err != nil {
		return filter, err
	}
	if filter.MaxBedrooms, err = floatParam(q.MaxBedrooms); err != nil {
		return filter, err
	}
	if filter.MinBathrooms, err = floatParam(q.MinBathrooms); err != nil {
		return filter, err
	}
	if filter.MaxBathrooms, err = floatParam(q.MaxBathrooms); err != nil {
		return filter, err
	}
	if filter.MinSqft, err = intParam(q.MinSqft); err != nil {
		return filter, err
	}
	if filter.MaxSqft, err = intParam(q.MaxSqft); err != nil {
		return filter, err
	}

	if q.PropertyType != nil && *q.PropertyType != "" {
		filter.PropertyType = q.PropertyType
	}
	if q.City != nil && *q.City != "" {
		filter.City = q.City
	}
	return filter, nil
}

func NewHandler(db *database.Database, logger *logrus.Logger) (*Handler, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	sqlDB, err := db.SQL()
	if err != nil {
		return nil, err
	}

	return &Handler{
		db:        db,
		analytics: analytics.NewService(sqlDB, logger),
		logger:    logger,
	}, nil
}

func (h *Handler) GetProperties(c *gin.Context) {
	var query PropertyFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.WithError(err).Error("Failed to parse property filters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.logger.WithError(err).Error("Failed to parse property filters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	properties, err := h.db.ListProperties(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	property, err := h.db.GetProperty(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req models.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid property payload")
		c.JSON(http.StatusUnprocessableEntity, bindingDetail(err))
		return
	}

	property := req.ToProperty()
	if err := h.db.CreateProperty(&property); err != nil {
		h.logger.WithError(err).Error("Failed to create property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, property)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	var req models.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid property payload")
		c.JSON(http.StatusUnprocessableEntity, bindingDetail(err))
		return
	}

	property, err := h.db.UpdateProperty(id, req)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	err = h.db.DeleteProperty(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

func (h *Handler) GetPropertyTypes(c *gin.Context) {
	types, err := h.db.PropertyTypes()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list property types")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list property types"})
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *Handler) GetCities(c *gin.Context) {
	cities, err := h.db.Cities()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list cities")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cities"})
		return
	}

	c.JSON(http.StatusOK, cities)
}

func (h *Handler) GetSales(c *gin.Context) {
	sales, err := h.db.ListSales()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list sales")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (h *Handler) CreateSale(c *gin.Context) {
	var req models.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid sale payload")
		c.JSON(http.StatusUnprocessableEntity, bindingDetail(err))
		return
	}

	exists, err := h.db.PropertyExists(req.PropertyID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to check property reference")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		return
	}
	if !exists {
		c.JSON(http.StatusUnprocessableEntity, validationDetail("property_id", "referenced property does not exist"))
		return
	}

	sale := req.ToSale()
	if err := h.db.CreateSale(&sale); err != nil {
		h.logger.WithError(err).Error("Failed to create sale")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *Handler) GetRenovations(c *gin.Context) {
	renovations, err := h.db.ListRenovations()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list renovations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list renovations"})
		return
	}

	c.JSON(http.StatusOK, renovations)
}

func (h *Handler) CreateRenovation(c *gin.Context) {
	var req models.RenovationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid renovation payload")
		c.JSON(http.StatusUnprocessableEntity, bindingDetail(err))
		return
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		c.JSON(http.StatusUnprocessableEntity, validationDetail("end_date", "end_date must not be before start_date"))
		return
	}

	exists, err := h.db.PropertyExists(req.PropertyID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to check property reference")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create renovation"})
		return
	}
	if !exists {
		c.JSON(http.StatusUnprocessableEntity, validationDetail("property_id", "referenced property does not exist"))
		return
	}

	renovation := req.ToRenovation()
	if err := h.db.CreateRenovation(&renovation); err != nil {
		h.logger.WithError(err).Error("Failed to create renovation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create renovation"})
		return
	}

	c.JSON(http.StatusCreated, renovation)
}

func (h *Handler) GetPropertyAnalytics(c *gin.Context) {
	summary, err := h.analytics.GetPropertyAnalytics()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute property analytics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute property analytics"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetSalesAnalytics(c *gin.Context) {
	summary, err := h.analytics.GetSalesAnalytics()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute sales analytics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute sales analytics"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetRenovationAnalytics(c *gin.Context) {
	summary, err := h.analytics.GetRenovationAnalytics()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute renovation analytics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute renovation analytics"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
