package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estatedash/server/internal/database"
)

func SetupRoutes(router *gin.Engine, db *database.Database, logger *logrus.Logger) error {
	handler, err := NewHandler(db, logger)
	if err != nil {
		return err
	}

	api := router.Group("/api")
	{
		api.GET("/health", handler.HealthCheck)

		api.GET("/properties", handler.GetProperties)
		api.POST("/properties", handler.CreateProperty)
		api.GET("/properties/types", handler.GetPropertyTypes)
		api.GET("/properties/cities", handler.GetCities)
		api.GET("/properties/:id", handler.GetProperty)
		api.PUT("/properties/:id", handler.UpdateProperty)
		api.DELETE("/properties/:id", handler.DeleteProperty)

		api.GET("/sales", handler.GetSales)
		api.POST("/sales", handler.CreateSale)

		api.GET("/renovations", handler.GetRenovations)
		api.POST("/renovations", handler.CreateRenovation)

		api.GET("/analytics/properties", handler.GetPropertyAnalytics)
		api.GET("/analytics/sales", handler.GetSalesAnalytics)
		api.GET("/analytics/renovations", handler.GetRenovationAnalytics)
	}

	return nil
}
