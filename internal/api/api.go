// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/planwise/ibp-backend/internal/api/handlers"
	"github.com/planwise/ibp-backend/internal/api/middleware"
	"github.com/planwise/ibp-backend/internal/config"
	"github.com/planwise/ibp-backend/internal/service"
	"github.com/planwise/ibp-backend/internal/web"
)

type Services struct {
	Products *service.ProductService
	History  *service.HistoryService
	Forecast *service.ForecastService
	Planning *service.PlanningService
}

func NewRouter(services *Services, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Role(cfg.Planning.Role),
	)

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Page"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(cfg.Server.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	productHandler := handlers.NewProductHandler(services.Products)
	historyHandler := handlers.NewHistoryHandler(services.History)
	forecastHandler := handlers.NewForecastHandler(services.Forecast)
	planningHandler := handlers.NewPlanningHandler(services.Planning)

	// One GET route per navigation page, all dispatched through the page
	// table so unmatched paths fall through to the not-found view.
	pageHandler := handlers.NewPageHandler(productHandler, forecastHandler, planningHandler)
	for _, path := range web.Paths() {
		router.GET(path, pageHandler.Show)
	}
	router.NoRoute(pageHandler.Show)

	apiGroup := router.Group("/api/v1")
	{
		apiGroup.GET("/products", productHandler.List)
		apiGroup.PUT("/products", productHandler.Upsert)
		apiGroup.DELETE("/products/:code", productHandler.Delete)

		apiGroup.GET("/history/:code", historyHandler.List)
		apiGroup.POST("/history/upload", historyHandler.Upload)

		apiGroup.GET("/forecast/models", forecastHandler.Models)
		apiGroup.GET("/forecast/:code", forecastHandler.Forecast)

		planningGroup := apiGroup.Group("/planning")
		{
			planningGroup.GET("/kpis", planningHandler.KPIs)
			planningGroup.GET("/scenarios", planningHandler.Scenarios)
			planningGroup.GET("/portfolio", planningHandler.Portfolio)
		}

		apiGroup.POST("/approval/decision",
			middleware.RequireRole(config.RoleManager),
			planningHandler.Decide,
		)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
