package router

import (
	"time"

	"github.com/DIBANGI/vasuki-inventory/internal/config"
	"github.com/DIBANGI/vasuki-inventory/internal/handler"
	"github.com/DIBANGI/vasuki-inventory/internal/middleware"
	"github.com/DIBANGI/vasuki-inventory/internal/repository"
	"github.com/DIBANGI/vasuki-inventory/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	dimensionRepo := repository.NewDimensionRepository(db)
	itemRepo := repository.NewItemRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	catalogSvc := service.NewCatalogService(itemRepo, pricingRepo, dimensionRepo)
	reportSvc := service.NewReportService(reportRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	itemsH := handler.NewItemsHandler(catalogSvc, rdb)
	dimensionsH := handler.NewDimensionsHandler(dimensionRepo)
	reportsH := handler.NewReportsHandler(reportSvc)
	priceTTL := time.Duration(cfg.PriceCacheTTLMinutes) * time.Minute
	priceH := handler.NewPriceCheckHandler(itemRepo, pricingRepo, rdb, priceTTL)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Price check — counter lookup, cached
	r.GET("/v1/price/:sku", priceH.GetBySKU)

	v1 := r.Group("/v1")
	{
		v1.POST("/items", itemsH.Create)
		v1.GET("/items", itemsH.List)
		v1.GET("/items/:sku", itemsH.GetBySKU)
		v1.POST("/items/:id/sell", itemsH.MarkSold)
		v1.POST("/items/import", itemsH.Import)

		dims := v1.Group("/dimensions")
		{
			dims.GET("/categories", dimensionsH.ListCategories)
			dims.GET("/stones", dimensionsH.ListStones)
			dims.GET("/colors", dimensionsH.ListColors)
			dims.GET("/finishes", dimensionsH.ListFinishes)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/overview", reportsH.Overview)
			reports.GET("/stock-status", reportsH.StockStatus)
			reports.GET("/sales", reportsH.Sales)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
