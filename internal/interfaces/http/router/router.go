// Package router assembles the HTTP surface of the API: global middleware,
// authentication, role guards, and the versioned route tree.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sitekhata/backend/internal/infrastructure/auth"
	"github.com/sitekhata/backend/internal/infrastructure/config"
	"github.com/sitekhata/backend/internal/infrastructure/logger"
	"github.com/sitekhata/backend/internal/interfaces/http/handler"
	"github.com/sitekhata/backend/internal/interfaces/http/middleware"
)

// Login attempts are throttled separately from the global body/time limits
// so credential stuffing cannot ride on an authenticated user's quota.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute

	// Multipart overhead on top of the 10 MiB workbook cap.
	importBodyLimit = 12 << 20
)

// Handlers bundles every HTTP handler the router wires up.
type Handlers struct {
	System         *handler.SystemHandler
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Vendor         *handler.VendorHandler
	Item           *handler.ItemHandler
	Entry          *handler.LedgerEntryHandler
	Payment        *handler.PaymentHandler
	Reconciliation *handler.ReconciliationHandler
	Report         *handler.ReportHandler
	WorkLog        *handler.WorkLogHandler
	Import         *handler.ImportHandler
}

// Setup builds the gin engine with the full middleware chain and route tree.
func Setup(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg)))
	engine.Use(middleware.Secure())
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	// Liveness endpoints live outside the versioned tree and skip auth.
	engine.GET("/health", h.System.Health)
	engine.GET("/ping", h.System.Ping)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtService))

	registerAuthRoutes(api, h)
	registerUserRoutes(api, h)
	registerLedgerRoutes(api, h)
	registerReportRoutes(api, h)
	registerWorkLogRoutes(api, h)
	registerImportRoutes(api, h)

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}

func registerAuthRoutes(api *gin.RouterGroup, h Handlers) {
	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", middleware.RateLimit(loginLimiter), h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.RefreshToken)
	authGroup.PUT("/password", h.Auth.ChangePassword)
	authGroup.GET("/me", h.Auth.GetCurrentUser)
}

// User management is admin territory: operators and viewers never touch it.
func registerUserRoutes(api *gin.RouterGroup, h Handlers) {
	users := api.Group("/users")
	users.Use(middleware.RequireAdmin())

	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.POST("/:id/reset-password", h.User.ResetPassword)
	users.POST("/:id/deactivate", h.User.Deactivate)
	users.POST("/:id/activate", h.User.Activate)
}

// registerLedgerRoutes wires vendors, items, ledger entries, payments,
// allocations, and reconciliation. Reads are open to any authenticated
// role; mutations require write access.
func registerLedgerRoutes(api *gin.RouterGroup, h Handlers) {
	write := middleware.RequireWriter()

	vendors := api.Group("/vendors")
	vendors.GET("", h.Vendor.List)
	vendors.GET("/:id", h.Vendor.GetByID)
	vendors.POST("", write, h.Vendor.Create)
	vendors.PUT("/:id", write, h.Vendor.Update)
	vendors.DELETE("/:id", write, h.Vendor.Delete)

	items := api.Group("/items")
	items.GET("", h.Item.List)
	items.GET("/:id", h.Item.GetByID)
	items.POST("", write, h.Item.Create)
	items.PUT("/:id", write, h.Item.Update)
	items.DELETE("/:id", write, h.Item.Delete)

	entries := api.Group("/entries")
	entries.GET("", h.Entry.List)
	entries.GET("/:id", h.Entry.GetByID)
	entries.POST("", write, h.Entry.Create)
	entries.PUT("/:id", write, h.Entry.Update)
	entries.DELETE("/:id", write, h.Entry.Delete)

	payments := api.Group("/payments")
	payments.GET("", h.Payment.List)
	payments.GET("/:id", h.Payment.GetByID)
	payments.GET("/:id/allocations", h.Payment.GetAllocations)
	payments.GET("/:id/allocations/preview", h.Payment.PreviewAllocations)
	payments.POST("", write, h.Payment.Create)
	payments.PUT("/:id", write, h.Payment.Update)
	payments.DELETE("/:id", write, h.Payment.Delete)
	payments.POST("/:id/allocations", write, h.Payment.Allocate)

	// A confirmed run rewrites every allocation, so it is gated to admins.
	api.POST("/reconciliation/run", middleware.RequireAdmin(), h.Reconciliation.Run)
}

func registerReportRoutes(api *gin.RouterGroup, h Handlers) {
	reports := api.Group("/reports")
	reports.GET("/summary", h.Report.GetFinancialSummary)
	reports.GET("/vendor-ledger", h.Report.GetVendorLedger)
	reports.GET("/vendor-ledger/:id", h.Report.GetVendorLedgerRow)
	reports.GET("/expenses/date-wise", h.Report.GetDateWiseExpenses)
	reports.GET("/expenses/item-wise", h.Report.GetItemWiseExpenses)
	reports.GET("/expenses/monthly", h.Report.GetMonthlyExpenses)
	reports.GET("/dashboard", h.Report.GetDashboard)
}

func registerWorkLogRoutes(api *gin.RouterGroup, h Handlers) {
	write := middleware.RequireWriter()

	worklogs := api.Group("/worklogs")
	worklogs.GET("", h.WorkLog.List)
	worklogs.GET("/:id", h.WorkLog.GetByID)
	worklogs.POST("", write, h.WorkLog.Create)
	worklogs.PUT("/:id", write, h.WorkLog.Update)
	worklogs.DELETE("/:id", write, h.WorkLog.Delete)
	worklogs.POST("/:id/media/upload-url", write, h.WorkLog.RequestMediaUpload)
	worklogs.POST("/:id/media", write, h.WorkLog.AttachMedia)
	worklogs.DELETE("/:id/media/:mediaID", write, h.WorkLog.RemoveMedia)
}

func registerImportRoutes(api *gin.RouterGroup, h Handlers) {
	api.POST("/import/ledger",
		middleware.RequireWriter(),
		middleware.BodyLimit(importBodyLimit),
		h.Import.Import,
	)
}
