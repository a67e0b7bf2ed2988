package router

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/media"
	"github.com/polkiloo/marketplace/internal/metrics"
	"github.com/polkiloo/marketplace/internal/server/http/handlers"
	"github.com/polkiloo/marketplace/internal/server/http/middleware"
)

// exportPaths are streamed to the client and bypass response compression.
var exportPaths = []string{`.*/export(/.*)?$`}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, files media.Storage, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithExcludedPathsRegexs(exportPaths),
	))

	if m, ok := files.(media.Mountable); ok {
		if prefix, fs := m.Mount(); strings.HasPrefix(prefix, "/") {
			engine.StaticFS(prefix, fs)
		}
	}
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	marketingHandler := handlers.NewMarketingHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.GET("/marketing", marketingHandler.List)
	api.GET("/marketing/:id", marketingHandler.Show)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	private := api.Group("")
	private.Use(middleware.AuthRequired(facade))
	private.PUT("/user/dni", authHandler.UpdateIdentityDocument)

	private.GET("/orders", orderHandler.List)
	private.GET("/orders/export", orderHandler.Export)
	private.GET("/orders/export/:shop_id", orderHandler.Export)
	private.GET("/orders/track/:tracking_number", orderHandler.Track)
	private.GET("/orders/:id", orderHandler.Show)
	private.PUT("/orders/:id", orderHandler.ChangeStatus)
	private.DELETE("/orders/:id", orderHandler.Delete)

	private.GET("/products/export", catalogHandler.ExportProducts)

	private.POST("/marketing", marketingHandler.Create)
	private.PUT("/marketing/:id", marketingHandler.Update)

	return engine
}
