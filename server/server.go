// Package server собирает HTTP сервер подбора дисков: маршруты,
// middleware и привязку сервисов к обработчикам.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"dicingserver/analysis"
	"dicingserver/database"
	"dicingserver/internal/config"
	"dicingserver/server/handlers"
	"dicingserver/server/middleware"
	"dicingserver/server/services"
)

// Server HTTP сервер подбора дисков для резки пластин
type Server struct {
	config *config.Config
	db     *database.DB

	catalogs *services.CatalogService
	analysis *services.AnalysisService
	decode   *services.DecodeService

	httpServer *http.Server
}

// NewServer создает сервер и инициализирует сервисы
func NewServer(cfg *config.Config, db *database.DB) (*Server, error) {
	catalogs, err := services.NewCatalogService(db)
	if err != nil {
		return nil, fmt.Errorf("инициализация сервиса каталогов: %w", err)
	}

	decode, err := services.NewDecodeService(cfg.GrammarPath)
	if err != nil {
		return nil, fmt.Errorf("инициализация сервиса расшифровки: %w", err)
	}

	analysisCfg := analysis.Config{
		AssumedCutsPerHour: cfg.AssumedCutsPerHour,
		Weights:            cfg.ScoreWeights,
	}

	return &Server{
		config:   cfg,
		db:       db,
		catalogs: catalogs,
		analysis: services.NewAnalysisService(analysisCfg, cfg.RecommendationTopK, cfg.KerfToleranceMicrons),
		decode:   decode,
	}, nil
}

// buildRouter собирает gin-роутер с маршрутами и middleware
func (s *Server) buildRouter() *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.InitErrorMetrics()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(middleware.Recover())

	healthHandler := handlers.NewHealthHandler(s.catalogs)
	catalogHandler := handlers.NewCatalogHandler(s.catalogs)
	discHandler := handlers.NewDiscHandler(s.catalogs, s.analysis)
	statsHandler := handlers.NewStatsHandler(s.catalogs, s.analysis)
	recommendHandler := handlers.NewRecommendHandler(s.catalogs, s.analysis)
	decodeHandler := handlers.NewDecodeHandler(s.decode)

	router.GET("/health", healthHandler.HandleHealth)
	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)

	api := router.Group("/api")
	{
		catalogs := api.Group("/catalogs")
		{
			catalogs.POST("/upload",
				middleware.UploadRateLimit(s.config.UploadRatePerMinute),
				catalogHandler.HandleUpload)
			catalogs.GET("", catalogHandler.HandleList)
			catalogs.GET("/:uuid", catalogHandler.HandleGet)
			catalogs.POST("/:uuid/activate", catalogHandler.HandleActivate)
		}

		discs := api.Group("/discs")
		{
			discs.GET("", discHandler.HandleList)
			discs.GET("/metrics", discHandler.HandleMetrics)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/materials", statsHandler.HandleMaterialStats)
			stats.GET("/cut-types", statsHandler.HandleCutTypeStats)
			stats.GET("/compare", statsHandler.HandleCompare)
			stats.GET("/thickness-ranges", statsHandler.HandleThicknessRanges)
			stats.GET("/trends", statsHandler.HandleTrends)
		}

		api.POST("/recommendations", recommendHandler.HandleRecommend)

		decode := api.Group("/decode")
		{
			decode.POST("", decodeHandler.HandleDecode)
			decode.GET("/validate", decodeHandler.HandleValidate)
		}

		api.GET("/monitoring/errors", statsHandler.HandleErrorMetrics)
	}

	return router
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.buildRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("сервер запускается", "port", s.config.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("запуск HTTP сервера: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	slog.Info("остановка сервера")
	return s.httpServer.Shutdown(ctx)
}
