package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucasmbr/deliverydash/internal/analytics"
	"github.com/lucasmbr/deliverydash/internal/geo"
	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/lucasmbr/deliverydash/internal/store"
	"go.uber.org/zap"
)

// Server exposes the order store and the analytics surface over HTTP for
// the back-office and rider views.
type Server struct {
	cfg      *models.Config
	orders   *store.OrderStore
	analyzer *analytics.Analyzer
	geocoder geo.Geocoder
	logger   *zap.Logger
	engine   *gin.Engine
}

func New(cfg *models.Config, orders *store.OrderStore, analyzer *analytics.Analyzer, geocoder geo.Geocoder, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:      cfg,
		orders:   orders,
		analyzer: analyzer,
		geocoder: geocoder,
		logger:   logger,
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/dashboard", s.dashboard)
		api.GET("/financial", s.financial)
		api.GET("/customers", s.customers)
		api.GET("/route", s.optimizedRoute)
		api.GET("/geocode", s.geocode)

		api.GET("/orders", s.listOrders)
		api.GET("/orders/:id", s.getOrder)
		api.POST("/orders", s.createOrder)
		api.POST("/orders/:id/status", s.updateStatus)
	}
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	s.logger.Info("http server listening", zap.String("addr", s.cfg.ServerAddr))
	return s.engine.Run(s.cfg.ServerAddr)
}

// Handler exposes the router, also used by handler tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(begin)),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "orders": s.orders.Count()})
}
