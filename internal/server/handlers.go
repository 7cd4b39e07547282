package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucasmbr/deliverydash/internal/analytics"
	"github.com/lucasmbr/deliverydash/internal/checkout"
	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/geo"
	"github.com/lucasmbr/deliverydash/internal/models"
	"go.uber.org/zap"
)

func (s *Server) dashboard(c *gin.Context) {
	period := c.DefaultQuery("period", analytics.Period7Days)
	start, end, err := analytics.ResolvePeriod(period, time.Now(), c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Dashboard(s.orders.List(), start, end))
}

func (s *Server) financial(c *gin.Context) {
	c.JSON(http.StatusOK, analytics.Summarize(s.orders.List()))
}

func (s *Server) customers(c *gin.Context) {
	profiles := analytics.BuildProfiles(s.orders.List())
	// phones are masked for display, raw numbers stay server-side
	type maskedProfile struct {
		models.CustomerProfile
		Phone string `json:"phone"`
	}
	masked := make([]maskedProfile, 0, len(profiles))
	for _, profile := range profiles {
		masked = append(masked, maskedProfile{
			CustomerProfile: profile,
			Phone:           finance.MaskPhone(profile.Phone),
		})
	}
	c.JSON(http.StatusOK, masked)
}

func (s *Server) optimizedRoute(c *gin.Context) {
	dispatched := s.orders.ListByStatus(models.OrderStatusDispatched)
	if courier := c.Query("courier"); courier != "" {
		var mine []models.Order
		for _, order := range dispatched {
			if order.CourierID == courier {
				mine = append(mine, order)
			}
		}
		dispatched = mine
	}

	start := s.cfg.StoreLocation()
	route := geo.OptimizeRoute(dispatched, start)
	c.JSON(http.StatusOK, gin.H{
		"stops":     route,
		"length_km": geo.RouteLength(route, start),
	})
}

func (s *Server) geocode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	location, err := s.geocoder.Geocode(c.Request.Context(), query)
	if err != nil {
		s.logger.Warn("geocode failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding unavailable"})
		return
	}
	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}
	c.JSON(http.StatusOK, location)
}

func (s *Server) listOrders(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		c.JSON(http.StatusOK, s.orders.ListByStatus(status))
		return
	}
	c.JSON(http.StatusOK, s.orders.List())
}

func (s *Server) getOrder(c *gin.Context) {
	order, ok := s.orders.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type createOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Items         []models.OrderItem `json:"items" binding:"required"`
	PaymentMethod string             `json:"payment_method"`
	Channel       string             `json:"channel"`
	Coupon        string             `json:"coupon"`
	Address       *models.Address    `json:"address"`
	Location      *models.Location   `json:"location"`
	PointsUsed    int                `json:"points_used"`
	ScheduledFor  *time.Time         `json:"scheduled_for"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := checkout.BuildOrder(checkout.Request{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         req.Items,
		PaymentMethod: req.PaymentMethod,
		Channel:       req.Channel,
		Coupon:        req.Coupon,
		Address:       req.Address,
		Location:      req.Location,
		DeliveryFee:   s.deliveryFeeFor(req.Channel),
		ServiceFeePct: s.cfg.ServiceFee,
		PointsUsed:    req.PointsUsed,
		ScheduledFor:  req.ScheduledFor,
	}, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.orders.Add(order); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

type updateStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	CourierID string `json:"courier_id"`
}

func (s *Server) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.orders.Transition(id, req.Status, time.Now()); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if req.CourierID != "" {
		if err := s.orders.AssignCourier(id, req.CourierID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	}

	order, _ := s.orders.Get(id)
	c.JSON(http.StatusOK, order)
}

func (s *Server) deliveryFeeFor(channel string) float64 {
	if channel == models.ChannelDelivery {
		return s.cfg.BaseFee
	}
	return 0
}
