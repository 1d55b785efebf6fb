package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAMSON5319x/visionguard/module/core/domain"
)

type alertService interface {
	List(ctx context.Context) []domain.Alert
	Pending(ctx context.Context) []domain.Alert
	Resolve(ctx context.Context, id string) bool
	RaiseSOS(ctx context.Context, pos domain.Position) domain.Alert
}

type trackerService interface {
	Position() domain.Position
	Zones() []domain.SafeZone
	UpdateZone(ctx context.Context, id string, radiusMeters float64, enabled bool) error
	SetTrailEnabled(enabled bool)
	Snapshot() domain.TrackerSnapshot
}

type deviceService interface {
	Health() domain.DeviceHealth
}

type insightService interface {
	Current() string
	Refresh(ctx context.Context) string
}

type DashboardHandler struct {
	alertSvc   alertService
	trackerSvc trackerService
	deviceSvc  deviceService
	insightSvc insightService
}

func NewDashboardHandler(alertSvc alertService, trackerSvc trackerService, deviceSvc deviceService, insightSvc insightService) *DashboardHandler {
	return &DashboardHandler{
		alertSvc:   alertSvc,
		trackerSvc: trackerSvc,
		deviceSvc:  deviceSvc,
		insightSvc: insightSvc,
	}
}

func (h *DashboardHandler) Register(r *gin.RouterGroup) {
	r.GET("/alerts", h.GetAlerts)
	r.POST("/alerts/sos", h.RaiseSOS)
	r.POST("/alerts/:alert_id/resolve", h.ResolveAlert)
	r.GET("/zones", h.GetZones)
	r.PUT("/zones/:zone_id", h.UpdateZone)
	r.GET("/position", h.GetPosition)
	r.GET("/map", h.GetMap)
	r.PUT("/map/trail", h.SetTrail)
	r.GET("/device", h.GetDevice)
	r.GET("/insight", h.GetInsight)
	r.POST("/insight/refresh", h.RefreshInsight)
}

func (h *DashboardHandler) GetAlerts(c *gin.Context) {
	var alerts []domain.Alert
	if c.Query("status") == "pending" {
		alerts = h.alertSvc.Pending(c.Request.Context())
	} else {
		alerts = h.alertSvc.List(c.Request.Context())
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *DashboardHandler) RaiseSOS(c *gin.Context) {
	alert := h.alertSvc.RaiseSOS(c.Request.Context(), h.trackerSvc.Position())
	c.JSON(http.StatusCreated, alert)
}

// ResolveAlert always answers 200: resolving an unknown or
// already-resolved alert is a tolerated no-op so late or repeated UI
// actions never surface as errors.
func (h *DashboardHandler) ResolveAlert(c *gin.Context) {
	resolved := h.alertSvc.Resolve(c.Request.Context(), c.Param("alert_id"))
	c.JSON(http.StatusOK, gin.H{"resolved": resolved})
}

func (h *DashboardHandler) GetZones(c *gin.Context) {
	c.JSON(http.StatusOK, h.trackerSvc.Zones())
}

type updateZoneRequest struct {
	RadiusMeters float64 `json:"radius_meters"`
	Enabled      bool    `json:"enabled"`
}

func (h *DashboardHandler) UpdateZone(c *gin.Context) {
	var req updateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.trackerSvc.UpdateZone(c.Request.Context(), c.Param("zone_id"), req.RadiusMeters, req.Enabled)
	switch {
	case errors.Is(err, domain.ErrZoneNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

func (h *DashboardHandler) GetPosition(c *gin.Context) {
	c.JSON(http.StatusOK, h.trackerSvc.Position())
}

func (h *DashboardHandler) GetMap(c *gin.Context) {
	c.JSON(http.StatusOK, h.trackerSvc.Snapshot())
}

type setTrailRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *DashboardHandler) SetTrail(c *gin.Context) {
	var req setTrailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.trackerSvc.SetTrailEnabled(req.Enabled)
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *DashboardHandler) GetDevice(c *gin.Context) {
	c.JSON(http.StatusOK, h.deviceSvc.Health())
}

func (h *DashboardHandler) GetInsight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"insight": h.insightSvc.Current()})
}

func (h *DashboardHandler) RefreshInsight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"insight": h.insightSvc.Refresh(c.Request.Context())})
}
