package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/geofence"
	"github.com/jschady/geodorm/module/core/internal/repository/database"
)

type geofenceService interface {
	Create(ctx context.Context, name string, center domain.GeoPoint, radiusMeters, hysteresisMeters float64) (*domain.Geofence, error)
	Update(ctx context.Context, gf *domain.Geofence) error
	Get(ctx context.Context, geofenceID string) (*domain.Geofence, error)
	List(ctx context.Context) ([]domain.Geofence, error)
}

type geofenceRequest struct {
	Name             string  `json:"name"`
	CenterLatitude   float64 `json:"center_latitude"`
	CenterLongitude  float64 `json:"center_longitude"`
	RadiusMeters     float64 `json:"radius_meters"`
	HysteresisMeters float64 `json:"hysteresis_meters"`
}

type GeofenceHandler struct {
	geofenceSvc geofenceService
}

func NewGeofenceHandler(geofenceSvc geofenceService) *GeofenceHandler {
	return &GeofenceHandler{geofenceSvc: geofenceSvc}
}

func (h *GeofenceHandler) Register(r *gin.RouterGroup) {
	r.POST("/geofences", h.Create)
	r.GET("/geofences", h.List)
	r.GET("/geofences/:geofence_id", h.Get)
	r.PUT("/geofences/:geofence_id", h.Update)
}

func (h *GeofenceHandler) Create(c *gin.Context) {
	var req geofenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	center := domain.GeoPoint{Lat: req.CenterLatitude, Lon: req.CenterLongitude}
	gf, err := h.geofenceSvc.Create(c.Request.Context(), req.Name, center, req.RadiusMeters, req.HysteresisMeters)
	if err != nil {
		if isConfigError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create geofence"})
		return
	}

	c.JSON(http.StatusCreated, gf)
}

func (h *GeofenceHandler) List(c *gin.Context) {
	fences, err := h.geofenceSvc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch geofences"})
		return
	}

	c.JSON(http.StatusOK, fences)
}

func (h *GeofenceHandler) Get(c *gin.Context) {
	gf, err := h.geofenceSvc.Get(c.Request.Context(), c.Param("geofence_id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "geofence not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch geofence"})
		return
	}

	c.JSON(http.StatusOK, gf)
}

func (h *GeofenceHandler) Update(c *gin.Context) {
	var req geofenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	gf := &domain.Geofence{
		ID:               c.Param("geofence_id"),
		Name:             req.Name,
		Center:           domain.GeoPoint{Lat: req.CenterLatitude, Lon: req.CenterLongitude},
		RadiusMeters:     req.RadiusMeters,
		HysteresisMeters: req.HysteresisMeters,
	}

	if err := h.geofenceSvc.Update(c.Request.Context(), gf); err != nil {
		switch {
		case isConfigError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "geofence not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update geofence"})
		}
		return
	}

	c.JSON(http.StatusOK, gf)
}

func isConfigError(err error) bool {
	return errors.Is(err, geofence.ErrInvalidFenceConfig) || errors.Is(err, geofence.ErrInvalidCoordinate)
}
