package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/internal/repository/database"
)

type rosterService interface {
	GetRoster(ctx context.Context) ([]domain.MemberStatus, error)
	GetMemberStatuses(ctx context.Context, memberID string) ([]domain.MemberStatus, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationPing, error)
}

type overrideService interface {
	SetStatus(ctx context.Context, memberID, geofenceID string, status domain.PresenceStatus) error
}

type pingResponse struct {
	DeviceID       string  `json:"device_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_meters"`
	Timestamp      int64   `json:"timestamp"`
}

type overrideRequest struct {
	GeofenceID string `json:"geofence_id"`
	Status     string `json:"status"`
}

type PresenceHandler struct {
	rosterSvc   rosterService
	overrideSvc overrideService
}

func NewPresenceHandler(rosterSvc rosterService, overrideSvc overrideService) *PresenceHandler {
	return &PresenceHandler{rosterSvc: rosterSvc, overrideSvc: overrideSvc}
}

func (h *PresenceHandler) Register(r *gin.RouterGroup) {
	r.GET("/members", h.GetRoster)
	r.GET("/members/:member_id/status", h.GetMemberStatuses)
	r.GET("/members/:member_id/history", h.GetHistory)
	r.PUT("/members/:member_id/status", h.SetStatus)
}

func (h *PresenceHandler) GetRoster(c *gin.Context) {
	roster, err := h.rosterSvc.GetRoster(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch roster"})
		return
	}

	c.JSON(http.StatusOK, roster)
}

func (h *PresenceHandler) GetMemberStatuses(c *gin.Context) {
	memberID := c.Param("member_id")

	statuses, err := h.rosterSvc.GetMemberStatuses(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch member statuses"})
		return
	}
	if len(statuses) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}

	c.JSON(http.StatusOK, statuses)
}

func (h *PresenceHandler) GetHistory(c *gin.Context) {
	memberID := c.Param("member_id")

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		MemberID: memberID,
		Start:    time.Unix(start, 0),
		End:      time.Unix(end, 0),
	}

	pings, err := h.rosterSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]pingResponse, len(pings))
	for i, p := range pings {
		results[i] = pingResponse{
			DeviceID:       p.DeviceID,
			Latitude:       p.Location.Lat,
			Longitude:      p.Location.Lon,
			AccuracyMeters: p.AccuracyMeters,
			Timestamp:      p.Timestamp.Unix(),
		}
	}
	c.JSON(http.StatusOK, results)
}

func (h *PresenceHandler) SetStatus(c *gin.Context) {
	memberID := c.Param("member_id")

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.GeofenceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "geofence_id is required"})
		return
	}

	status := domain.PresenceStatus(req.Status)
	if !domain.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be IN_ROOM or AWAY"})
		return
	}

	if err := h.overrideSvc.SetStatus(c.Request.Context(), memberID, req.GeofenceID, status); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "membership not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"member_id": memberID, "geofence_id": req.GeofenceID, "status": status})
}
