package events

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/params"
	"github.com/parkops/events-backend/pkg/response"
)

// EventService is what the HTTP layer needs from Service.
type EventService interface {
	List(ctx context.Context, f models.EventFilter) ([]models.Event, error)
	ListByPark(ctx context.Context, parkID int64) ([]models.Event, error)
	Get(ctx context.Context, id int64) (*models.EventDetail, error)
	Create(ctx context.Context, req *EventRequest) (*models.Event, error)
	Update(ctx context.Context, id int64, req *EventRequest) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
}

// Handler handles event HTTP endpoints.
type Handler struct {
	svc    EventService
	logger *zap.Logger
}

// NewHandler creates an event handler.
func NewHandler(svc EventService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// List handles GET /events?status=&type=&park=&search=&upcoming=.
func (h *Handler) List(c *gin.Context) {
	parkID, err := params.OptionalID(c, "park")
	if err != nil {
		response.BadRequest(c, "invalid park id")
		return
	}
	f := models.EventFilter{
		Status:   models.EventStatus(c.Query("status")),
		Type:     models.EventType(c.Query("type")),
		ParkID:   parkID,
		Search:   c.Query("search"),
		Upcoming: params.Bool(c, "upcoming"),
	}
	if f.Status != "" && !f.Status.Valid() {
		response.BadRequest(c, "invalid status filter")
		return
	}
	if f.Type != "" && !f.Type.Valid() {
		response.BadRequest(c, "invalid type filter")
		return
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// ListByPark handles GET /parks/:id/events.
func (h *Handler) ListByPark(c *gin.Context) {
	parkID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid park id")
		return
	}
	list, err := h.svc.ListByPark(c.Request.Context(), parkID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /events/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, d)
}

// Create handles POST /events.
func (h *Handler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	e, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.logger.Info("event created", zap.Int64("event_id", e.ID), zap.Int("parks", len(req.ParkIDs)))
	response.Created(c, e)
}

// Update handles PUT /events/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	e, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, e)
}

// Delete handles DELETE /events/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.logger.Info("event deleted", zap.Int64("event_id", id))
	response.Message(c, "event deleted")
}

// Reference handles GET /events-reference-data.
func (h *Handler) Reference(c *gin.Context) {
	response.OK(c, Reference())
}
