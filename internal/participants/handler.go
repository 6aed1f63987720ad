package participants

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/pkg/params"
	"github.com/parkops/events-backend/pkg/response"
)

// Handler handles participant HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a participants handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// List handles GET /events/:id/participants.
func (h *Handler) List(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	list, err := h.svc.List(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// Register handles POST /events/:id/participants.
func (h *Handler) Register(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	reg, err := h.svc.Register(c.Request.Context(), eventID, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.logger.Info("participant registered",
		zap.Int64("event_id", eventID),
		zap.Int64("registration_id", reg.ID),
		zap.Int("attendees", reg.AttendeeCount),
	)
	response.Created(c, reg)
}

// UpdateStatus handles PUT /events/:id/participants/:participantId/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	id, err := params.ID(c, "participantId")
	if err != nil {
		response.BadRequest(c, "invalid participant id")
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	reg, err := h.svc.UpdateStatus(c.Request.Context(), eventID, id, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, reg)
}

// Remove handles DELETE /events/:id/participants/:participantId.
func (h *Handler) Remove(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	id, err := params.ID(c, "participantId")
	if err != nil {
		response.BadRequest(c, "invalid participant id")
		return
	}
	if err := h.svc.Remove(c.Request.Context(), eventID, id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Message(c, "participant removed")
}

// Summary handles GET /events/:id/participants/summary.
func (h *Handler) Summary(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, sum)
}

// Export handles POST /events/:id/participants/export.
func (h *Handler) Export(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	res, err := h.svc.Export(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, res)
}
