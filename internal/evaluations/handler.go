package evaluations

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/pkg/params"
	"github.com/parkops/events-backend/pkg/response"
)

// Handler handles evaluation HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates an evaluations handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// List handles GET /events/:id/evaluations.
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

// Create handles POST /events/:id/evaluations.
func (h *Handler) Create(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ev, err := h.svc.Create(c.Request.Context(), eventID, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, ev)
}

// Update handles PUT /events/:id/evaluations/:evaluationId.
func (h *Handler) Update(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	id, err := params.ID(c, "evaluationId")
	if err != nil {
		response.BadRequest(c, "invalid evaluation id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ev, err := h.svc.Update(c.Request.Context(), eventID, id, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, ev)
}

// Remove handles DELETE /events/:id/evaluations/:evaluationId.
func (h *Handler) Remove(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	id, err := params.ID(c, "evaluationId")
	if err != nil {
		response.BadRequest(c, "invalid evaluation id")
		return
	}
	if err := h.svc.Remove(c.Request.Context(), eventID, id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Message(c, "evaluation removed")
}
