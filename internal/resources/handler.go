package resources

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/pkg/params"
	"github.com/parkops/events-backend/pkg/response"
)

// Handler handles event resource HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a resources handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func ids(c *gin.Context) (eventID, resourceID int64, ok bool) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return 0, 0, false
	}
	resourceID, err = params.ID(c, "resourceId")
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return 0, 0, false
	}
	return eventID, resourceID, true
}

// List handles GET /events/:id/resources.
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

// Get handles GET /events/:id/resources/:resourceId.
func (h *Handler) Get(c *gin.Context) {
	eventID, resourceID, ok := ids(c)
	if !ok {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), eventID, resourceID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, res)
}

// Assign handles POST /events/:id/resources.
func (h *Handler) Assign(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	res, err := h.svc.Assign(c.Request.Context(), eventID, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, res)
}

// Update handles PUT /events/:id/resources/:resourceId.
func (h *Handler) Update(c *gin.Context) {
	eventID, resourceID, ok := ids(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	res, err := h.svc.Update(c.Request.Context(), eventID, resourceID, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, res)
}

// UpdateStatus handles PUT /events/:id/resources/:resourceId/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	eventID, resourceID, ok := ids(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	res, err := h.svc.UpdateStatus(c.Request.Context(), eventID, resourceID, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, res)
}

// Remove handles DELETE /events/:id/resources/:resourceId.
func (h *Handler) Remove(c *gin.Context) {
	eventID, resourceID, ok := ids(c)
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), eventID, resourceID); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Message(c, "resource removed")
}

// Summary handles GET /events/:id/resources/summary.
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
