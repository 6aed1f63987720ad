package staff

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/pkg/params"
	"github.com/parkops/events-backend/pkg/response"
)

// Handler handles staff and volunteer HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a staff handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// ListVolunteers handles GET /events/:id/volunteers.
func (h *Handler) ListVolunteers(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	list, err := h.svc.ListVolunteers(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// AssignVolunteer handles POST /events/:id/volunteers.
func (h *Handler) AssignVolunteer(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req AssignVolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	m, err := h.svc.AssignVolunteer(c.Request.Context(), eventID, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.logger.Info("volunteer assigned", zap.Int64("event_id", eventID), zap.Int64("volunteer_id", req.VolunteerID))
	response.Created(c, m)
}

// UpdateAssignment handles PUT /events/:id/volunteers/:assignmentId.
func (h *Handler) UpdateAssignment(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	id, err := params.ID(c, "assignmentId")
	if err != nil {
		response.BadRequest(c, "invalid assignment id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	m, err := h.svc.UpdateAssignment(c.Request.Context(), eventID, id, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, m)
}

// RemoveAssignment handles DELETE /events/:id/volunteers/:assignmentId.
func (h *Handler) RemoveAssignment(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	id, err := params.ID(c, "assignmentId")
	if err != nil {
		response.BadRequest(c, "invalid assignment id")
		return
	}
	if err := h.svc.RemoveAssignment(c.Request.Context(), eventID, id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Message(c, "assignment removed")
}

// AvailableVolunteers handles GET /volunteers/available.
func (h *Handler) AvailableVolunteers(c *gin.Context) {
	list, err := h.svc.AvailableVolunteers(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// ListStaff handles GET /events/:id/staff.
func (h *Handler) ListStaff(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	list, err := h.svc.ListStaff(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// AssignStaff handles POST /events/:id/staff.
func (h *Handler) AssignStaff(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	m, err := h.svc.AssignStaff(c.Request.Context(), eventID, &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, m)
}
