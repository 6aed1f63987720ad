package notifications

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
	"github.com/parkops/events-backend/pkg/params"
	"github.com/parkops/events-backend/pkg/response"
)

// Lister reads the notification log.
type Lister interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.Notification, error)
}

// EventChecker reports whether an event exists.
type EventChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Handler handles notification log HTTP endpoints.
type Handler struct {
	repo   Lister
	events EventChecker
	logger *zap.Logger
}

// NewHandler creates a notifications handler.
func NewHandler(repo Lister, events EventChecker, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, events: events, logger: logger}
}

// ListByEvent handles GET /events/:id/notifications.
func (h *Handler) ListByEvent(c *gin.Context) {
	eventID, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	ctx := c.Request.Context()
	ok, err := h.events.Exists(ctx, eventID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	if !ok {
		response.Error(c, h.logger, apperr.NotFound("event"))
		return
	}
	list, err := h.repo.ListByEvent(ctx, eventID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.OK(c, list)
}
