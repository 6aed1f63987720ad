package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/internal/evaluations"
	"github.com/parkops/events-backend/internal/events"
	"github.com/parkops/events-backend/internal/middleware"
	"github.com/parkops/events-backend/internal/notifications"
	"github.com/parkops/events-backend/internal/participants"
	"github.com/parkops/events-backend/internal/resources"
	"github.com/parkops/events-backend/internal/staff"
	"github.com/parkops/events-backend/pkg/response"
)

type handlers struct {
	events        *events.Handler
	participants  *participants.Handler
	resources     *resources.Handler
	staff         *staff.Handler
	evaluations   *evaluations.Handler
	notifications *notifications.Handler
}

func newRouter(h handlers, tokens middleware.TokenValidator, corsOrigins string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(corsOrigins))
	router.Use(middleware.Logger(logger))

	auth := middleware.JWT(tokens)

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Events
	router.GET("/events", h.events.List)
	router.GET("/events/:id", h.events.GetByID)
	router.POST("/events", auth, h.events.Create)
	router.PUT("/events/:id", auth, h.events.Update)
	router.DELETE("/events/:id", auth, h.events.Delete)
	router.GET("/parks/:id/events", h.events.ListByPark)
	router.GET("/events-reference-data", h.events.Reference)

	// Participants (registration is public)
	router.GET("/events/:id/participants", h.participants.List)
	router.POST("/events/:id/participants", h.participants.Register)
	router.GET("/events/:id/participants/summary", h.participants.Summary)
	router.POST("/events/:id/participants/export", auth, h.participants.Export)
	router.PUT("/events/:id/participants/:participantId/status", auth, h.participants.UpdateStatus)
	router.DELETE("/events/:id/participants/:participantId", auth, h.participants.Remove)

	// Resources
	router.GET("/events/:id/resources", h.resources.List)
	router.POST("/events/:id/resources", auth, h.resources.Assign)
	router.GET("/events/:id/resources/summary", h.resources.Summary)
	router.GET("/events/:id/resources/:resourceId", h.resources.Get)
	router.PUT("/events/:id/resources/:resourceId", auth, h.resources.Update)
	router.DELETE("/events/:id/resources/:resourceId", auth, h.resources.Remove)
	router.PUT("/events/:id/resources/:resourceId/status", auth, h.resources.UpdateStatus)

	// Staff and volunteers
	router.GET("/events/:id/volunteers", h.staff.ListVolunteers)
	router.POST("/events/:id/volunteers", auth, h.staff.AssignVolunteer)
	router.PUT("/events/:id/volunteers/:assignmentId", auth, h.staff.UpdateAssignment)
	router.DELETE("/events/:id/volunteers/:assignmentId", auth, h.staff.RemoveAssignment)
	router.GET("/volunteers/available", h.staff.AvailableVolunteers)
	router.GET("/events/:id/staff", h.staff.ListStaff)
	router.POST("/events/:id/staff", auth, h.staff.AssignStaff)

	// Evaluations (submission is public)
	router.GET("/events/:id/evaluations", h.evaluations.List)
	router.POST("/events/:id/evaluations", h.evaluations.Create)
	router.PUT("/events/:id/evaluations/:evaluationId", auth, h.evaluations.Update)
	router.DELETE("/events/:id/evaluations/:evaluationId", auth, h.evaluations.Remove)

	// Notification log
	router.GET("/events/:id/notifications", auth, h.notifications.ListByEvent)

	return router
}
