package http

import (
	"rental-backend/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health       *Handler
	Applications *ApplicationHandler
	Visits       *VisitHandler
	Leads        *LeadHandler
	Properties   *PropertyHandler
}

// RegisterRoutes mounts the API. mw is applied to the resource groups only,
// never to /health or /metrics.
func RegisterRoutes(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	leads := e.Group("/leads", mw...)
	leads.POST("", h.Leads.Create)
	leads.GET("/:id", h.Leads.Get)

	props := e.Group("/properties", mw...)
	props.POST("", h.Properties.Create)
	props.GET("/:id", h.Properties.Get)

	apps := e.Group("/applications", mw...)
	apps.POST("", h.Applications.Create)
	apps.GET("", h.Applications.List)
	apps.GET("/:id", h.Applications.Get)
	apps.PUT("/:id", h.Applications.Update)

	apps.POST("/:id/start-review", h.Applications.StartReview)
	apps.POST("/:id/approve", h.Applications.Approve)
	apps.POST("/:id/reject", h.Applications.Reject)
	apps.POST("/:id/withdraw", h.Applications.Withdraw)
	apps.POST("/:id/reserve", h.Applications.Reserve)
	apps.POST("/:id/sign-contract", h.Applications.SignContract)

	apps.POST("/:id/visits", h.Visits.Schedule)
	apps.GET("/:id/visits", h.Visits.List)
	apps.POST("/:id/visits/:visitId/complete", h.Visits.Complete)
	apps.POST("/:id/visits/:visitId/cancel", h.Visits.Cancel)
	apps.POST("/:id/visits/:visitId/no-show", h.Visits.NoShow)
}
