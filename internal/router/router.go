package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/banquet-seating/internal/handler"
)

// RegisterRoutes registers the liveness probe.
func RegisterRoutes(e *echo.Echo, store handler.Loader) {
	e.GET("/healthz", handler.Health(store))
}

// RegisterSeating registers the grid, gesture, table and guest routes
// under /v1.  Mutating routes bump the report generation through the
// service, so they carry no cache middleware.
func RegisterSeating(e *echo.Echo, h *handler.SeatingHandler) {
	g := e.Group("/v1")
	g.GET("/view", h.GetView)
	g.PUT("/view", h.PutView)
	g.GET("/grid", h.GetGrid)
	g.POST("/gestures", h.PostGesture)
	g.GET("/tables/:id", h.GetTable)
	g.PUT("/tables/:id", h.PutTable)
	g.POST("/renumber", h.PostRenumber)
	g.GET("/guests", h.ListGuests)
	g.POST("/simulate", h.PostSimulate)
}

// RegisterReports registers the report routes.  cache wraps the GET
// reports; simulation reports depend on the request body and are never
// cached.
func RegisterReports(e *echo.Echo, h *handler.ReportHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/reports")
	g.GET("/summary", h.Summary, cache)
	g.GET("/guests", h.Guests, cache)
	g.GET("/dashboard", h.Dashboard, cache)
	g.POST("/simulation", h.Simulation)
}
