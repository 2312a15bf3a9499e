package handler

import (
	"github.com/labstack/echo/v4"
)

// healthURI is the only request URI answered locally by the health handler.
const healthURI = "/health"

// RegisterRoutes wires all route handlers onto the Echo instance.
// OPTIONS never reaches a route; the CORS middleware answers it.
func RegisterRoutes(e *echo.Echo, proxy *ProxyHandler, health *HealthHandler) {
	e.GET(healthURI, healthOrForward(health, proxy))
	e.GET("/proxy/status", health.Status)

	// POST is forwarded on every path, including the local GET-only ones.
	e.POST(healthURI, proxy.Handle)
	e.POST("/proxy/status", proxy.Handle)

	e.GET("/*", proxy.Handle)
	e.POST("/*", proxy.Handle)
}

// healthOrForward serves the health body only when the request URI is exactly
// /health. The router ignores the query string, so /health?x=1 lands here and
// is forwarded like any other path.
func healthOrForward(health *HealthHandler, proxy *ProxyHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		if requestURI(c.Request()) != healthURI {
			return proxy.Handle(c)
		}
		return health.Health(c)
	}
}
