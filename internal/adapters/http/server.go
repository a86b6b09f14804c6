package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// maxBodySize bounds request bodies; a story request is a few bytes.
const maxBodySize = "4K"

// Registrar mounts a group of routes.
type Registrar interface {
	Register(e *echo.Echo)
}

// NewServer builds the echo instance with the relay's middleware stack.
func NewServer(logger *slog.Logger, routes ...Registrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestIDMiddleware())
	e.Use(LoggingMiddleware(logger))
	e.Use(CORSMiddleware())
	e.Use(middleware.BodyLimit(maxBodySize))

	for _, r := range routes {
		r.Register(e)
	}
	return e
}
