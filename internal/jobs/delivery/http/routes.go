package http

import (
	"github.com/labstack/echo/v4"
	"github.com/viralclips/clip-engine/internal/jobs"
)

func MapJobsRoutes(e *echo.Echo, h jobs.Handler) {
	e.POST("/process", h.ProcessVideo())
}
