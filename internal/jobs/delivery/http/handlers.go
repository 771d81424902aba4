package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/viralclips/clip-engine/internal/jobs"
	"github.com/viralclips/clip-engine/internal/models"
)

type jobsHandler struct {
	jobsUC jobs.UseCase
}

func NewJobsHandler(jobsUC jobs.UseCase) jobs.Handler {
	return &jobsHandler{
		jobsUC: jobsUC,
	}
}

func (h *jobsHandler) ProcessVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		job := &models.ClipJob{}
		if err := c.Bind(job); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		accepted, err := h.jobsUC.SubmitJob(c.Request().Context(), job)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusAccepted, accepted)
	}
}
