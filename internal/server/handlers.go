package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/viralclips/clip-engine/internal/analysis"
	jobsHttp "github.com/viralclips/clip-engine/internal/jobs/delivery/http"
	jobsUsecase "github.com/viralclips/clip-engine/internal/jobs/usecase"
	"github.com/viralclips/clip-engine/internal/media"
	"github.com/viralclips/clip-engine/internal/notify"
	"github.com/viralclips/clip-engine/internal/pipeline"
	"github.com/viralclips/clip-engine/internal/storage"
	"github.com/viralclips/clip-engine/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	ffmpeg := media.NewFFmpeg(s.cfg)
	orchestrator := pipeline.NewOrchestrator(s.cfg, pipeline.Deps{
		Downloader:  media.NewDownloader(s.cfg),
		Prober:      ffmpeg,
		Transcriber: media.NewWhisperTranscriber(s.cfg),
		Analyzer:    analysis.NewClient(s.cfg),
		Extractor:   ffmpeg,
		Uploader:    storage.NewUploader(s.cfg),
		Notifier:    notify.NewNotifier(s.cfg),
	}, s.logger)

	jobsUC := jobsUsecase.NewJobsUseCase(s.cfg, orchestrator, s.logger)
	jobsHandlers := jobsHttp.NewJobsHandler(jobsUC)

	jobsHttp.MapJobsRoutes(e, jobsHandlers)

	e.GET("/health", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		_, usage := utils.CheckCPUUsage(s.cfg.Worker.MaxCPUUsage)
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "OK", "cpu_usage": usage})
	})
	return nil
}
