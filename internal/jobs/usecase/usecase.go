package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/viralclips/clip-engine/internal/config"
	"github.com/viralclips/clip-engine/internal/jobs"
	"github.com/viralclips/clip-engine/internal/models"
	"github.com/viralclips/clip-engine/pkg/logger"
	"github.com/viralclips/clip-engine/pkg/utils"
)

type jobsUC struct {
	cfg        *config.Config
	dispatcher jobs.Dispatcher
	logger     logger.Logger
}

func NewJobsUseCase(cfg *config.Config, dispatcher jobs.Dispatcher, log logger.Logger) jobs.UseCase {
	return &jobsUC{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// SubmitJob validates the request shape, schedules the pipeline run, and
// returns immediately. The outcome arrives later via the callback URL; this
// acknowledgement never reflects pipeline-stage failures.
func (u *jobsUC) SubmitJob(ctx context.Context, job *models.ClipJob) (*models.JobAccepted, error) {
	if job == nil {
		return nil, fmt.Errorf("invalid input: job is nil")
	}
	if err := utils.ValidateStruct(ctx, job); err != nil {
		u.logger.Errorf("SubmitJob - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}

	u.logger.Infof("accepting job for project %s: %s", job.ProjectID, job.VideoURL)
	u.dispatcher.Dispatch(job)

	return &models.JobAccepted{
		JobID:     uuid.New().String(),
		ProjectID: job.ProjectID,
		Status:    models.JobStatusQueued,
	}, nil
}
