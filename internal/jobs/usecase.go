package jobs

import (
	"context"

	"github.com/viralclips/clip-engine/internal/models"
)

type UseCase interface {
	SubmitJob(ctx context.Context, job *models.ClipJob) (*models.JobAccepted, error)
}

// Dispatcher schedules an accepted job for asynchronous processing.
type Dispatcher interface {
	Dispatch(job *models.ClipJob)
}
