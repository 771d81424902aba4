package pipeline

import (
	"context"

	"github.com/viralclips/clip-engine/internal/models"
	"github.com/viralclips/clip-engine/pkg/logger"
)

// progressReporter posts progress updates to the job's callback URL. Reported
// values are monotonically non-decreasing for the lifetime of one job;
// delivery failures are logged and swallowed, never escalated.
type progressReporter struct {
	notifier Notifier
	logger   logger.Logger
	job      *models.ClipJob
	last     int
}

func newProgressReporter(notifier Notifier, log logger.Logger, job *models.ClipJob) *progressReporter {
	return &progressReporter{
		notifier: notifier,
		logger:   log,
		job:      job,
		last:     -1,
	}
}

func (r *progressReporter) Report(ctx context.Context, progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if progress <= r.last {
		return
	}
	r.last = progress
	if err := r.notifier.SendProgress(ctx, r.job, progress); err != nil {
		r.logger.Warnf("project %s: progress %d not delivered: %v", r.job.ProjectID, progress, err)
	}
}

// extractionProgress interpolates the extraction loop between 65 and 90.
// Attempts are counted rather than successes, so progress reaches 90 even
// when every moment is skipped.
func extractionProgress(processed, total int) int {
	if total <= 0 {
		return ProgressExtracting
	}
	return ProgressExtracting + processed*(ProgressFinalizing-ProgressExtracting)/total
}
