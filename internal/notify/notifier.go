package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/viralclips/clip-engine/internal/config"
	"github.com/viralclips/clip-engine/internal/models"
)

// Notifier posts progress, error, and final-result payloads to the job's
// callback URL. Delivery errors are returned to the caller; the pipeline
// decides whether they matter.
type Notifier struct {
	httpClient *http.Client
}

func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		httpClient: &http.Client{Timeout: cfg.Worker.NotifierTimeout},
	}
}

func (n *Notifier) SendProgress(ctx context.Context, job *models.ClipJob, progress int) error {
	return n.post(ctx, job.CallbackURL, models.ProgressNotification{
		ProjectID: job.ProjectID,
		Secret:    job.Secret,
		Progress:  progress,
	})
}

func (n *Notifier) SendError(ctx context.Context, job *models.ClipJob, message string) error {
	return n.post(ctx, job.CallbackURL, models.ErrorNotification{
		ProjectID: job.ProjectID,
		Secret:    job.Secret,
		Error:     message,
	})
}

func (n *Notifier) SendResult(ctx context.Context, job *models.ClipJob, result *models.ResultNotification) error {
	return n.post(ctx, job.CallbackURL, result)
}

func (n *Notifier) post(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal callback payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build callback request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "post callback")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("callback returned status %d", resp.StatusCode)
	}
	return nil
}
