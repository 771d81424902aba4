package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/viralclips/clip-engine/internal/config"
	"github.com/viralclips/clip-engine/internal/models"
)

// Client calls the external moment-detection service. The service contract
// is opaque: transcript in, ordered candidate moments out (possibly empty).
type Client struct {
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Worker.AnalyzerTimeout},
	}
}

type detectRequest struct {
	Secret     string           `json:"secret"`
	Transcript string           `json:"transcript"`
	Segments   []models.Segment `json:"segments"`
	Duration   float64          `json:"duration"`
	Title      string           `json:"title"`
}

type detectResponse struct {
	Moments []models.Moment `json:"moments"`
}

func (c *Client) DetectMoments(ctx context.Context, cfg *models.AnalysisConfig, transcript *models.Transcript, title string) ([]models.Moment, error) {
	payload := detectRequest{
		Secret:     cfg.Secret,
		Transcript: transcript.Text,
		Segments:   transcript.Segments,
		Duration:   transcript.Duration,
		Title:      title,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal analysis request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build analysis request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call analysis endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("analysis endpoint returned status %d", resp.StatusCode)
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode analysis response")
	}
	return out.Moments, nil
}
