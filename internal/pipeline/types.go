package pipeline

import (
	"context"

	"github.com/viralclips/clip-engine/internal/models"
)

// Progress checkpoints reported to the callback URL. The extraction loop
// interpolates between ProgressExtracting and ProgressFinalizing.
const (
	ProgressAdmitted     = 10
	ProgressTranscribing = 30
	ProgressAnalyzing    = 50
	ProgressExtracting   = 65
	ProgressFinalizing   = 90
	ProgressUploaded     = 95
)

type Downloader interface {
	Download(ctx context.Context, url, workDir string) (string, error)
}

type Prober interface {
	ProbeDuration(ctx context.Context, mediaPath string) (float64, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath, language, model string) (*models.Transcript, error)
}

type Analyzer interface {
	DetectMoments(ctx context.Context, cfg *models.AnalysisConfig, transcript *models.Transcript, title string) ([]models.Moment, error)
}

type Extractor interface {
	CutClip(ctx context.Context, srcPath string, start, end float64, outPath string) error
}

type Uploader interface {
	Upload(ctx context.Context, storage models.StorageConfig, localPath, key string) (string, error)
}

type Notifier interface {
	SendProgress(ctx context.Context, job *models.ClipJob, progress int) error
	SendError(ctx context.Context, job *models.ClipJob, message string) error
	SendResult(ctx context.Context, job *models.ClipJob, result *models.ResultNotification) error
}
