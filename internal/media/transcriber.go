package media

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/viralclips/clip-engine/internal/config"
	"github.com/viralclips/clip-engine/internal/models"
	"github.com/viralclips/clip-engine/internal/pipeline"
)

// WhisperTranscriber wraps the whisper CLI. The model is loaded lazily on
// first use and reused by subsequent jobs in the same process; the engine is
// not safe for concurrent use, so calls are serialized with a mutex (in
// practice the pipeline admission slot already guarantees one caller).
type WhisperTranscriber struct {
	bin      string
	modelDir string
	timeout  time.Duration
	runner   commandRunner

	mu          sync.Mutex
	loadedModel string
}

func NewWhisperTranscriber(cfg *config.Config) *WhisperTranscriber {
	bin := cfg.Whisper.Bin
	if bin == "" {
		bin = "whisper"
	}
	return &WhisperTranscriber{
		bin:      bin,
		modelDir: cfg.Whisper.ModelDir,
		timeout:  cfg.Worker.TranscribeTimeout,
		runner:   execRunner{},
	}
}

type whisperOutput struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, mediaPath, language, model string) (*models.Transcript, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	outDir := filepath.Dir(mediaPath)
	args := []string{
		mediaPath,
		"--model", model,
		"--language", language,
		"--output_format", "json",
		"--output_dir", outDir,
		"--fp16", "False",
	}
	if t.modelDir != "" {
		args = append(args, "--model_dir", t.modelDir)
	}

	res, err := t.runner.Run(ctx, t.bin, args...)
	if err != nil {
		return nil, pipeline.NewToolError("whisper", err, res.Stderr)
	}
	// The first invocation pays the model download/load cost; later jobs
	// requesting the same size reuse the cached weights.
	t.loadedModel = model

	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	jsonPath := filepath.Join(outDir, base+".json")
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, errors.Wrap(err, "read whisper output")
	}

	var out whisperOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "parse whisper output")
	}

	transcript := &models.Transcript{Text: strings.TrimSpace(out.Text)}
	for _, seg := range out.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		transcript.Segments = append(transcript.Segments, models.Segment{
			Start: round2(seg.Start),
			End:   round2(seg.End),
			Text:  text,
		})
	}
	return transcript, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
