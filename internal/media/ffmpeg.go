package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viralclips/clip-engine/internal/config"
	"github.com/viralclips/clip-engine/internal/pipeline"
)

// FFmpeg wraps the ffmpeg/ffprobe binaries for duration probing and clip
// extraction (vertical 9:16 crop).
type FFmpeg struct {
	ffmpeg         string
	ffprobe        string
	extractTimeout time.Duration
	probeTimeout   time.Duration
	runner         commandRunner
}

func NewFFmpeg(cfg *config.Config) *FFmpeg {
	ffmpeg := cfg.Tools.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	ffprobe := cfg.Tools.FFprobePath
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	return &FFmpeg{
		ffmpeg:         ffmpeg,
		ffprobe:        ffprobe,
		extractTimeout: cfg.Worker.ExtractTimeout,
		probeTimeout:   cfg.Worker.ProbeTimeout,
		runner:         execRunner{},
	}
}

func (f *FFmpeg) ProbeDuration(ctx context.Context, mediaPath string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.probeTimeout)
	defer cancel()

	res, err := f.runner.Run(ctx, f.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		mediaPath,
	)
	if err != nil {
		return 0, pipeline.NewToolError("ffprobe", err, res.Stderr)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(res.Stdout), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", strings.TrimSpace(res.Stdout), err)
	}
	return duration, nil
}

func (f *FFmpeg) CutClip(ctx context.Context, srcPath string, start, end float64, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, f.extractTimeout)
	defer cancel()

	res, err := f.runner.Run(ctx, f.ffmpeg,
		"-y",
		"-ss", fmtSeconds(start),
		"-to", fmtSeconds(end),
		"-i", srcPath,
		"-vf", "crop=ih*9/16:ih,scale=1080:1920",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-movflags", "+faststart",
		"-c:a", "aac",
		"-b:a", "128k",
		outPath,
	)
	if err != nil {
		return pipeline.NewToolError("ffmpeg", err, res.Stderr)
	}
	return nil
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
