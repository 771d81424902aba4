package media

import (
	"context"
	"path/filepath"
	"time"

	"github.com/viralclips/clip-engine/internal/config"
	"github.com/viralclips/clip-engine/internal/pipeline"
)

const sourceFileName = "source.mp4"

// Downloader wraps the yt-dlp process. A timeout is treated identically to a
// non-zero exit.
type Downloader struct {
	bin     string
	timeout time.Duration
	runner  commandRunner
}

func NewDownloader(cfg *config.Config) *Downloader {
	bin := cfg.Tools.YtDlpPath
	if bin == "" {
		bin = "yt-dlp"
	}
	return &Downloader{
		bin:     bin,
		timeout: cfg.Worker.DownloadTimeout,
		runner:  execRunner{},
	}
}

func (d *Downloader) Download(ctx context.Context, url, workDir string) (string, error) {
	outPath := filepath.Join(workDir, sourceFileName)

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	res, err := d.runner.Run(ctx, d.bin,
		"-f", "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b",
		"--merge-output-format", "mp4",
		"--no-playlist",
		"-o", outPath,
		url,
	)
	if err != nil {
		return "", pipeline.NewToolError("yt-dlp", err, res.Stderr)
	}
	return outPath, nil
}
