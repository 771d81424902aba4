package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/viralclips/clip-engine/internal/config"
	"github.com/viralclips/clip-engine/internal/models"
	"github.com/viralclips/clip-engine/pkg/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = "Development"
	cfg.Logger.Level = "error"
	cfg.Logger.Encoding = "console"
	log := logger.NewApiLogger(cfg)
	log.InitLogger()
	return log
}

type notifierEvent struct {
	kind     string // "progress", "error", "result"
	progress int
	message  string
	result   *models.ResultNotification
}

type fakeNotifier struct {
	mu          sync.Mutex
	events      []notifierEvent
	progressErr error
	errorErr    error
	resultErr   error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{}
}

func (n *fakeNotifier) SendProgress(_ context.Context, _ *models.ClipJob, progress int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifierEvent{kind: "progress", progress: progress})
	return n.progressErr
}

func (n *fakeNotifier) SendError(_ context.Context, _ *models.ClipJob, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifierEvent{kind: "error", message: message})
	return n.errorErr
}

func (n *fakeNotifier) SendResult(_ context.Context, _ *models.ClipJob, result *models.ResultNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifierEvent{kind: "result", result: result})
	return n.resultErr
}

func (n *fakeNotifier) progressValues() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []int
	for _, ev := range n.events {
		if ev.kind == "progress" {
			out = append(out, ev.progress)
		}
	}
	return out
}

func (n *fakeNotifier) errorMessages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, ev := range n.events {
		if ev.kind == "error" {
			out = append(out, ev.message)
		}
	}
	return out
}

func (n *fakeNotifier) results() []*models.ResultNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []*models.ResultNotification
	for _, ev := range n.events {
		if ev.kind == "result" {
			out = append(out, ev.result)
		}
	}
	return out
}

func (n *fakeNotifier) terminalCount() int {
	return len(n.errorMessages()) + len(n.results())
}

func (n *fakeNotifier) lastEventKind() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return ""
	}
	return n.events[len(n.events)-1].kind
}

type fakeDownloader struct {
	mu      sync.Mutex
	calls   int
	err     error
	enter   chan struct{} // signaled on entry when non-nil
	release chan struct{} // blocks until signaled when non-nil
}

func (d *fakeDownloader) Download(_ context.Context, _, workDir string) (string, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	if d.enter != nil {
		d.enter <- struct{}{}
	}
	if d.release != nil {
		<-d.release
	}
	if d.err != nil {
		return "", d.err
	}
	return filepath.Join(workDir, "source.mp4"), nil
}

type fakeProber struct {
	duration float64
	err      error
}

func (p *fakeProber) ProbeDuration(context.Context, string) (float64, error) {
	return p.duration, p.err
}

type fakeTranscriber struct {
	transcript  *models.Transcript
	err         error
	gotLanguage string
	gotModel    string
}

func (t *fakeTranscriber) Transcribe(_ context.Context, _, language, model string) (*models.Transcript, error) {
	t.gotLanguage = language
	t.gotModel = model
	if t.err != nil {
		return nil, t.err
	}
	// Copy so the orchestrator's mutation of Duration stays test-local.
	tr := *t.transcript
	return &tr, nil
}

type fakeAnalyzer struct {
	moments  []models.Moment
	err      error
	calls    int
	panicMsg string
}

func (a *fakeAnalyzer) DetectMoments(context.Context, *models.AnalysisConfig, *models.Transcript, string) ([]models.Moment, error) {
	a.calls++
	if a.panicMsg != "" {
		panic(a.panicMsg)
	}
	return a.moments, a.err
}

type fakeExtractor struct {
	mu        sync.Mutex
	calls     int
	err       error
	failStart map[float64]bool // fail only moments with these start offsets
}

func (e *fakeExtractor) CutClip(_ context.Context, _ string, start, _ float64, _ string) error {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	if e.failStart[start] {
		return fmt.Errorf("ffmpeg: exit status 1")
	}
	return nil
}

func (e *fakeExtractor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

type fakeUploader struct {
	url string
	err error
}

func (u *fakeUploader) Upload(_ context.Context, _ models.StorageConfig, _, key string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if u.url != "" {
		return u.url, nil
	}
	return "https://cdn.example.com/" + key, nil
}

type testDeps struct {
	downloader  *fakeDownloader
	prober      *fakeProber
	transcriber *fakeTranscriber
	analyzer    *fakeAnalyzer
	extractor   *fakeExtractor
	uploader    *fakeUploader
	notifier    *fakeNotifier
}

func defaultTestDeps() *testDeps {
	return &testDeps{
		downloader: &fakeDownloader{},
		prober:     &fakeProber{duration: 120.5},
		transcriber: &fakeTranscriber{transcript: &models.Transcript{
			Text: "primeira frase segunda frase terceira frase",
			Segments: []models.Segment{
				{Start: 0, End: 8, Text: "primeira frase"},
				{Start: 8, End: 18, Text: "segunda frase"},
				{Start: 18, End: 30, Text: "terceira frase"},
			},
		}},
		analyzer:  &fakeAnalyzer{},
		extractor: &fakeExtractor{},
		uploader:  &fakeUploader{},
		notifier:  newFakeNotifier(),
	}
}

func (d *testDeps) deps() Deps {
	return Deps{
		Downloader:  d.downloader,
		Prober:      d.prober,
		Transcriber: d.transcriber,
		Analyzer:    d.analyzer,
		Extractor:   d.extractor,
		Uploader:    d.uploader,
		Notifier:    d.notifier,
	}
}

func newTestOrchestrator(t *testing.T, d *testDeps) *Orchestrator {
	t.Helper()
	cfg := &config.Config{}
	cfg.Worker.WorkDir = t.TempDir()
	cfg.Worker.MaxCPUUsage = 100
	cfg.Whisper.DefaultLanguage = "pt"
	cfg.Whisper.DefaultModel = "base"
	return NewOrchestrator(cfg, d.deps(), newTestLogger(t))
}

func testJob() *models.ClipJob {
	return &models.ClipJob{
		VideoURL:    "https://videos.example.com/watch?v=abc",
		ProjectID:   "proj-1",
		CallbackURL: "https://callbacks.example.com/hook",
		Secret:      "shared-secret",
		Storage: models.StorageConfig{
			Endpoint:  "https://storage.example.com",
			AccessKey: "ak",
			SecretKey: "sk",
			Bucket:    "clips",
		},
		Analysis: &models.AnalysisConfig{
			Endpoint: "https://analysis.example.com/detect",
			Secret:   "analysis-secret",
		},
	}
}
