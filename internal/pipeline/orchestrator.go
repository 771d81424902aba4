package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/viralclips/clip-engine/internal/config"
	"github.com/viralclips/clip-engine/internal/models"
	"github.com/viralclips/clip-engine/pkg/logger"
	"github.com/viralclips/clip-engine/pkg/utils"
)

// Deps are the external collaborators of one pipeline run.
type Deps struct {
	Downloader  Downloader
	Prober      Prober
	Transcriber Transcriber
	Analyzer    Analyzer
	Extractor   Extractor
	Uploader    Uploader
	Notifier    Notifier
}

// Orchestrator sequences the stages of a clip job:
//
//	Queued -> Downloading -> Transcribing -> Analyzing -> Extracting -> Finalizing -> Done
//
// with Failed reachable from every stage. Heavy stages run under a single
// admission slot; extra jobs queue for it. Each job sends exactly one
// terminal notification, a final result or an error.
type Orchestrator struct {
	cfg    *config.Config
	deps   Deps
	logger logger.Logger
	slot   chan struct{}
}

func NewOrchestrator(cfg *config.Config, deps Deps, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		deps:   deps,
		logger: log,
		slot:   make(chan struct{}, 1),
	}
}

// Dispatch schedules a job and returns immediately. The outcome is reported
// via the job's callback URL only.
func (o *Orchestrator) Dispatch(job *models.ClipJob) {
	go o.run(context.Background(), job)
}

func (o *Orchestrator) run(ctx context.Context, job *models.ClipJob) {
	reporter := newProgressReporter(o.deps.Notifier, o.logger, job)
	terminal := false
	defer func() {
		if r := recover(); r != nil {
			o.logger.Errorf("project %s: pipeline panic: %v\n%s", job.ProjectID, r, debug.Stack())
			if !terminal {
				o.failJob(ctx, job, Truncate(fmt.Sprintf("internal error: %v", r), maxErrorLen))
			}
		}
	}()

	o.logger.Infof("project %s: %s, waiting for admission slot", job.ProjectID, models.JobStatusQueued)
	o.slot <- struct{}{}
	defer func() { <-o.slot }()

	if ok, usage := utils.CheckCPUUsage(o.cfg.Worker.MaxCPUUsage); !ok {
		o.logger.Warnf("project %s: high CPU load before heavy stages: %.2f%%", job.ProjectID, usage)
	}

	workDir := filepath.Join(o.cfg.Worker.WorkDir, fmt.Sprintf("%s-%s", job.ProjectID, uuid.New().String()[:8]))
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		terminal = true
		o.failJob(ctx, job, Truncate(fmt.Sprintf("workspace: %v", err), maxErrorLen))
		return
	}
	defer func() {
		o.logger.Infof("project %s: cleaning workspace %s", job.ProjectID, workDir)
		os.RemoveAll(workDir)
	}()

	reporter.Report(ctx, ProgressAdmitted)

	o.logger.Infof("project %s: %s %s", job.ProjectID, models.JobStatusDownloading, job.VideoURL)
	srcPath, err := o.deps.Downloader.Download(ctx, job.VideoURL, workDir)
	if err != nil {
		terminal = true
		o.failJob(ctx, job, Truncate(fmt.Sprintf("download failed: %v", err), maxErrorLen))
		return
	}

	o.logger.Infof("project %s: %s %s", job.ProjectID, models.JobStatusTranscribing, srcPath)
	reporter.Report(ctx, ProgressTranscribing)
	duration, err := o.deps.Prober.ProbeDuration(ctx, srcPath)
	if err != nil {
		terminal = true
		o.failJob(ctx, job, Truncate(fmt.Sprintf("probe failed: %v", err), maxErrorLen))
		return
	}
	language, model := o.transcriptionHints(job)
	transcript, err := o.deps.Transcriber.Transcribe(ctx, srcPath, language, model)
	if err != nil {
		terminal = true
		o.failJob(ctx, job, Truncate(fmt.Sprintf("transcription failed: %v", err), maxErrorLen))
		return
	}
	transcript.Duration = duration

	o.logger.Infof("project %s: %s, %d segments over %.2fs", job.ProjectID, models.JobStatusAnalyzing, len(transcript.Segments), duration)
	reporter.Report(ctx, ProgressAnalyzing)
	moments := o.detectMoments(ctx, job, transcript)
	if len(moments) == 0 {
		terminal = true
		o.failJob(ctx, job, ErrNoMoments.Error())
		return
	}

	o.logger.Infof("project %s: %s %d moments", job.ProjectID, models.JobStatusExtracting, len(moments))
	reporter.Report(ctx, ProgressExtracting)
	clips := o.extractClips(ctx, job, reporter, srcPath, workDir, transcript, moments)

	o.logger.Infof("project %s: %s, %d/%d clips produced", job.ProjectID, models.JobStatusFinalizing, len(clips), len(moments))
	if len(clips) == 0 {
		terminal = true
		o.failJob(ctx, job, ErrNoClips.Error())
		return
	}

	reporter.Report(ctx, ProgressUploaded)
	result := &models.ResultNotification{
		ProjectID:  job.ProjectID,
		Secret:     job.Secret,
		Transcript: transcript.Text,
		Segments:   transcript.Segments,
		Clips:      clips,
	}
	terminal = true
	if err := o.deps.Notifier.SendResult(ctx, job, result); err != nil {
		o.logger.Errorf("project %s: result notification not delivered: %v", job.ProjectID, err)
	}
	o.logger.Infof("project %s: %s", job.ProjectID, models.JobStatusDone)
}

func (o *Orchestrator) transcriptionHints(job *models.ClipJob) (language, model string) {
	language = o.cfg.Whisper.DefaultLanguage
	model = o.cfg.Whisper.DefaultModel
	if job.Transcription != nil {
		if job.Transcription.Language != "" {
			language = job.Transcription.Language
		}
		if job.Transcription.Model != "" {
			model = job.Transcription.Model
		}
	}
	return language, model
}

// detectMoments degrades to zero moments when the analysis endpoint is unset
// or unavailable; the caller decides whether zero moments is terminal.
func (o *Orchestrator) detectMoments(ctx context.Context, job *models.ClipJob, transcript *models.Transcript) []models.Moment {
	if job.Analysis == nil || job.Analysis.Endpoint == "" {
		o.logger.Infof("project %s: no analysis endpoint configured", job.ProjectID)
		return nil
	}
	moments, err := o.deps.Analyzer.DetectMoments(ctx, job.Analysis, transcript, job.VideoURL)
	if err != nil {
		o.logger.Warnf("project %s: analysis unavailable: %v", job.ProjectID, err)
		return nil
	}
	return moments
}

// extractClips runs the per-moment loop. A failed moment is skipped and
// logged; the loop always continues. Progress is advanced per attempt, so it
// reaches 90 even when every moment fails.
func (o *Orchestrator) extractClips(ctx context.Context, job *models.ClipJob, reporter *progressReporter, srcPath, workDir string, transcript *models.Transcript, moments []models.Moment) []models.Clip {
	clips := make([]models.Clip, 0, len(moments))
	for i, moment := range moments {
		clip, err := o.processMoment(ctx, job, srcPath, workDir, transcript, i, moment)
		if err != nil {
			o.logger.Warnf("project %s: moment %d [%.2f, %.2f) skipped: %v", job.ProjectID, i, moment.Start, moment.End, err)
		} else {
			clips = append(clips, *clip)
		}
		reporter.Report(ctx, extractionProgress(i+1, len(moments)))
	}
	return clips
}

func (o *Orchestrator) processMoment(ctx context.Context, job *models.ClipJob, srcPath, workDir string, transcript *models.Transcript, idx int, moment models.Moment) (*models.Clip, error) {
	if moment.Start < 0 || moment.End <= moment.Start {
		return nil, fmt.Errorf("invalid bounds: start=%.2f end=%.2f", moment.Start, moment.End)
	}

	outPath := filepath.Join(workDir, fmt.Sprintf("clip_%03d.mp4", idx+1))
	if err := o.deps.Extractor.CutClip(ctx, srcPath, moment.Start, moment.End, outPath); err != nil {
		return nil, fmt.Errorf("cut: %w", err)
	}

	key := fmt.Sprintf("clips/%s/%s.mp4", job.ProjectID, uuid.New().String())
	videoURL, err := o.deps.Uploader.Upload(ctx, job.Storage, outPath, key)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	title := moment.Title
	if title == "" {
		title = fmt.Sprintf("Clip %d", idx+1)
	}
	return &models.Clip{
		Title:          title,
		Description:    moment.Description,
		Start:          moment.Start,
		End:            moment.End,
		Duration:       moment.End - moment.Start,
		VideoURL:       videoURL,
		Transcription:  ClipTranscription(transcript.Segments, moment.Start, moment.End),
		Classification: moment.Classification,
		Hashtags:       moment.Hashtags,
		Hook:           moment.Hook,
		CTA:            moment.CTA,
	}, nil
}

func (o *Orchestrator) failJob(ctx context.Context, job *models.ClipJob, message string) {
	o.logger.Errorf("project %s: %s: %s", job.ProjectID, models.JobStatusFailed, message)
	if err := o.deps.Notifier.SendError(ctx, job, message); err != nil {
		o.logger.Errorf("project %s: error notification not delivered: %v", job.ProjectID, err)
	}
}
