package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/viralclips/clip-engine/internal/pipeline"
)

func testFFmpeg(runner commandRunner) *FFmpeg {
	return &FFmpeg{
		ffmpeg:         "ffmpeg",
		ffprobe:        "ffprobe",
		extractTimeout: time.Minute,
		probeTimeout:   time.Second * 30,
		runner:         runner,
	}
}

func TestProbeDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		stdout  string
		want    float64
		wantErr bool
	}{
		{name: "plain seconds", stdout: "634.030000\n", want: 634.03},
		{name: "integer", stdout: "15", want: 15},
		{name: "garbage", stdout: "N/A\n", wantErr: true},
		{name: "empty", stdout: "", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			runner := &fakeRunner{
				fn: func(context.Context, string, ...string) (commandResult, error) {
					return commandResult{Stdout: tc.stdout}, nil
				},
			}
			f := testFFmpeg(runner)

			got, err := f.ProbeDuration(context.Background(), "in.mp4")
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("probe: %v", err)
			}
			if got != tc.want {
				t.Fatalf("duration = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProbeDurationToolFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		fn: func(context.Context, string, ...string) (commandResult, error) {
			return commandResult{Stderr: "in.mp4: No such file or directory"}, errors.New("exit status 1")
		},
	}
	f := testFFmpeg(runner)

	_, err := f.ProbeDuration(context.Background(), "in.mp4")
	var toolErr *pipeline.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %v", err)
	}
	if toolErr.Tool != "ffprobe" {
		t.Fatalf("tool = %q, want ffprobe", toolErr.Tool)
	}
}

func TestCutClipArguments(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	f := testFFmpeg(runner)

	if err := f.CutClip(context.Background(), "source.mp4", 12.5, 47.25, "clip.mp4"); err != nil {
		t.Fatalf("cut: %v", err)
	}

	call := runner.lastCall()
	if call.Name != "ffmpeg" {
		t.Fatalf("binary = %q, want ffmpeg", call.Name)
	}
	if got := argAfter(call.Args, "-ss"); got != "12.500" {
		t.Fatalf("-ss = %q, want 12.500", got)
	}
	if got := argAfter(call.Args, "-to"); got != "47.250" {
		t.Fatalf("-to = %q, want 47.250", got)
	}
	if got := argAfter(call.Args, "-vf"); got != "crop=ih*9/16:ih,scale=1080:1920" {
		t.Fatalf("-vf = %q", got)
	}
	if call.Args[len(call.Args)-1] != "clip.mp4" {
		t.Fatalf("output must be the last argument, got %v", call.Args)
	}
}

func TestCutClipToolFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		fn: func(context.Context, string, ...string) (commandResult, error) {
			return commandResult{Stderr: "Invalid duration specification"}, errors.New("exit status 1")
		},
	}
	f := testFFmpeg(runner)

	err := f.CutClip(context.Background(), "source.mp4", 0, 5, "clip.mp4")
	var toolErr *pipeline.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %v", err)
	}
	if toolErr.Stderr != "Invalid duration specification" {
		t.Fatalf("stderr = %q", toolErr.Stderr)
	}
}
