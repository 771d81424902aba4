package media

import (
	"context"
	"sync"
)

type runnerCall struct {
	Name string
	Args []string
}

// fakeRunner records invocations and delegates behavior to fn.
type fakeRunner struct {
	mu    sync.Mutex
	calls []runnerCall
	fn    func(ctx context.Context, name string, args ...string) (commandResult, error)
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, runnerCall{Name: name, Args: args})
	r.mu.Unlock()
	if r.fn != nil {
		return r.fn(ctx, name, args...)
	}
	return commandResult{}, nil
}

func (r *fakeRunner) lastCall() runnerCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return runnerCall{}
	}
	return r.calls[len(r.calls)-1]
}

func hasArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
