package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// fakeModel answers by matching a substring of the system prompt.
type fakeModel struct {
	mu         sync.Mutex
	configured bool
	answers    map[string]string
	failOn     string
	calls      []Prompt
	fallback   string
}

func newFakeModel() *fakeModel {
	return &fakeModel{configured: true, answers: map[string]string{}}
}

func (f *fakeModel) Configured() bool { return f.configured }

func (f *fakeModel) Complete(_ context.Context, p Prompt) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p)
	if f.failOn != "" && strings.Contains(p.System, f.failOn) {
		return "", errors.New("upstream exploded")
	}
	for needle, answer := range f.answers {
		if strings.Contains(p.System, needle) {
			return answer, nil
		}
	}
	return f.fallback, nil
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeImage struct {
	configured bool
	url        string
	err        error
	prompts    []string
}

func (f *fakeImage) Configured() bool { return f.configured }

func (f *fakeImage) GenerateImage(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.url, f.err
}
