package chatmock

import (
	"context"
	"sync/atomic"

	"github.com/akolanti/DocChat/internal/llm"
)

var _ llm.Provider = (*MockLLM)(nil)

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
	Calls      int32
}

func (m *MockLLM) Name() string {
	return "mock"
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&m.Calls, 1)
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) CallCount() int {
	return int(atomic.LoadInt32(&m.Calls))
}
