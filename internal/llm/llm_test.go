package llm

import (
	"context"
	"sync"
	"testing"
	"time"
)

// mockProvider records calls and returns a canned response.
type mockProvider struct {
	mu    sync.Mutex
	calls []Request
	resp  *Response
	err   error
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		resp: &Response{
			Text:         "mock answer",
			InputTokens:  12,
			OutputTokens: 34,
			Model:        "mock-model",
			StopReason:   "stop",
		},
	}
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	for _, p := range []string{"openai", "anthropic"} {
		if _, err := New(Options{Provider: p, Model: "m"}); err == nil {
			t.Errorf("provider %q with no API key should error", p)
		}
	}
}

func TestFactoryUnknownProvider(t *testing.T) {
	if _, err := New(Options{Provider: "bard"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryOllamaDefaults(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")

	p, err := New(Options{Provider: "ollama", Model: "llama3"})
	if err != nil {
		t.Fatalf("new ollama: %v", err)
	}
	op, ok := p.(*OllamaProvider)
	if !ok {
		t.Fatalf("expected *OllamaProvider, got %T", p)
	}
	if op.baseURL != "http://localhost:11434" {
		t.Errorf("baseURL = %q, want default", op.baseURL)
	}
}

func TestFactoryWrapsRateLimiter(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	p, err := New(Options{Provider: "openai", Model: "gpt-4o", RPM: 10})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := p.(*RateLimitedProvider); !ok {
		t.Errorf("expected rate-limited wrapper, got %T", p)
	}
	if p.Name() != "openai" {
		t.Errorf("name = %q, want openai", p.Name())
	}
}

func TestRateLimiterPassesThrough(t *testing.T) {
	mock := newMockProvider()
	rl := NewRateLimitedProvider(mock, 60)

	resp, err := rl.Complete(context.Background(), Request{
		System:   "you are a privacy compliance assistant",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Text != "mock answer" {
		t.Errorf("text = %q", resp.Text)
	}
	if mock.callCount() != 1 {
		t.Errorf("call count = %d, want 1", mock.callCount())
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	mock := newMockProvider()
	rl := NewRateLimitedProvider(mock, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	req := Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}}
	for i := 0; i < 2; i++ {
		if _, err := rl.Complete(ctx, req); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}

	// Bucket is empty, so the third call blocks until the context expires.
	if _, err := rl.Complete(ctx, req); err == nil {
		t.Error("expected context deadline error once the bucket is drained")
	}
}
