package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/db"
	"github.com/mydpo/mydpo/internal/knowledge"
	"github.com/mydpo/mydpo/internal/llm"
)

// mockProvider echoes a canned answer and records the last request.
type mockProvider struct {
	last llm.Request
	text string
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, req llm.Request) (*llm.Response, error) {
	m.last = req
	return &llm.Response{Text: m.text}, nil
}

// mockSearcher returns one fixed guidance article.
type mockSearcher struct{}

func (mockSearcher) Search(_ context.Context, _ string, _ int, _ knowledge.Topic) ([]knowledge.SearchResult, error) {
	return []knowledge.SearchResult{{
		Article: knowledge.Article{
			ID:      "dpo-duty",
			Title:   "When a privacy protection officer must be appointed",
			Source:  "Protection of Privacy Law, s. 17B1",
			Content: "A privacy protection officer must be appointed by public bodies.",
		},
		Similarity: 0.9,
	}}, nil
}

func setupAssistant(t *testing.T) (*Assistant, *mockProvider, *Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := NewStore(database)
	provider := &mockProvider{text: "you must appoint an officer"}
	return NewAssistant(provider, store, mockSearcher{}, nil), provider, store
}

func TestAskCreatesSessionAndPersistsHistory(t *testing.T) {
	assistant, provider, store := setupAssistant(t)
	ctx := context.Background()

	answer, sessionID, err := assistant.Ask(ctx, "org-1", "", "do we need a DPO?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if answer != "you must appoint an officer" {
		t.Errorf("answer = %q", answer)
	}
	if sessionID == "" {
		t.Fatal("expected session id")
	}

	if !strings.Contains(provider.last.Messages[len(provider.last.Messages)-1].Content, "s. 17B1") {
		t.Error("grounding not included in prompt")
	}
	if provider.last.System == "" {
		t.Error("system prompt missing")
	}

	history, err := store.History(ctx, sessionID, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d messages, want 2", len(history))
	}
	// The stored user turn is the raw question, not the grounded prompt.
	if history[0].Content != "do we need a DPO?" {
		t.Errorf("stored question = %q", history[0].Content)
	}
	if history[1].Role != "assistant" {
		t.Errorf("second message role = %s", history[1].Role)
	}
}

func TestAskReusesSession(t *testing.T) {
	assistant, provider, store := setupAssistant(t)
	ctx := context.Background()

	_, sessionID, err := assistant.Ask(ctx, "org-1", "", "first question")
	if err != nil {
		t.Fatalf("first ask: %v", err)
	}
	_, second, err := assistant.Ask(ctx, "org-1", sessionID, "second question")
	if err != nil {
		t.Fatalf("second ask: %v", err)
	}
	if second != sessionID {
		t.Errorf("session changed: %s vs %s", second, sessionID)
	}

	// The second call carries the earlier turns as conversation history.
	if len(provider.last.Messages) != 3 {
		t.Errorf("prompt has %d messages, want 3 (2 history + 1 new)", len(provider.last.Messages))
	}

	history, _ := store.History(ctx, sessionID, 0)
	if len(history) != 4 {
		t.Errorf("history has %d messages, want 4", len(history))
	}
}

func TestAskWithoutProvider(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	assistant := NewAssistant(nil, NewStore(database), nil, nil)
	if _, _, err := assistant.Ask(context.Background(), "org-1", "", "hi"); err == nil {
		t.Error("expected error without a provider")
	}
}

func TestReviewDocument(t *testing.T) {
	assistant, provider, _ := setupAssistant(t)

	review, err := assistant.ReviewDocument(context.Background(), "privacy_policy", "We collect emails.")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if review == "" {
		t.Error("empty review")
	}
	prompt := provider.last.Messages[0].Content
	if !strings.Contains(prompt, "privacy_policy") || !strings.Contains(prompt, "We collect emails.") {
		t.Errorf("review prompt missing inputs: %q", prompt)
	}
}

func TestAskEndpoint(t *testing.T) {
	assistant, _, store := setupAssistant(t)

	r := chi.NewRouter()
	RegisterRoutes(r, assistant, store)

	body, _ := json.Marshal(map[string]string{"org_id": "org-1", "content": "do we need a DPO?"})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["session_id"] == "" || resp["content"] == "" {
		t.Errorf("unexpected response: %v", resp)
	}

	// History endpoint returns both turns.
	req = httptest.NewRequest(http.MethodGet, "/api/chat/"+resp["session_id"]+"/history", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	var history []StoredMessage
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("history has %d messages, want 2", len(history))
	}
}
