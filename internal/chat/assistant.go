package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mydpo/mydpo/internal/compliance"
	"github.com/mydpo/mydpo/internal/knowledge"
	"github.com/mydpo/mydpo/internal/llm"
)

const systemPrompt = `You are the digital privacy officer assistant of an Israeli SaaS compliance platform.
You answer questions about the Protection of Privacy Law (including Amendment 13), the Data Security
Regulations, and the organization's own compliance state. Ground every answer in the supplied context.
When the law requires a specific action, say so plainly and cite the statutory source from the context.
If the context does not cover the question, say you are not certain and recommend consulting the DPO.
Answer in the language the user writes in.`

// Summarizer derives an organization's compliance summary.
type Summarizer interface {
	Summarize(ctx context.Context, orgID string) (*compliance.Summary, error)
}

// Searcher finds guidance articles for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int, topic knowledge.Topic) ([]knowledge.SearchResult, error)
}

// Assistant answers compliance questions grounded on the knowledge base and
// the organization's derived compliance state.
type Assistant struct {
	provider   llm.Provider
	store      *Store
	search     Searcher
	summarizer Summarizer
}

// NewAssistant wires the assistant. search and summarizer may be nil, in
// which case answers lose that grounding but the assistant still works.
func NewAssistant(provider llm.Provider, store *Store, search Searcher, summarizer Summarizer) *Assistant {
	return &Assistant{
		provider:   provider,
		store:      store,
		search:     search,
		summarizer: summarizer,
	}
}

// Ask answers a question within a session, creating the session when
// sessionID is empty. Returns the answer and the session id used.
func (a *Assistant) Ask(ctx context.Context, orgID, sessionID, question string) (string, string, error) {
	if a.provider == nil {
		return "", sessionID, fmt.Errorf("llm provider not configured")
	}

	if sessionID == "" {
		sess, err := a.store.CreateSession(ctx, orgID, "")
		if err != nil {
			return "", "", fmt.Errorf("create session: %w", err)
		}
		sessionID = sess.ID
	}

	history, err := a.store.History(ctx, sessionID, 20)
	if err != nil {
		return "", sessionID, fmt.Errorf("load history: %w", err)
	}

	grounding := a.buildGrounding(ctx, orgID, question)

	messages := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, llm.Message{Role: llm.Role(m.Role), Content: m.Content})
	}
	userTurn := question
	if grounding != "" {
		userTurn = grounding + "\n\nQuestion: " + question
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userTurn})

	resp, err := a.provider.Complete(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    messages,
		Temperature: 0.2,
	})
	if err != nil {
		return "", sessionID, fmt.Errorf("completion: %w", err)
	}

	// Persist the raw question, not the grounded prompt, so history stays
	// readable and grounding is rebuilt fresh each turn.
	if err := a.store.AppendMessage(ctx, sessionID, string(llm.RoleUser), question); err != nil {
		return "", sessionID, err
	}
	if err := a.store.AppendMessage(ctx, sessionID, string(llm.RoleAssistant), resp.Text); err != nil {
		return "", sessionID, err
	}

	return resp.Text, sessionID, nil
}

func (a *Assistant) buildGrounding(ctx context.Context, orgID, question string) string {
	var sb strings.Builder

	if a.search != nil {
		results, err := a.search.Search(ctx, question, 3, "")
		if err == nil && len(results) > 0 {
			sb.WriteString("Relevant guidance:\n")
			for _, r := range results {
				fmt.Fprintf(&sb, "- %s (%s): %s\n", r.Article.Title, r.Article.Source, r.Article.Content)
			}
		}
	}

	if a.summarizer != nil && orgID != "" {
		summary, err := a.summarizer.Summarize(ctx, orgID)
		if err == nil {
			state, err := json.Marshal(summary)
			if err == nil {
				sb.WriteString("\nOrganization compliance state:\n")
				sb.Write(state)
				sb.WriteString("\n")
			}
		}
	}

	return strings.TrimSpace(sb.String())
}

const reviewPrompt = `You are a privacy compliance reviewer. Review the following document for compliance
with the Israeli Protection of Privacy Law and the Data Security Regulations. Reply with a short
assessment: what the document covers well, what is missing or wrong, and concrete fixes. Be specific.`

// ReviewDocument asks the model to critique a compliance document draft.
func (a *Assistant) ReviewDocument(ctx context.Context, docType, content string) (string, error) {
	if a.provider == nil {
		return "", fmt.Errorf("llm provider not configured")
	}

	grounding := ""
	if a.search != nil {
		results, err := a.search.Search(ctx, docType+" requirements", 2, "")
		if err == nil && len(results) > 0 {
			var sb strings.Builder
			sb.WriteString("Relevant requirements:\n")
			for _, r := range results {
				fmt.Fprintf(&sb, "- %s: %s\n", r.Article.Source, r.Article.Content)
			}
			grounding = sb.String()
		}
	}

	resp, err := a.provider.Complete(ctx, llm.Request{
		System: reviewPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: fmt.Sprintf("%sDocument type: %s\n\n%s", grounding, docType, content),
		}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("review completion: %w", err)
	}
	return resp.Text, nil
}
