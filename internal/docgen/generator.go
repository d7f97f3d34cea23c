package docgen

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/llm"
	"github.com/mydpo/mydpo/internal/orgs"
	"github.com/mydpo/mydpo/internal/profile"
)

// databaseRow is one database's intake answers flattened for templates.
type databaseRow struct {
	Name      string
	Fields    string
	Size      string
	Access    string
	Retention string
}

// templateData is the input to every document template.
type templateData struct {
	Title        string
	Org          orgs.Organization
	Databases    []string
	DatabaseRows []databaseRow
	Processors   []string
	OpenAccess   bool
}

// Generator renders compliance document drafts from an organization's
// intake profile. When a provider is set, the rendered draft is refined
// by the model; otherwise the template output is returned as-is.
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a generator. provider may be nil.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Supported reports whether a document type can be generated.
func Supported(t documents.Type) bool {
	_, ok := docTemplates[t]
	return ok
}

// Generate renders the markdown draft for one document type.
func (g *Generator) Generate(ctx context.Context, docType documents.Type, org orgs.Organization, p *profile.Profile) (string, error) {
	tmplText, ok := docTemplates[docType]
	if !ok {
		return "", fmt.Errorf("no template for document type %q", docType)
	}
	if p == nil {
		p = &profile.Profile{}
	}

	tmpl, err := template.New(string(docType)).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", docType, err)
	}

	data := templateData{
		Title:      Title(docType),
		Org:        org,
		Databases:  p.AllDatabases(),
		Processors: p.ProcessorLabels(),
		OpenAccess: p.AccessControl == "all",
	}
	for _, name := range p.AllDatabases() {
		detail := p.Detail(name)
		data.DatabaseRows = append(data.DatabaseRows, databaseRow{
			Name:      name,
			Fields:    strings.Join(detail.Fields, ", "),
			Size:      detail.Size,
			Access:    detail.Access,
			Retention: detail.Retention,
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", docType, err)
	}
	draft := buf.String()

	if g.provider == nil {
		return draft, nil
	}
	return g.refine(ctx, docType, draft)
}

const refineSystem = `You are a legal drafting assistant for Israeli privacy compliance documents.
You receive a markdown draft. Improve its wording and fill obvious gaps while keeping the
structure, the markdown formatting, and every factual statement intact. Return only the
revised markdown, no commentary.`

func (g *Generator) refine(ctx context.Context, docType documents.Type, draft string) (string, error) {
	resp, err := g.provider.Complete(ctx, llm.Request{
		System: refineSystem,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: fmt.Sprintf("Document type: %s\n\n%s", docType, draft),
		}},
		Temperature: 0.2,
	})
	if err != nil {
		// A refinement failure should not lose the draft.
		return draft, nil
	}
	if strings.TrimSpace(resp.Text) == "" {
		return draft, nil
	}
	return resp.Text, nil
}
