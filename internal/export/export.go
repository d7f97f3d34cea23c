// Package export writes an organization's compliance records to disk as a
// portable bundle: one markdown file per document plus JSON snapshots of the
// profile and the derived compliance state. Regulators and auditors get the
// bundle, not database access.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mydpo/mydpo/internal/compliance"
	"github.com/mydpo/mydpo/internal/docgen"
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/profile"
)

// Summarizer derives an organization's compliance summary.
type Summarizer interface {
	Summarize(ctx context.Context, orgID string) (*compliance.Summary, error)
}

// Exporter bundles an organization's records into a directory.
type Exporter struct {
	docs       *documents.Store
	profiles   *profile.Store
	summarizer Summarizer
}

// NewExporter creates an exporter. summarizer may be nil to skip the
// compliance snapshot.
func NewExporter(docs *documents.Store, profiles *profile.Store, summarizer Summarizer) *Exporter {
	return &Exporter{docs: docs, profiles: profiles, summarizer: summarizer}
}

// Options controls what an export includes.
type Options struct {
	// Patterns are doublestar globs matched against the relative path of
	// each file inside the bundle. Empty means everything.
	Patterns []string
	// HTML additionally renders each document to HTML.
	HTML bool
}

// Result reports what an export produced.
type Result struct {
	Dir   string
	Files []string
}

// Export writes the bundle for one organization under dir.
func (e *Exporter) Export(ctx context.Context, orgID, dir string, opts Options) (*Result, error) {
	if orgID == "" {
		return nil, fmt.Errorf("org id is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	result := &Result{Dir: dir}

	write := func(rel string, content []byte) error {
		if !matchAny(opts.Patterns, rel) {
			return nil
		}
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
		result.Files = append(result.Files, rel)
		return nil
	}

	docs, err := e.docs.List(ctx, documents.ListFilter{OrgID: orgID})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	for _, doc := range docs {
		rel := "documents/" + fileName(doc)
		if err := write(rel+".md", []byte(doc.Content)); err != nil {
			return nil, err
		}
		if opts.HTML {
			rendered, err := docgen.RenderHTML(doc.Content)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", doc.ID, err)
			}
			if err := write(rel+".html", []byte(rendered)); err != nil {
				return nil, err
			}
		}
	}

	rec, err := e.profiles.Get(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	profileJSON, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := write("profile.json", profileJSON); err != nil {
		return nil, err
	}

	if e.summarizer != nil {
		summary, err := e.summarizer.Summarize(ctx, orgID)
		if err != nil {
			return nil, fmt.Errorf("derive summary: %w", err)
		}
		summaryJSON, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return nil, err
		}
		if err := write("compliance.json", summaryJSON); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// fileName builds a stable slug for a document file.
func fileName(doc documents.Document) string {
	slug := strings.ToLower(doc.Title)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = string(doc.Type)
	}
	return slug + "-" + shortID(doc.ID)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func matchAny(patterns []string, rel string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.PathMatch(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
