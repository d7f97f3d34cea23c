package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mydpo/mydpo/internal/compliance"
	"github.com/mydpo/mydpo/internal/db"
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/profile"
)

type stubSummarizer struct{}

func (stubSummarizer) Summarize(context.Context, string) (*compliance.Summary, error) {
	return &compliance.Summary{Score: 42, SecurityLevel: compliance.SecurityMedium}, nil
}

func setupExporter(t *testing.T) (*Exporter, *documents.Store, *profile.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	docs := documents.NewStore(database)
	profiles := profile.NewStore(database)
	return NewExporter(docs, profiles, stubSummarizer{}), docs, profiles
}

func TestExportBundle(t *testing.T) {
	exporter, docs, profiles := setupExporter(t)
	ctx := context.Background()

	if _, err := docs.Create(ctx, documents.Document{
		OrgID:   "org-1",
		Type:    documents.TypePrivacyPolicy,
		Title:   "Privacy Policy",
		Status:  documents.StatusActive,
		Content: "# Privacy Policy\n\nWe respect privacy.",
	}); err != nil {
		t.Fatalf("create doc: %v", err)
	}
	if err := profiles.Save(ctx, "org-1", profile.Profile{Databases: []string{profile.DBCustomers}}); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	dir := t.TempDir()
	result, err := exporter.Export(ctx, "org-1", dir, Options{HTML: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var hasMD, hasHTML bool
	for _, f := range result.Files {
		if strings.HasPrefix(f, "documents/privacy-policy-") {
			if strings.HasSuffix(f, ".md") {
				hasMD = true
			}
			if strings.HasSuffix(f, ".html") {
				hasHTML = true
			}
		}
	}
	if !hasMD || !hasHTML {
		t.Errorf("document files missing from %v", result.Files)
	}

	summaryBytes, err := os.ReadFile(filepath.Join(dir, "compliance.json"))
	if err != nil {
		t.Fatalf("read compliance.json: %v", err)
	}
	var summary compliance.Summary
	if err := json.Unmarshal(summaryBytes, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Score != 42 {
		t.Errorf("score = %d, want 42", summary.Score)
	}

	if _, err := os.Stat(filepath.Join(dir, "profile.json")); err != nil {
		t.Errorf("profile.json missing: %v", err)
	}
}

func TestExportPatternFilter(t *testing.T) {
	exporter, docs, _ := setupExporter(t)
	ctx := context.Background()

	if _, err := docs.Create(ctx, documents.Document{
		OrgID: "org-1", Type: documents.TypeROPA, Title: "Record of Processing Activities",
		Content: "# ROPA",
	}); err != nil {
		t.Fatalf("create doc: %v", err)
	}

	dir := t.TempDir()
	result, err := exporter.Export(ctx, "org-1", dir, Options{Patterns: []string{"documents/**"}})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	for _, f := range result.Files {
		if !strings.HasPrefix(f, "documents/") {
			t.Errorf("pattern leaked file %s", f)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "profile.json")); !os.IsNotExist(err) {
		t.Error("profile.json should have been filtered out")
	}
}

func TestExportRequiresOrg(t *testing.T) {
	exporter, _, _ := setupExporter(t)
	if _, err := exporter.Export(context.Background(), "", t.TempDir(), Options{}); err == nil {
		t.Error("expected error for empty org id")
	}
}
