package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRecordAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	entries := []Entry{
		{OrgID: "org-1", ActorType: ActorUser, ActorID: "u1", Action: ActionProfileUpdated, Summary: "intake updated"},
		{OrgID: "org-1", ActorType: ActorDPO, ActorID: "dpo", Action: ActionDocumentApproved, EntityType: "document", EntityID: "d1"},
		{OrgID: "org-2", ActorType: ActorSystem, ActorID: "docgen", Action: ActionDocumentCreated},
	}
	for _, e := range entries {
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	byOrg, err := store.List(ctx, ListFilter{OrgID: "org-1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byOrg) != 2 {
		t.Errorf("org-1 has %d entries, want 2", len(byOrg))
	}

	byAction, err := store.List(ctx, ListFilter{OrgID: "org-1", Action: ActionDocumentApproved})
	if err != nil {
		t.Fatalf("list by action: %v", err)
	}
	if len(byAction) != 1 || byAction[0].EntityID != "d1" {
		t.Errorf("action filter returned %+v", byAction)
	}

	recent, err := store.List(ctx, ListFilter{Since: time.Now().UTC().Add(time.Hour)})
	if err != nil {
		t.Fatalf("list since future: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("future since returned %d entries", len(recent))
	}
}

func TestRecordFillsDefaults(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Record(context.Background(), Entry{OrgID: "org-1", Action: ActionPlanChanged}); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, err := store.List(context.Background(), ListFilter{OrgID: "org-1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("listed %d entries, want 1", len(got))
	}
	if got[0].ID == "" || got[0].Timestamp.IsZero() {
		t.Errorf("defaults not applied: %+v", got[0])
	}
}

func TestAuditEndpoint(t *testing.T) {
	store := setupTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)

	if err := store.Record(context.Background(), Entry{OrgID: "org-1", Action: ActionIncidentReported, Summary: "breach"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/audit?org=org-1&action=incident_reported", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var listed []Entry
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 1 || listed[0].Summary != "breach" {
		t.Errorf("listed %+v", listed)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/audit?org=other", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "[]\n" {
		t.Errorf("empty org should return [], got %q", w.Body.String())
	}
}
