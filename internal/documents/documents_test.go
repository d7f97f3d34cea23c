package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/audit"
	"github.com/mydpo/mydpo/internal/db"
)

func setupTestStore(t *testing.T) (*Store, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database), database
}

func TestCreateDefaultsToDraft(t *testing.T) {
	store, _ := setupTestStore(t)

	created, err := store.Create(context.Background(), Document{
		OrgID: "org-1",
		Type:  TypePrivacyPolicy,
		Title: "Privacy Policy",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Status != StatusDraft {
		t.Errorf("unexpected created document: %+v", created)
	}

	got, err := store.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("document not found after create")
	}
	if got.Type != TypePrivacyPolicy || got.Title != "Privacy Policy" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestListFilters(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	seed := []Document{
		{OrgID: "org-1", Type: TypePrivacyPolicy, Title: "Policy"},
		{OrgID: "org-1", Type: TypeDPA, Title: "DPA", Status: StatusActive},
		{OrgID: "org-2", Type: TypePrivacyPolicy, Title: "Other org"},
	}
	for _, d := range seed {
		if _, err := store.Create(ctx, d); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	byOrg, err := store.List(ctx, ListFilter{OrgID: "org-1"})
	if err != nil {
		t.Fatalf("list by org: %v", err)
	}
	if len(byOrg) != 2 {
		t.Errorf("org-1 has %d documents, want 2", len(byOrg))
	}

	active, err := store.List(ctx, ListFilter{OrgID: "org-1", Status: StatusActive})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Type != TypeDPA {
		t.Errorf("active filter returned %+v", active)
	}

	byType, err := store.List(ctx, ListFilter{Type: TypePrivacyPolicy})
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(byType) != 2 {
		t.Errorf("type filter returned %d, want 2", len(byType))
	}
}

func TestApprove(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, Document{OrgID: "org-1", Type: TypeDPOAppointment, Title: "Appointment"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Approve(ctx, created.ID, "dpo@example.com"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, _ := store.GetByID(ctx, created.ID)
	if got.Status != StatusActive || got.ApprovedBy != "dpo@example.com" || got.ApprovedAt == nil {
		t.Errorf("approval not persisted: %+v", got)
	}

	if err := store.Approve(ctx, "missing", "dpo@example.com"); err == nil {
		t.Error("expected error approving unknown document")
	}
}

func TestUpdateContentResetsToDraft(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, Document{OrgID: "org-1", Type: TypeROPA, Title: "ROPA", Status: StatusActive})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.UpdateContent(ctx, created.ID, "# Updated"); err != nil {
		t.Fatalf("update content: %v", err)
	}
	got, _ := store.GetByID(ctx, created.ID)
	if got.Status != StatusDraft || got.Content != "# Updated" {
		t.Errorf("content update not persisted: %+v", got)
	}
}

func TestTypeValid(t *testing.T) {
	if !TypePrivacyPolicy.Valid() {
		t.Error("privacy_policy should be valid")
	}
	if Type("nonsense").Valid() {
		t.Error("unknown type should not be valid")
	}
	if len(TypeNames()) == 0 {
		t.Error("TypeNames returned nothing")
	}
}

func setupTestRouter(t *testing.T) (*chi.Mux, *Store) {
	t.Helper()
	store, database := setupTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store, audit.NewStore(database))
	return r, store
}

func TestCreateDocumentEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	body, _ := json.Marshal(map[string]string{
		"org_id": "org-1",
		"type":   "privacy_policy",
		"title":  "Privacy Policy",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/documents", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var created Document
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Status != StatusDraft {
		t.Errorf("unexpected created document: %+v", created)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/documents", bytes.NewReader([]byte(`{"title":"no org"}`)))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing org status = %d, want 400", w.Code)
	}
}

func TestApproveDocumentEndpoint(t *testing.T) {
	r, store := setupTestRouter(t)

	created, err := store.Create(context.Background(), Document{OrgID: "org-1", Type: TypeDPA, Title: "DPA"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"approved_by": "dpo@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/documents/"+created.ID+"/approve", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	got, _ := store.GetByID(context.Background(), created.ID)
	if got.Status != StatusActive {
		t.Errorf("status = %s, want active", got.Status)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/documents/missing/approve", bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing doc status = %d, want 404", w.Code)
	}
}
