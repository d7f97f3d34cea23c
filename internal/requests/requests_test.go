package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/audit"
	"github.com/mydpo/mydpo/internal/db"
	"github.com/mydpo/mydpo/internal/notifications"
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

func TestDueDays(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindAccess, 30},
		{KindCorrection, 30},
		{KindErasure, 30},
		{KindObjection, 21},
		{Kind("unknown"), 30},
	}
	for _, tt := range tests {
		if got := DueDays(tt.kind); got != tt.want {
			t.Errorf("DueDays(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestCreateStampsDueDate(t *testing.T) {
	store, _ := setupTestStore(t)

	created, err := store.Create(context.Background(), Request{
		OrgID:       "org-1",
		Kind:        KindObjection,
		SubjectName: "Dana Levi",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != StatusReceived {
		t.Errorf("status = %s, want received", created.Status)
	}

	wantDue := time.Now().UTC().AddDate(0, 0, 21)
	if diff := created.DueAt.Sub(wantDue); diff > time.Minute || diff < -time.Minute {
		t.Errorf("due at %v, want ~%v", created.DueAt, wantDue)
	}

	got, err := store.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("request not found after create")
	}
	if got.Kind != KindObjection || got.SubjectName != "Dana Levi" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestResolveAndOverdueFilter(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	overdue, err := store.Create(ctx, Request{
		OrgID:       "org-1",
		Kind:        KindAccess,
		SubjectName: "A",
		DueAt:       time.Now().UTC().AddDate(0, 0, -1),
	})
	if err != nil {
		t.Fatalf("create overdue: %v", err)
	}
	if _, err := store.Create(ctx, Request{OrgID: "org-1", Kind: KindAccess, SubjectName: "B"}); err != nil {
		t.Fatalf("create current: %v", err)
	}

	results, err := store.List(ctx, ListFilter{OrgID: "org-1", OverdueOnly: true})
	if err != nil {
		t.Fatalf("list overdue: %v", err)
	}
	if len(results) != 1 || results[0].ID != overdue.ID {
		t.Fatalf("overdue filter returned %d results, want the overdue one", len(results))
	}

	if err := store.Resolve(ctx, overdue.ID, StatusCompleted, "copy of data sent"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	results, err = store.List(ctx, ListFilter{OrgID: "org-1", OverdueOnly: true})
	if err != nil {
		t.Fatalf("list after resolve: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("resolved request still listed as overdue")
	}

	got, _ := store.GetByID(ctx, overdue.ID)
	if got.Status != StatusCompleted || got.ResolvedAt == nil || got.Resolution != "copy of data sent" {
		t.Errorf("resolution not persisted: %+v", got)
	}
}

func TestResolveRejectsBadStatus(t *testing.T) {
	store, _ := setupTestStore(t)

	created, err := store.Create(context.Background(), Request{OrgID: "org-1", Kind: KindErasure, SubjectName: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Resolve(context.Background(), created.ID, StatusInProgress, ""); err == nil {
		t.Error("expected error resolving with in_progress status")
	}
	if err := store.Resolve(context.Background(), "missing", StatusCompleted, ""); err == nil {
		t.Error("expected error resolving unknown request")
	}
}

func TestOverdue(t *testing.T) {
	now := time.Now().UTC()
	req := Request{Status: StatusReceived, DueAt: now.Add(-time.Hour)}
	if !req.Overdue(now) {
		t.Error("past-due received request should be overdue")
	}
	req.Status = StatusCompleted
	if req.Overdue(now) {
		t.Error("completed request is never overdue")
	}
	req.Status = StatusInProgress
	req.DueAt = now.Add(time.Hour)
	if req.Overdue(now) {
		t.Error("future deadline should not be overdue")
	}
}

func setupTestRouter(t *testing.T) (*chi.Mux, *Store) {
	t.Helper()
	store, database := setupTestStore(t)
	auditStore := audit.NewStore(database)
	dispatcher := notifications.NewDispatcher(notifications.NewStore(database))

	r := chi.NewRouter()
	RegisterRoutes(r, store, auditStore, dispatcher)
	return r, store
}

func TestCreateRequestEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)

	body, _ := json.Marshal(map[string]string{
		"org_id":       "org-1",
		"kind":         "access",
		"subject_name": "Dana Levi",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/requests", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var created Request
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Status != StatusReceived {
		t.Errorf("unexpected created request: %+v", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/requests?org=org-1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listed []Request
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("listed %d requests, want 1", len(listed))
	}
}

func TestCreateRequestValidation(t *testing.T) {
	r, _ := setupTestRouter(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing org", map[string]string{"kind": "access", "subject_name": "A"}},
		{"missing subject", map[string]string{"org_id": "org-1", "kind": "access"}},
		{"unknown kind", map[string]string{"org_id": "org-1", "kind": "portability", "subject_name": "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/requests", bytes.NewReader(body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestResolveRequestEndpoint(t *testing.T) {
	r, store := setupTestRouter(t)

	created, err := store.Create(context.Background(), Request{OrgID: "org-1", Kind: KindErasure, SubjectName: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"status": "rejected", "resolution": "identity not verified"})
	req := httptest.NewRequest(http.MethodPost, "/api/requests/"+created.ID+"/resolve", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	got, _ := store.GetByID(context.Background(), created.ID)
	if got.Status != StatusRejected {
		t.Errorf("status = %s, want rejected", got.Status)
	}
}
