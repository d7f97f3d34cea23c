package billing

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

func TestPlanOrdering(t *testing.T) {
	tests := []struct {
		plan Plan
		min  Plan
		want bool
	}{
		{PlanFree, PlanFree, true},
		{PlanFree, PlanStarter, false},
		{PlanStarter, PlanStarter, true},
		{PlanStarter, PlanPro, false},
		{PlanPro, PlanFree, true},
		{PlanPro, PlanPro, true},
	}
	for _, tt := range tests {
		if got := tt.plan.AtLeast(tt.min); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.plan, tt.min, got, tt.want)
		}
	}
}

func TestEffectivePlanDefaultsToFree(t *testing.T) {
	store, _ := setupTestStore(t)

	plan, err := store.EffectivePlan(context.Background(), "org-without-subscription")
	if err != nil {
		t.Fatalf("effective plan: %v", err)
	}
	if plan != PlanFree {
		t.Errorf("plan = %s, want free", plan)
	}
}

func TestSetPlanUpsert(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	if err := store.SetPlan(ctx, "org-1", PlanStarter, SubActive, "cust_123", nil); err != nil {
		t.Fatalf("set plan: %v", err)
	}
	plan, err := store.EffectivePlan(ctx, "org-1")
	if err != nil {
		t.Fatalf("effective plan: %v", err)
	}
	if plan != PlanStarter {
		t.Errorf("plan = %s, want starter", plan)
	}

	// Upgrade replaces the existing row.
	if err := store.SetPlan(ctx, "org-1", PlanPro, SubActive, "cust_123", nil); err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	sub, err := store.Get(ctx, "org-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub.Plan != PlanPro {
		t.Errorf("plan after upgrade = %s, want pro", sub.Plan)
	}
}

func TestPastDueFallsBackToFree(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	if err := store.SetPlan(ctx, "org-1", PlanPro, SubPastDue, "", nil); err != nil {
		t.Fatalf("set plan: %v", err)
	}
	plan, err := store.EffectivePlan(ctx, "org-1")
	if err != nil {
		t.Fatalf("effective plan: %v", err)
	}
	if plan != PlanFree {
		t.Errorf("past_due subscription should be treated as free, got %s", plan)
	}
}

func setupTestRouter(t *testing.T) (*chi.Mux, *Store) {
	t.Helper()
	store, database := setupTestStore(t)

	r := chi.NewRouter()
	RegisterRoutes(r, store, audit.NewStore(database))
	return r, store
}

func TestRequirePlanMiddleware(t *testing.T) {
	r, store := setupTestRouter(t)
	r.Group(func(r chi.Router) {
		r.Use(RequirePlan(store, PlanStarter))
		r.Get("/api/gated", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/gated?org=org-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("free org got status %d, want 402", w.Code)
	}

	if err := store.SetPlan(context.Background(), "org-1", PlanStarter, SubActive, "", nil); err != nil {
		t.Fatalf("set plan: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/gated?org=org-1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("starter org got status %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/gated", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing org got status %d, want 400", w.Code)
	}
}

func TestWebhookEvents(t *testing.T) {
	r, store := setupTestRouter(t)
	ctx := context.Background()

	post := func(t *testing.T, payload map[string]string) int {
		t.Helper()
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/billing/webhook", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := post(t, map[string]string{"type": "payment_succeeded", "org_id": "org-1", "plan": "pro", "external_ref": "sub_42"}); code != http.StatusOK {
		t.Fatalf("payment_succeeded status = %d", code)
	}
	plan, _ := store.EffectivePlan(ctx, "org-1")
	if plan != PlanPro {
		t.Errorf("plan after payment = %s, want pro", plan)
	}

	// Failure event without a plan keeps the stored plan but drops entitlement.
	if code := post(t, map[string]string{"type": "payment_failed", "org_id": "org-1"}); code != http.StatusOK {
		t.Fatalf("payment_failed status = %d", code)
	}
	sub, _ := store.Get(ctx, "org-1")
	if sub.Plan != PlanPro || sub.Status != SubPastDue {
		t.Errorf("after failure: plan = %s status = %s", sub.Plan, sub.Status)
	}
	plan, _ = store.EffectivePlan(ctx, "org-1")
	if plan != PlanFree {
		t.Errorf("effective plan after failure = %s, want free", plan)
	}

	if code := post(t, map[string]string{"type": "bogus", "org_id": "org-1"}); code != http.StatusBadRequest {
		t.Errorf("unknown event status = %d, want 400", code)
	}
}
