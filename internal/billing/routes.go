package billing

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/audit"
)

// RegisterRoutes mounts the billing endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store, auditStore *audit.Store) {
	r.Get("/api/billing", getHandler(store))
	r.Post("/api/billing/plan", setPlanHandler(store, auditStore))
	r.Post("/api/billing/webhook", webhookHandler(store, auditStore))
}

func getHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := r.URL.Query().Get("org")
		if orgID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org query parameter is required"})
			return
		}

		sub, err := store.Get(r.Context(), orgID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if sub == nil {
			sub = &Subscription{OrgID: orgID, Plan: PlanFree, Status: SubActive}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"subscription": sub,
			"effective":    sub.Effective(),
		})
	}
}

func setPlanHandler(store *Store, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			OrgID string `json:"org_id"`
			Plan  Plan   `json:"plan"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if body.OrgID == "" || !body.Plan.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org_id and a valid plan are required"})
			return
		}

		if err := store.SetPlan(r.Context(), body.OrgID, body.Plan, SubActive, "", nil); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		auditStore.Record(r.Context(), audit.Entry{
			OrgID:      body.OrgID,
			ActorType:  audit.ActorUser,
			Action:     audit.ActionPlanChanged,
			EntityType: "subscription",
			EntityID:   body.OrgID,
			Summary:    "plan changed to " + string(body.Plan),
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// webhookEvent is the payload posted by the payment provider.
type webhookEvent struct {
	Type        string `json:"type"`
	OrgID       string `json:"org_id"`
	Plan        Plan   `json:"plan"`
	ExternalRef string `json:"external_ref"`
	RenewsAt    string `json:"renews_at"`
}

func webhookHandler(store *Store, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev webhookEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid webhook payload: " + err.Error()})
			return
		}
		if ev.OrgID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org_id is required"})
			return
		}

		var status SubStatus
		plan := ev.Plan
		switch ev.Type {
		case "payment_succeeded", "subscription_renewed":
			status = SubActive
		case "payment_failed":
			status = SubPastDue
		case "subscription_canceled":
			status = SubCanceled
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown event type: " + ev.Type})
			return
		}
		if plan == "" || !plan.Valid() {
			// Keep the existing plan when the event omits it.
			existing, err := store.Get(r.Context(), ev.OrgID)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			plan = PlanFree
			if existing != nil {
				plan = existing.Plan
			}
		}

		var renews *time.Time
		if ev.RenewsAt != "" {
			if t, err := time.Parse(time.RFC3339, ev.RenewsAt); err == nil {
				renews = &t
			}
		}

		if err := store.SetPlan(r.Context(), ev.OrgID, plan, status, ev.ExternalRef, renews); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		auditStore.Record(r.Context(), audit.Entry{
			OrgID:      ev.OrgID,
			ActorType:  audit.ActorSystem,
			ActorID:    "billing",
			Action:     audit.ActionPlanChanged,
			EntityType: "subscription",
			EntityID:   ev.OrgID,
			Summary:    ev.Type + ": " + string(plan) + " (" + string(status) + ")",
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
