package compliance

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/incidents"
	"github.com/mydpo/mydpo/internal/profile"
)

// Service is the impure shell around the pure derivation: it fetches the
// inputs for an organization and runs Derive. All caching would live here,
// never in the engine.
type Service struct {
	profiles  *profile.Store
	documents *documents.Store
	incidents *incidents.Store
	rules     *RuleStore
	custom    *CustomEngine
}

// NewService wires the compliance service to its input stores. The custom
// engine may be nil, disabling organization-defined rules.
func NewService(profiles *profile.Store, docs *documents.Store, incs *incidents.Store, rules *RuleStore, custom *CustomEngine) *Service {
	return &Service{
		profiles:  profiles,
		documents: docs,
		incidents: incs,
		rules:     rules,
		custom:    custom,
	}
}

// Summarize fetches an organization's current state and derives its summary.
func (s *Service) Summarize(ctx context.Context, orgID string) (*Summary, error) {
	rec, err := s.profiles.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.List(ctx, documents.ListFilter{OrgID: orgID})
	if err != nil {
		return nil, err
	}
	incs, err := s.incidents.List(ctx, incidents.ListFilter{OrgID: orgID})
	if err != nil {
		return nil, err
	}

	var extra []Rule
	if s.custom != nil && s.rules != nil {
		stored, err := s.rules.ListByOrg(ctx, orgID)
		if err == nil {
			extra = s.custom.Compile(stored)
		}
	}

	summary := DeriveWithRules(&rec.Answers, docs, incs, extra)
	return &summary, nil
}

// RegisterRoutes mounts the compliance API endpoints on the given router.
func RegisterRoutes(r chi.Router, svc *Service, rules *RuleStore, custom *CustomEngine) {
	r.Get("/api/compliance", summaryHandler(svc))
	r.Get("/api/compliance/rules", listRulesHandler(rules))
	r.Post("/api/compliance/rules", createRuleHandler(rules, custom))
	r.Delete("/api/compliance/rules/{id}", deleteRuleHandler(rules))
}

func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := r.URL.Query().Get("org")
		if orgID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org is required"})
			return
		}
		summary, err := svc.Summarize(r.Context(), orgID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func listRulesHandler(rules *RuleStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := r.URL.Query().Get("org")
		if orgID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org is required"})
			return
		}
		results, err := rules.ListByOrg(r.Context(), orgID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if results == nil {
			results = []CustomRule{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func createRuleHandler(rules *RuleStore, custom *CustomEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cr CustomRule
		if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if cr.OrgID == "" || cr.Expr == "" || cr.Title == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org_id, expr, and title are required"})
			return
		}
		if custom != nil {
			if err := custom.Validate(cr.Expr); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
		}
		cr.Enabled = true

		created, err := rules.Create(r.Context(), cr)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func deleteRuleHandler(rules *RuleStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rules.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
