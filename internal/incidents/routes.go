package incidents

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/audit"
	"github.com/mydpo/mydpo/internal/notifications"
)

// RegisterRoutes mounts the incident API endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store, auditStore *audit.Store, dispatcher *notifications.Dispatcher) {
	r.Get("/api/incidents", listHandler(store))
	r.Get("/api/incidents/{id}", getHandler(store))
	r.Post("/api/incidents", createHandler(store, auditStore, dispatcher))
	r.Post("/api/incidents/{id}/resolve", resolveHandler(store, auditStore))
}

func listHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{OrgID: r.URL.Query().Get("org")}
		if v := r.URL.Query().Get("status"); v != "" {
			filter.Status = Status(v)
		}
		if v := r.URL.Query().Get("open"); v == "true" || v == "1" {
			filter.OpenOnly = true
		}

		results, err := store.List(r.Context(), filter)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if results == nil {
			results = []Incident{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func getHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inc, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if inc == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, inc)
	}
}

func createHandler(store *Store, auditStore *audit.Store, dispatcher *notifications.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inc Incident
		if err := json.NewDecoder(r.Body).Decode(&inc); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if inc.OrgID == "" || inc.Title == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org_id and title are required"})
			return
		}

		created, err := store.Create(r.Context(), inc)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		auditStore.Record(r.Context(), audit.Entry{
			OrgID:      created.OrgID,
			ActorType:  audit.ActorUser,
			ActorID:    created.ReportedBy,
			Action:     audit.ActionIncidentReported,
			EntityType: "incident",
			EntityID:   created.ID,
			Summary:    "incident reported: " + created.Title,
		})

		severity := notifications.SeverityWarning
		if created.Severity == SeverityCritical || created.Severity == SeverityHigh {
			severity = notifications.SeverityCritical
		}
		dispatcher.Dispatch(r.Context(), notifications.Notification{
			OrgID:    created.OrgID,
			Type:     "incident_reported",
			Severity: severity,
			Title:    "Security incident reported",
			Message:  created.Title,
		})

		writeJSON(w, http.StatusCreated, created)
	}
}

func resolveHandler(store *Store, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var body struct {
			Resolution string `json:"resolution"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}

		inc, err := store.GetByID(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if inc == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}

		if err := store.Resolve(r.Context(), id, body.Resolution); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		auditStore.Record(r.Context(), audit.Entry{
			OrgID:      inc.OrgID,
			ActorType:  audit.ActorDPO,
			ActorID:    "dpo",
			Action:     audit.ActionIncidentResolved,
			EntityType: "incident",
			EntityID:   id,
			Summary:    "incident resolved: " + inc.Title,
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
