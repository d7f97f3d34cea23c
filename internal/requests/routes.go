package requests

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/audit"
	"github.com/mydpo/mydpo/internal/notifications"
)

// RegisterRoutes mounts the data-subject rights request endpoints.
func RegisterRoutes(r chi.Router, store *Store, auditStore *audit.Store, dispatcher *notifications.Dispatcher) {
	r.Get("/api/requests", listHandler(store))
	r.Get("/api/requests/{id}", getHandler(store))
	r.Post("/api/requests", createHandler(store, auditStore, dispatcher))
	r.Post("/api/requests/{id}/assign", assignHandler(store))
	r.Post("/api/requests/{id}/resolve", resolveHandler(store, auditStore))
}

func listHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{OrgID: r.URL.Query().Get("org")}
		if v := r.URL.Query().Get("kind"); v != "" {
			filter.Kind = Kind(v)
		}
		if v := r.URL.Query().Get("status"); v != "" {
			filter.Status = Status(v)
		}
		if v := r.URL.Query().Get("overdue"); v == "true" || v == "1" {
			filter.OverdueOnly = true
		}

		results, err := store.List(r.Context(), filter)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if results == nil {
			results = []Request{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func getHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if req == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, req)
	}
}

func createHandler(store *Store, auditStore *audit.Store, dispatcher *notifications.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if req.OrgID == "" || req.SubjectName == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org_id and subject_name are required"})
			return
		}
		if _, ok := statutoryDays[req.Kind]; !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown request kind: " + string(req.Kind)})
			return
		}

		created, err := store.Create(r.Context(), req)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		auditStore.Record(r.Context(), audit.Entry{
			OrgID:      created.OrgID,
			ActorType:  audit.ActorUser,
			ActorID:    created.SubjectEmail,
			Action:     audit.ActionRequestReceived,
			EntityType: "request",
			EntityID:   created.ID,
			Summary:    string(created.Kind) + " request from " + created.SubjectName,
		})

		dispatcher.Dispatch(r.Context(), notifications.Notification{
			OrgID:    created.OrgID,
			Type:     "request_received",
			Severity: notifications.SeverityInfo,
			Title:    "New " + string(created.Kind) + " request",
			Message:  created.SubjectName + ", due " + created.DueAt.Format("2006-01-02"),
		})

		writeJSON(w, http.StatusCreated, created)
	}
}

func assignHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var body struct {
			Assignee string `json:"assignee"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if body.Assignee == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "assignee is required"})
			return
		}

		if err := store.Assign(r.Context(), id, body.Assignee); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func resolveHandler(store *Store, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var body struct {
			Status     Status `json:"status"`
			Resolution string `json:"resolution"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if body.Status == "" {
			body.Status = StatusCompleted
		}

		req, err := store.GetByID(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if req == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}

		if err := store.Resolve(r.Context(), id, body.Status, body.Resolution); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		overdue := ""
		if req.Overdue(time.Now().UTC()) {
			overdue = " (past deadline)"
		}
		auditStore.Record(r.Context(), audit.Entry{
			OrgID:      req.OrgID,
			ActorType:  audit.ActorDPO,
			ActorID:    req.Assignee,
			Action:     audit.ActionRequestResolved,
			EntityType: "request",
			EntityID:   id,
			Summary:    string(req.Kind) + " request " + string(body.Status) + overdue,
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
