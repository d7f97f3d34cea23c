package documents

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/audit"
)

// RegisterRoutes mounts the document API endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store, auditStore *audit.Store) {
	r.Get("/api/documents", listHandler(store))
	r.Get("/api/documents/{id}", getHandler(store))
	r.Post("/api/documents", createHandler(store, auditStore))
	r.Post("/api/documents/{id}/approve", approveHandler(store, auditStore))
	r.Post("/api/documents/{id}/status", statusHandler(store))
}

func listHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{OrgID: r.URL.Query().Get("org")}
		if v := r.URL.Query().Get("type"); v != "" {
			filter.Type = Type(v)
		}
		if v := r.URL.Query().Get("status"); v != "" {
			filter.Status = Status(v)
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				filter.Limit = n
			}
		}

		docs, err := store.List(r.Context(), filter)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if docs == nil {
			docs = []Document{}
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func getHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if doc == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func createHandler(store *Store, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if doc.OrgID == "" || doc.Type == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org_id and type are required"})
			return
		}

		created, err := store.Create(r.Context(), doc)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		auditStore.Record(r.Context(), audit.Entry{
			OrgID:      created.OrgID,
			ActorType:  audit.ActorSystem,
			ActorID:    "api",
			Action:     audit.ActionDocumentCreated,
			EntityType: "document",
			EntityID:   created.ID,
			Summary:    "document created: " + string(created.Type),
		})

		writeJSON(w, http.StatusCreated, created)
	}
}

func approveHandler(store *Store, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var body struct {
			ApprovedBy string `json:"approved_by"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ApprovedBy == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "approved_by is required"})
			return
		}

		doc, err := store.GetByID(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if doc == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}

		if err := store.Approve(r.Context(), id, body.ApprovedBy); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		auditStore.Record(r.Context(), audit.Entry{
			OrgID:      doc.OrgID,
			ActorType:  audit.ActorDPO,
			ActorID:    body.ApprovedBy,
			Action:     audit.ActionDocumentApproved,
			EntityType: "document",
			EntityID:   id,
			Summary:    "document approved: " + string(doc.Type),
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func statusHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var body struct {
			Status Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
			return
		}

		if err := store.UpdateStatus(r.Context(), id, body.Status); err != nil {
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
