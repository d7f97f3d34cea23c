package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/audit"
)

// RegisterRoutes mounts the profile API endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store, auditStore *audit.Store) {
	r.Get("/api/profile", getHandler(store))
	r.Put("/api/profile", saveHandler(store, auditStore))
}

func getHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := r.URL.Query().Get("org")
		if orgID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org is required"})
			return
		}
		rec, err := store.Get(r.Context(), orgID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func saveHandler(store *Store, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID := r.URL.Query().Get("org")
		if orgID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org is required"})
			return
		}

		var p Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}

		if err := store.Save(r.Context(), orgID, p); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		auditStore.Record(r.Context(), audit.Entry{
			OrgID:     orgID,
			ActorType: audit.ActorUser,
			ActorID:   "api",
			Action:    audit.ActionProfileUpdated,
			Summary:   "intake profile updated",
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
