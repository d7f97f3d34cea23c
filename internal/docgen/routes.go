package docgen

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mydpo/mydpo/internal/audit"
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/orgs"
	"github.com/mydpo/mydpo/internal/profile"
)

// RegisterRoutes mounts the document generation endpoints.
func RegisterRoutes(r chi.Router, gen *Generator, orgStore *orgs.Store, profiles *profile.Store, docs *documents.Store, auditStore *audit.Store) {
	r.Post("/api/docgen", generateHandler(gen, orgStore, profiles, docs, auditStore))
	r.Get("/api/documents/{id}/html", htmlHandler(docs))
}

func generateHandler(gen *Generator, orgStore *orgs.Store, profiles *profile.Store, docs *documents.Store, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			OrgID string         `json:"org_id"`
			Type  documents.Type `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if body.OrgID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "org_id is required"})
			return
		}
		if !Supported(body.Type) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported document type: " + string(body.Type)})
			return
		}

		org, err := orgStore.GetByID(r.Context(), body.OrgID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if org == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "organization not found"})
			return
		}

		rec, err := profiles.Get(r.Context(), body.OrgID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		content, err := gen.Generate(r.Context(), body.Type, *org, &rec.Answers)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		created, err := docs.Create(r.Context(), documents.Document{
			OrgID:   body.OrgID,
			Type:    body.Type,
			Title:   Title(body.Type),
			Status:  documents.StatusDraft,
			Content: content,
		})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		auditStore.Record(r.Context(), audit.Entry{
			OrgID:      body.OrgID,
			ActorType:  audit.ActorSystem,
			ActorID:    "docgen",
			Action:     audit.ActionDocumentCreated,
			EntityType: "document",
			EntityID:   created.ID,
			Summary:    "draft generated: " + created.Title,
		})

		writeJSON(w, http.StatusCreated, created)
	}
}

func htmlHandler(docs *documents.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := docs.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if doc == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}

		rendered, err := RenderHTML(doc.Content)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(rendered))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
