package chat

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type      string `json:"type"` // "ask"
	SessionID string `json:"session_id"`
	OrgID     string `json:"org_id"`
	Content   string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string `json:"type"` // "response" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

// RegisterRoutes mounts the assistant endpoints.
func RegisterRoutes(r chi.Router, assistant *Assistant, store *Store) {
	r.Get("/api/chat/ws", wsHandler(assistant))
	r.Post("/api/chat", askHandler(assistant))
	r.Post("/api/chat/review", reviewHandler(assistant))
	r.Get("/api/chat/{session}/history", historyHandler(store))
}

func wsHandler(assistant *Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("chat: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("chat: websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				writeWS(conn, wsResponse{Type: "error", Content: "invalid message format"})
				continue
			}
			if req.Content == "" {
				writeWS(conn, wsResponse{Type: "error", SessionID: req.SessionID, Content: "content is required"})
				continue
			}

			answer, sessionID, err := assistant.Ask(r.Context(), req.OrgID, req.SessionID, req.Content)
			if err != nil {
				writeWS(conn, wsResponse{Type: "error", SessionID: sessionID, Content: err.Error()})
				continue
			}
			writeWS(conn, wsResponse{Type: "response", SessionID: sessionID, Content: answer})
		}
	}
}

func writeWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chat: websocket write: %v", err)
	}
}

func askHandler(assistant *Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			OrgID     string `json:"org_id"`
			SessionID string `json:"session_id"`
			Content   string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if body.Content == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
			return
		}

		answer, sessionID, err := assistant.Ask(r.Context(), body.OrgID, body.SessionID, body.Content)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"session_id": sessionID,
			"content":    answer,
		})
	}
}

func reviewHandler(assistant *Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DocumentType string `json:"document_type"`
			Content      string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
			return
		}
		if body.Content == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content is required"})
			return
		}

		review, err := assistant.ReviewDocument(r.Context(), body.DocumentType, body.Content)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"review": review})
	}
}

func historyHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := store.History(r.Context(), chi.URLParam(r, "session"), 0)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if messages == nil {
			messages = []StoredMessage{}
		}
		writeJSON(w, http.StatusOK, messages)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
