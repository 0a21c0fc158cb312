package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

const sessionHeader = "X-Session-Id"

type prepareRequest struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// sessionID reads the caller's session id, minting one when absent. The
// id is always echoed back so the client can carry it forward.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		id = uuid.New().String()
	}
	w.Header().Set(sessionHeader, id)
	return id
}

func (s *Server) handlePrepare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req prepareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required in the request body.")
		return
	}

	sid := sessionID(w, r)
	if err := s.app.PrepareSite(r.Context(), sid, req.URL); err != nil {
		log.Error().Err(err).Str("url", req.URL).Msg("Prepare failed")
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Please provide a valid http(s) URL.")
		case errors.Is(err, models.ErrEmptyContent):
			writeError(w, http.StatusUnprocessableEntity, "The site did not yield any readable text.")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to prepare the site.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"siteUrl": req.URL})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Message is required in the request body.")
		return
	}

	sid := sessionID(w, r)
	answer, err := s.app.Answer(r.Context(), sid, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Please ask a valid question.")
		case errors.Is(err, models.ErrNotReady):
			writeError(w, http.StatusBadRequest, "Chatbot is not ready. Please initialize a site first.")
		default:
			log.Error().Err(err).Msg("Chat failed")
			writeError(w, http.StatusInternalServerError, "Failed to get response from chatbot.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"response": answer})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	sid := sessionID(w, r)
	state, siteURL := s.app.Status(sid)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "Server is running",
		"isReady": state == models.Ready,
		"siteUrl": siteURL,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
