package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/abhisek/quizbuddy/internal/catalog"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/supply"
)

// GenerateRequest is the body of POST /api/generate-questions.
type GenerateRequest struct {
	Category string `json:"category"`
	Topic    string `json:"topic"`
}

// GenerateResponse is the success body of POST /api/generate-questions.
type GenerateResponse struct {
	Questions []quizgen.Question `json:"questions"`
	Source    supply.Source      `json:"source"`
}

// TopUpRequest is the body of POST /api/top-up. Remaining holds the
// questions of the current round the learner has not answered yet.
type TopUpRequest struct {
	Category  string             `json:"category"`
	Remaining []quizgen.Question `json:"remaining"`
}

// TopUpResponse is the success body of POST /api/top-up.
type TopUpResponse struct {
	Questions []quizgen.Question `json:"questions"`
}

// maxBodyBytes caps request bodies. A full round of questions is a few KB.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

func (s *Server) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "category is required"})
		return
	}

	res, err := s.supplier.Supply(r.Context(), supply.Request{
		Category: req.Category,
		Topic:    strings.TrimSpace(req.Topic),
	})
	if err != nil {
		var rl *supply.RateLimitedError
		if errors.As(err, &rl) {
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
				Error:      "Rate limit exceeded",
				Details:    "Too many requests. Please try again in a moment or use static questions.",
				RetryAfter: int(rl.RetryAfter.Seconds()),
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to generate questions",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{Questions: res.Questions, Source: res.Source})
}

func (s *Server) TopUp(w http.ResponseWriter, r *http.Request) {
	var req TopUpRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "category is required"})
		return
	}

	qs := s.supplier.TopUp(r.Context(), req.Category, req.Remaining)
	if qs == nil {
		qs = []quizgen.Question{}
	}
	writeJSON(w, http.StatusOK, TopUpResponse{Questions: qs})
}

func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats := s.categories.Categories()
	if cats == nil {
		cats = []catalog.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (s *Server) PoolStatus(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"size":     s.pool.Size(r.Context(), category),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
