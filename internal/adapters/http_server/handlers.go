// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"review_insights/internal/app"
	"review_insights/internal/domain"
)

const maxBodyBytes = 64 << 10

type Handlers struct {
	Analysis  *app.AnalysisService
	Analytics *app.AnalyticsService
	Reviews   *app.ReviewService
	Auth      *Authenticator
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Field  string `json:"field,omitempty"`
}

type envelope struct {
	Success  bool   `json:"success"`
	Category string `json:"category,omitempty"`
	Data     any    `json:"data"`
}

type reviewDTO struct {
	ID         string                  `json:"id"`
	Restaurant string                  `json:"restaurant"`
	User       string                  `json:"user"`
	Rating     float64                 `json:"rating"`
	Text       string                  `json:"text"`
	ReviewDate time.Time               `json:"reviewDate"`
	Sentiment  domain.SentimentProfile `json:"sentiment"`
	Visibility domain.Visibility       `json:"visibility"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

func toDTO(r domain.Review) reviewDTO {
	return reviewDTO{
		ID:         r.ID,
		Restaurant: r.RestaurantID,
		User:       r.UserID,
		Rating:     r.Rating,
		Text:       r.Text,
		ReviewDate: r.ReviewDate,
		Sentiment:  r.Sentiment,
		Visibility: r.Visibility,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Use(h.Auth.Authenticate)

		r.Route("/analysis", func(r chi.Router) {
			r.Get("/restaurant/{id}/sentiment", h.getSentiment)
			r.With(RequireRole(domain.RoleOwner, domain.RoleAdmin)).
				Get("/restaurant/{id}/improvements", h.getImprovements)
			r.Get("/restaurants/compare", h.compare)
			r.Post("/preview", h.preview)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.With(RequireAuth).Post("/", h.createReview)
			r.Get("/{id}", h.getReview)
			r.With(RequireAuth).Put("/{id}", h.updateReview)
			r.With(RequireAuth).Delete("/{id}", h.deleteReview)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblemBody(w, problem{Type: "about:blank", Title: "Invalid input", Status: http.StatusBadRequest, Detail: ve.Message, Field: ve.Field})
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", "not allowed to access this resource")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrDuplicateReview):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

// writeCacheable answers GETs with a weak ETag and honours If-None-Match.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

// ---- analysis ----

func (h *Handlers) getSentiment(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Analytics.Sentiment(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, envelope{Success: true, Data: snap})
}

func (h *Handlers) getImprovements(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Analytics.Improvements(r.Context(), ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: rep})
}

func (h *Handlers) compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, by, err := h.Analytics.Compare(r.Context(), q.Get("ids"), q.Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, envelope{Success: true, Category: by, Data: out})
}

func (h *Handlers) preview(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	out, err := h.Analysis.Preview(r.Context(), in.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: out})
}

// ---- reviews ----

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var in domain.NewReview
	if !decodeBody(w, r, &in) {
		return
	}
	rev, err := h.Reviews.Create(r.Context(), ActorFrom(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: toDTO(rev)})
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	rev, err := h.Reviews.Get(r.Context(), ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: toDTO(rev)})
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	var p domain.ReviewPatch
	if !decodeBody(w, r, &p) {
		return
	}
	rev, err := h.Reviews.Update(r.Context(), ActorFrom(r.Context()), chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: toDTO(rev)})
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.Delete(r.Context(), ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: struct{}{}})
}
