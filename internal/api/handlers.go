// Package api provides the HTTP transport for the movie collection service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/filmoteca/filmoteca/internal/api/respond"
	"github.com/filmoteca/filmoteca/internal/api/validate"
	"github.com/filmoteca/filmoteca/internal/model"
	"github.com/filmoteca/filmoteca/internal/movies"
)

// MovieHandler is a thin HTTP transport over the movie service.
type MovieHandler struct {
	svc *movies.Service
}

func NewMovieHandler(svc *movies.Service) *MovieHandler { return &MovieHandler{svc: svc} }

// ListMovies GET /api/movies?genre=&sort=
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.svc.List(r.Context(), q.Get("genre"), q.Get("sort"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteList(w, len(list), list)
}

// GetMovie GET /api/movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		respond.WriteNotFound(w, "Movie not found")
		return
	}
	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteData(w, http.StatusOK, m)
}

// CreateMovie POST /api/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Movie(p, time.Now()); err != nil {
		h.writeError(w, err)
		return
	}
	m, err := h.svc.Create(r.Context(), payloadToInput(p))
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteMessage(w, http.StatusCreated, "Movie added successfully", m)
}

// UpdateMovie PUT /api/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		respond.WriteNotFound(w, "Movie not found")
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Movie(p, time.Now()); err != nil {
		h.writeError(w, err)
		return
	}
	m, err := h.svc.Update(r.Context(), id, payloadToInput(p))
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Movie updated successfully", m)
}

// DeleteMovie DELETE /api/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		respond.WriteNotFound(w, "Movie not found")
		return
	}
	m, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteMessage(w, http.StatusOK, "Movie deleted successfully", m)
}

// MovieStats GET /api/movies/stats/summary
func (h *MovieHandler) MovieStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteData(w, http.StatusOK, stats)
}

// movieID parses the id path parameter. A non-numeric id identifies no
// movie, which is a not-found rather than a bad request.
func movieID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodePayload(r *http.Request) (*validate.MoviePayload, error) {
	var p validate.MoviePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func payloadToInput(p *validate.MoviePayload) movies.Input {
	year, _ := p.Year.Int()
	rating, _ := p.Rating.Float64()
	return movies.Input{
		Title:       p.Title,
		Director:    p.Director,
		Year:        year,
		Genre:       p.Genre,
		Rating:      rating,
		Description: p.Description,
	}
}

// writeError maps domain errors to HTTP envelopes. Storage failures stay
// generic so internal detail never leaks to the client.
func (h *MovieHandler) writeError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		if len(verr.Required) > 0 {
			respond.WriteMissingFields(w, verr.Required)
			return
		}
		respond.WriteBadRequest(w, verr.Message)
	case model.IsValidation(err):
		respond.WriteBadRequest(w, err.Error())
	case model.IsNotFound(err):
		respond.WriteNotFound(w, "Movie not found")
	default:
		log.Error().Err(err).Msg("request failed")
		respond.WriteInternalError(w, "Internal server error")
	}
}
