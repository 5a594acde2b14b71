package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/filmoteca/filmoteca/internal/api/recovery"
	"github.com/filmoteca/filmoteca/internal/api/requestlog"
	"github.com/filmoteca/filmoteca/internal/api/respond"
	"github.com/filmoteca/filmoteca/internal/movies"
	"github.com/filmoteca/filmoteca/internal/store"
)

// NewRouter wires middleware, the API routes, and the embedded web UI.
func NewRouter(svc *movies.Service, st store.Store) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(requestlog.Middleware)

	movieHandler := NewMovieHandler(svc)
	healthHandler := NewHealthHandler(st)

	router.HandleFunc("/api", Catalog).Methods("GET")
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Movie endpoints. The stats path is registered before the id path so
	// "stats" is never parsed as an id.
	router.HandleFunc("/api/movies", movieHandler.ListMovies).Methods("GET")
	router.HandleFunc("/api/movies/stats/summary", movieHandler.MovieStats).Methods("GET")
	router.HandleFunc("/api/movies/{id}", movieHandler.GetMovie).Methods("GET")
	router.HandleFunc("/api/movies", movieHandler.CreateMovie).Methods("POST")
	router.HandleFunc("/api/movies/{id}", movieHandler.UpdateMovie).Methods("PUT")
	router.HandleFunc("/api/movies/{id}", movieHandler.DeleteMovie).Methods("DELETE")

	// Web UI
	router.PathPrefix("/").Handler(StaticHandler()).Methods("GET")

	return router
}

// Catalog GET /api describes the endpoint surface.
func Catalog(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Welcome to the Filmoteca movie collection API",
		"endpoints": map[string]interface{}{
			"movies": map[string]string{
				"getAll":  "GET /api/movies",
				"getById": "GET /api/movies/:id",
				"add":     "POST /api/movies",
				"update":  "PUT /api/movies/:id",
				"delete":  "DELETE /api/movies/:id",
			},
			"stats":  "GET /api/movies/stats/summary",
			"health": "GET /api/health",
		},
	})
}
