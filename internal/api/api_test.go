package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteca/filmoteca/internal/api/requestlog"
	"github.com/filmoteca/filmoteca/internal/model"
	"github.com/filmoteca/filmoteca/internal/movies"
	"github.com/filmoteca/filmoteca/internal/store"
)

type envelope struct {
	Success  bool            `json:"success"`
	Count    *int            `json:"count"`
	Message  string          `json:"message"`
	Required []string        `json:"required"`
	Data     json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.NewMemoryStore()
	srv := httptest.NewServer(NewRouter(movies.NewService(st), st))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, *envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, &env
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Heat",
		"director":    "Michael Mann",
		"year":        1995,
		"genre":       "Crime",
		"rating":      8.3,
		"description": "Cat and mouse in LA.",
	}
}

func TestListMovies_EmptyCollection(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/movies", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 0, *env.Count)
	assert.Equal(t, "[]", string(bytes.TrimSpace(env.Data)))
}

func TestCreateMovie(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/movies", validBody())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "Movie added successfully", env.Message)

	var m model.Movie
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, "Heat", m.Title)
	assert.Equal(t, 1995, m.Year)
	assert.Equal(t, 8.3, m.Rating)
}

func TestCreateMovie_MissingRating(t *testing.T) {
	srv := newTestServer(t)

	body := validBody()
	delete(body, "rating")
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/movies", body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Missing required fields", env.Message)
	assert.Equal(t, []string{"title", "director", "year", "genre", "rating"}, env.Required)
}

func TestCreateMovie_YearOutOfRange(t *testing.T) {
	srv := newTestServer(t)

	body := validBody()
	body["year"] = 1700
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/movies", body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("Year must be between 1888 and %d", time.Now().Year()+5), env.Message)
}

func TestCreateMovie_RatingOutOfRange(t *testing.T) {
	srv := newTestServer(t)

	body := validBody()
	body["rating"] = 11
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/movies", body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Rating must be between 0 and 10", env.Message)
}

func TestCreateMovie_InvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/movies", "application/json", bytes.NewReader([]byte("{nope")))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMovie_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/movies/999999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Movie not found", env.Message)
}

func TestGetMovie_NonNumericID(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/movies/abc", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Movie not found", env.Message)
}

func TestUpdateMovie(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/api/movies", validBody())

	body := validBody()
	body["title"] = "Heat (Director's Cut)"
	body["rating"] = 9
	delete(body, "description")
	resp, env := doJSON(t, http.MethodPut, srv.URL+"/api/movies/1", body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Movie updated successfully", env.Message)

	var m model.Movie
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, "Heat (Director's Cut)", m.Title)
	assert.Equal(t, float64(9), m.Rating)
	// full replace: omitted description is cleared
	assert.Empty(t, m.Description)
}

func TestUpdateMovie_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodPut, srv.URL+"/api/movies/7", validBody())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Movie not found", env.Message)
}

func TestDeleteMovie(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/api/movies", validBody())

	resp, env := doJSON(t, http.MethodDelete, srv.URL+"/api/movies/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Movie deleted successfully", env.Message)

	var m model.Movie
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, "Heat", m.Title)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/movies/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteMovie_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodDelete, srv.URL+"/api/movies/12", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Movie not found", env.Message)
}

func TestListMovies_FilterAndSort(t *testing.T) {
	srv := newTestServer(t)

	post := func(title, genre string, year int) {
		body := validBody()
		body["title"] = title
		body["genre"] = genre
		body["year"] = year
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/movies", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	post("Alien", "Sci-Fi", 1979)
	post("Heat", "Crime", 1995)
	post("Arrival", "sci-fi", 2016)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/movies?genre=SCI-FI&sort=year", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)

	var list []model.Movie
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Arrival", list[0].Title)
	assert.Equal(t, "Alien", list[1].Title)
}

func TestStats(t *testing.T) {
	srv := newTestServer(t)

	// empty collection first
	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/movies/stats/summary", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		TotalMovies   int          `json:"totalMovies"`
		AverageRating json.Number  `json:"averageRating"`
		Genres        []string     `json:"genres"`
		LatestMovie   *model.Movie `json:"latestMovie"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 0, stats.TotalMovies)
	assert.Equal(t, "0", stats.AverageRating.String())
	assert.Equal(t, []string{}, stats.Genres)
	assert.Nil(t, stats.LatestMovie)

	doJSON(t, http.MethodPost, srv.URL+"/api/movies", validBody())

	_, env = doJSON(t, http.MethodGet, srv.URL+"/api/movies/stats/summary", nil)
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalMovies)
	assert.Equal(t, "8.30", stats.AverageRating.String())
	assert.Equal(t, []string{"Crime"}, stats.Genres)
	require.NotNil(t, stats.LatestMovie)
	assert.Equal(t, "Heat", stats.LatestMovie.Title)
}

func TestCatalog(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message   string `json:"message"`
		Endpoints struct {
			Movies map[string]string `json:"movies"`
			Stats  string            `json:"stats"`
			Health string            `json:"health"`
		} `json:"endpoints"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Message)
	assert.Len(t, body.Endpoints.Movies, 5)
	assert.Equal(t, "GET /api/movies/stats/summary", body.Endpoints.Stats)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/movies")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.NotEmpty(t, resp.Header.Get(requestlog.Header))
}

func TestWebUIServed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "moviesGrid")
}
