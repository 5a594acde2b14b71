// Package client provides a typed Go client for the filmoteca HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// Movie mirrors the wire shape of one collection record.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	Year        int     `json:"year"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description,omitempty"`
}

// MovieInput carries the editable fields for create and update.
type MovieInput struct {
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	Year        int     `json:"year"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description,omitempty"`
}

// StatsSummary mirrors the stats endpoint payload.
type StatsSummary struct {
	TotalMovies   int         `json:"totalMovies"`
	AverageRating json.Number `json:"averageRating"`
	Genres        []string    `json:"genres"`
	LatestMovie   *Movie      `json:"latestMovie,omitempty"`
}

// ListOptions are the query parameters of the list endpoint.
type ListOptions struct {
	Genre string
	Sort  string
}

// APIError is a failure envelope returned by the service.
type APIError struct {
	StatusCode int
	Message    string
	Required   []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// envelope is the wire wrapper around every response.
type envelope struct {
	Success  bool            `json:"success"`
	Count    int             `json:"count"`
	Message  string          `json:"message"`
	Required []string        `json:"required"`
	Data     json.RawMessage `json:"data"`
}

// Client talks to a filmoteca server.
type Client struct {
	http *resty.Client
}

// New creates a client for the service at baseURL, e.g. "http://localhost:3000".
func New(baseURL string) *Client {
	return &Client{http: resty.New().SetBaseURL(baseURL)}
}

// ListMovies returns the collection, optionally filtered and sorted.
func (c *Client) ListMovies(ctx context.Context, opts *ListOptions) ([]Movie, error) {
	req := c.http.R().SetContext(ctx)
	if opts != nil {
		if opts.Genre != "" {
			req.SetQueryParam("genre", opts.Genre)
		}
		if opts.Sort != "" {
			req.SetQueryParam("sort", opts.Sort)
		}
	}
	resp, err := req.Get("/api/movies")
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	var out []Movie
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	return out, nil
}

// GetMovie returns one movie by id.
func (c *Client) GetMovie(ctx context.Context, id int) (*Movie, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/movies/" + strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	return decodeMovie(resp)
}

// CreateMovie adds a movie and returns the stored record with its id.
func (c *Client) CreateMovie(ctx context.Context, in MovieInput) (*Movie, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(in).Post("/api/movies")
	if err != nil {
		return nil, err
	}
	return decodeMovie(resp)
}

// UpdateMovie replaces every editable field of the movie with the given id.
func (c *Client) UpdateMovie(ctx context.Context, id int, in MovieInput) (*Movie, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(in).Put("/api/movies/" + strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	return decodeMovie(resp)
}

// DeleteMovie removes the movie with the given id and returns it.
func (c *Client) DeleteMovie(ctx context.Context, id int) (*Movie, error) {
	resp, err := c.http.R().SetContext(ctx).Delete("/api/movies/" + strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	return decodeMovie(resp)
}

// Stats returns the collection summary.
func (c *Client) Stats(ctx context.Context) (*StatsSummary, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/movies/stats/summary")
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	var out StatsSummary
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &out, nil
}

// Health reports whether the service and its store are up.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return err
	}
	_, err = decodeEnvelope(resp)
	return err
}

func decodeEnvelope(resp *resty.Response) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    env.Message,
			Required:   env.Required,
		}
	}
	return &env, nil
}

func decodeMovie(resp *resty.Response) (*Movie, error) {
	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	var m Movie
	if err := json.Unmarshal(env.Data, &m); err != nil {
		return nil, fmt.Errorf("decode movie: %w", err)
	}
	return &m, nil
}
