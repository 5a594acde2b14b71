package movies

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/filmoteca/filmoteca/internal/model"
	"github.com/filmoteca/filmoteca/internal/store"
)

// SortParamYear is the only value of the list sort parameter that has an
// effect: year descending.
const SortParamYear = "year"

// Input carries the editable fields of a movie, already coerced to their
// storage types. The id is never part of the input.
type Input struct {
	Title       string
	Director    string
	Year        int
	Genre       string
	Rating      float64
	Description string
}

// StatsSummary is the payload of the stats endpoint. AverageRating is a
// json.Number so the wire keeps the two-decimal form. LatestMovie is omitted
// when the collection is empty.
type StatsSummary struct {
	TotalMovies   int          `json:"totalMovies"`
	AverageRating json.Number  `json:"averageRating"`
	Genres        []string     `json:"genres"`
	LatestMovie   *model.Movie `json:"latestMovie,omitempty"`
}

// Service implements the collection operations over a document store.
//
// Every operation loads the document fresh and mutating operations write the
// whole document back. The mutex serializes read-modify-write cycles within
// this process; the store itself makes no cross-process guarantee.
type Service struct {
	store store.Store
	mu    sync.Mutex
}

// NewService creates a new movie service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns the collection, optionally filtered by genre and sorted by
// year descending when sortBy is "year". The filter runs before the sort.
func (s *Service) List(ctx context.Context, genre, sortBy string) ([]model.Movie, error) {
	doc, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	list := doc.Movies
	if genre != "" {
		list = FilterByGenre(list, genre)
	}
	if sortBy == SortParamYear {
		list = SortByYear(list)
	}
	if list == nil {
		list = []model.Movie{}
	}
	return list, nil
}

// Get returns the movie with the given id.
func (s *Service) Get(ctx context.Context, id int) (*model.Movie, error) {
	doc, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Movies {
		if doc.Movies[i].ID == id {
			m := doc.Movies[i]
			return &m, nil
		}
	}
	return nil, fmt.Errorf("%w: movie %d", model.ErrNotFound, id)
}

// Create appends a new movie. The id is max(existing ids)+1, or 1 for an
// empty collection.
func (s *Service) Create(ctx context.Context, in Input) (*model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	nextID := 1
	for _, m := range doc.Movies {
		if m.ID >= nextID {
			nextID = m.ID + 1
		}
	}

	movie := model.Movie{
		ID:          nextID,
		Title:       in.Title,
		Director:    in.Director,
		Year:        in.Year,
		Genre:       in.Genre,
		Rating:      in.Rating,
		Description: in.Description,
	}
	doc.Movies = append(doc.Movies, movie)

	if err := s.store.WriteAll(ctx, doc); err != nil {
		return nil, err
	}
	log.Info().Int("id", movie.ID).Str("title", movie.Title).Msg("Movie added")
	return &movie, nil
}

// Update replaces every editable field of the movie with the given id.
// The id and the record's position in the document are preserved.
func (s *Service) Update(ctx context.Context, id int, in Input) (*model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexByID(doc.Movies, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: movie %d", model.ErrNotFound, id)
	}

	doc.Movies[idx] = model.Movie{
		ID:          id,
		Title:       in.Title,
		Director:    in.Director,
		Year:        in.Year,
		Genre:       in.Genre,
		Rating:      in.Rating,
		Description: in.Description,
	}

	if err := s.store.WriteAll(ctx, doc); err != nil {
		return nil, err
	}
	log.Info().Int("id", id).Msg("Movie updated")
	updated := doc.Movies[idx]
	return &updated, nil
}

// Delete removes the movie with the given id in place and returns it.
// When the id does not exist no write is issued.
func (s *Service) Delete(ctx context.Context, id int) (*model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexByID(doc.Movies, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: movie %d", model.ErrNotFound, id)
	}

	removed := doc.Movies[idx]
	doc.Movies = append(doc.Movies[:idx], doc.Movies[idx+1:]...)

	if err := s.store.WriteAll(ctx, doc); err != nil {
		return nil, err
	}
	log.Info().Int("id", id).Str("title", removed.Title).Msg("Movie deleted")
	return &removed, nil
}

// Stats summarizes the collection. An empty collection yields zero counts,
// an empty genre list, and no latest movie.
func (s *Service) Stats(ctx context.Context) (*StatsSummary, error) {
	doc, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsSummary{
		TotalMovies:   len(doc.Movies),
		AverageRating: json.Number(AverageRating(doc.Movies)),
		Genres:        DistinctGenres(doc.Movies),
		LatestMovie:   LatestMovie(doc.Movies),
	}, nil
}

func indexByID(movies []model.Movie, id int) int {
	for i := range movies {
		if movies[i].ID == id {
			return i
		}
	}
	return -1
}
