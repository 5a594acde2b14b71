// Package movies contains the collection operations and the pure helpers
// they are built from.
package movies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/filmoteca/filmoteca/internal/model"
)

// DefaultTopRatedLimit is used by TopRated when the caller passes limit <= 0.
const DefaultTopRatedLimit = 5

// FilterByGenre keeps the movies whose genre matches case-insensitively.
// Order among matches is preserved.
func FilterByGenre(movies []model.Movie, genre string) []model.Movie {
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if strings.EqualFold(m.Genre, genre) {
			out = append(out, m)
		}
	}
	return out
}

// SortByYear returns a new slice ordered by year descending. The sort is
// stable: equal years keep their relative input order.
func SortByYear(movies []model.Movie) []model.Movie {
	out := make([]model.Movie, len(movies))
	copy(out, movies)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// AverageRating returns the mean rating formatted to two decimal places,
// or "0" for an empty list.
func AverageRating(movies []model.Movie) string {
	if len(movies) == 0 {
		return "0"
	}
	var sum float64
	for _, m := range movies {
		sum += m.Rating
	}
	return fmt.Sprintf("%.2f", sum/float64(len(movies)))
}

// FilterByDirector keeps the movies whose director contains the given
// substring, case-insensitively.
func FilterByDirector(movies []model.Movie, director string) []model.Movie {
	needle := strings.ToLower(director)
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Director), needle) {
			out = append(out, m)
		}
	}
	return out
}

// TopRated returns up to limit movies ordered by rating descending (stable).
func TopRated(movies []model.Movie, limit int) []model.Movie {
	if limit <= 0 {
		limit = DefaultTopRatedLimit
	}
	out := make([]model.Movie, len(movies))
	copy(out, movies)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DistinctGenres returns the genres in first-seen order. Genres are
// case-sensitive here, matching how they are stored.
func DistinctGenres(movies []model.Movie) []string {
	seen := make(map[string]bool, len(movies))
	out := []string{}
	for _, m := range movies {
		if !seen[m.Genre] {
			seen[m.Genre] = true
			out = append(out, m.Genre)
		}
	}
	return out
}

// LatestMovie returns the movie with the highest year, or nil for an empty
// list. Ties go to the earliest stored record: the scan only replaces the
// candidate on a strictly greater year.
func LatestMovie(movies []model.Movie) *model.Movie {
	if len(movies) == 0 {
		return nil
	}
	latest := movies[0]
	for _, m := range movies[1:] {
		if m.Year > latest.Year {
			latest = m
		}
	}
	return &latest
}
