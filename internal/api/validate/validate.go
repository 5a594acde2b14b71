// Package validate checks incoming movie payloads before they reach the
// store.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/filmoteca/filmoteca/internal/model"
)

// MinYear is the year of the first film ever made.
const MinYear = 1888

// RequiredFields lists the payload fields that must be present on create
// and update.
var RequiredFields = []string{"title", "director", "year", "genre", "rating"}

// Number accepts a JSON number or a numeric string and remembers whether the
// field was present. Non-numeric input is recorded as a coercion failure
// instead of silently becoming zero; the range checks then reject it.
type Number struct {
	set   bool
	valid bool
	value float64
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || len(data) == 0 {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		raw = s
	}
	n.set = true
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	n.valid = true
	n.value = v
	return nil
}

// Present reports whether the field carried any value at all.
func (n Number) Present() bool { return n.set }

// Float64 returns the coerced value; ok is false when coercion failed.
func (n Number) Float64() (float64, bool) { return n.value, n.valid }

// Int returns the coerced value truncated to an integer.
func (n Number) Int() (int, bool) { return int(n.value), n.valid }

// MoviePayload is the request body for create and update.
type MoviePayload struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	Year        Number `json:"year"`
	Genre       string `json:"genre"`
	Rating      Number `json:"rating"`
	Description string `json:"description"`
}

// Error is a validation failure carrying the message returned to the client.
// Required is set only for the missing-fields case.
type Error struct {
	Message  string
	Required []string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return model.ErrValidation }

// Movie checks a candidate payload. now anchors the upper year bound, which
// is computed at validation time. The payload is never mutated; coercion to
// the storage types happens in the handler after validation passes.
func Movie(p *MoviePayload, now time.Time) error {
	if p.Title == "" || p.Director == "" || p.Genre == "" || !p.Year.Present() || !p.Rating.Present() {
		return &Error{Message: "Missing required fields", Required: RequiredFields}
	}

	maxYear := now.Year() + 5
	if y, ok := p.Year.Float64(); !ok || y < MinYear || y > float64(maxYear) {
		return &Error{Message: fmt.Sprintf("Year must be between %d and %d", MinYear, maxYear)}
	}

	if r, ok := p.Rating.Float64(); !ok || r < 0 || r > 10 {
		return &Error{Message: "Rating must be between 0 and 10"}
	}

	return nil
}
