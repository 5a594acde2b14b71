package model

// Movie is one record in the collection.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	Year        int     `json:"year"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description,omitempty"`
}

// Collection is the persisted document holding every movie in insertion order.
// Appends go to the end, deletes remove in place, updates keep position.
type Collection struct {
	Movies []Movie `json:"movies"`
}

// Clone returns a deep copy so callers can mutate freely.
func (c *Collection) Clone() *Collection {
	out := &Collection{Movies: make([]Movie, len(c.Movies))}
	copy(out.Movies, c.Movies)
	return out
}
