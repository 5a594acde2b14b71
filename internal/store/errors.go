package store

import (
	"fmt"

	"github.com/filmoteca/filmoteca/internal/model"
)

// wrapStorage tags err with model.ErrStorage so callers can classify it
// without knowing which backend produced it.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", model.ErrStorage, op, err)
}
