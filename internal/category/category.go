// Package category exposes the financial categories used to classify
// transactions. The set is reference data seeded by migration; this core
// only reads it.
package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("category not found")

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
