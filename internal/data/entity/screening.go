package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScreeningState has a single transition: active -> deleted (terminal).
type ScreeningState string

const (
	ScreeningStateActive  ScreeningState = "active"
	ScreeningStateDeleted ScreeningState = "deleted"
)

// Screening is one scheduled showing of a movie in a room over
// [StartsAt, EndsAt). Price, Language, Format and Capacity are descriptive
// only and play no part in the admission rules.
type Screening struct {
	Base
	MovieID  uuid.UUID      `db:"movie_id"`
	Room     string         `db:"room"`
	StartsAt time.Time      `db:"starts_at"`
	EndsAt   time.Time      `db:"ends_at"`
	Price    *float64       `db:"price"`
	Language *string        `db:"language"`
	Format   *string        `db:"format"`
	Capacity *int           `db:"capacity"`
	State    ScreeningState `db:"state"`
}

// Overlaps reports whether the screening's interval intersects
// [start, end). Intervals are half-open, so boundary-touching
// screenings do not overlap.
func (s *Screening) Overlaps(start, end time.Time) bool {
	return start.Before(s.EndsAt) && s.StartsAt.Before(end)
}
