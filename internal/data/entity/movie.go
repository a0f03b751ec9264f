package entity

import (
	"time"
)

// MovieState is the lifecycle state of a catalog entry. Deleted is terminal;
// active and inactive toggle freely and never touch screenings.
type MovieState string

const (
	MovieStateActive   MovieState = "active"
	MovieStateInactive MovieState = "inactive"
	MovieStateDeleted  MovieState = "deleted"
)

type Movie struct {
	Base
	Title           string     `db:"title"`
	Synopsis        *string    `db:"synopsis"`
	DurationMinutes *int       `db:"duration_minutes"`
	Classification  *string    `db:"classification"`
	Genres          []string   `db:"genres"`
	ReleaseDate     *time.Time `db:"release_date"`
	State           MovieState `db:"state"`
}

// Schedulable reports whether new screenings may be admitted for the movie.
// Inactive and deleted movies refuse admission; existing screenings are
// unaffected by an active/inactive toggle.
func (m *Movie) Schedulable() bool {
	return m.State == MovieStateActive
}
