package request

import "time"

// ScreeningCandidate is one proposed screening. Timestamps are RFC 3339.
type ScreeningCandidate struct {
	Room     string    `json:"room" validate:"required,min=1,max=100"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required"`
	Price    *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Language *string   `json:"language,omitempty"`
	Format   *string   `json:"format,omitempty"`
	Capacity *int      `json:"capacity,omitempty" validate:"omitempty,gte=0"`
}

type ScreeningRequest struct {
	MovieID string `json:"movie_id" validate:"required,uuid"`
	ScreeningCandidate
}

// BulkScreeningRequest is the body of POST /api/movies/{id}/screenings:bulkCreate.
// An empty list is accepted and admits nothing.
type BulkScreeningRequest struct {
	Screenings []ScreeningCandidate `json:"screenings" validate:"dive"`
}

type ScreeningUpdateRequest struct {
	Room     *string    `json:"room,omitempty" validate:"omitempty,min=1,max=100"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Price    *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Language *string    `json:"language,omitempty"`
	Format   *string    `json:"format,omitempty"`
	Capacity *int       `json:"capacity,omitempty" validate:"omitempty,gte=0"`
}

// ScreeningListRequest carries the timetable listing filters, raw from the
// query string; the service parses and validates them.
type ScreeningListRequest struct {
	MovieID *string
	Room    *string
	From    *string
	To      *string
	State   *string
}
