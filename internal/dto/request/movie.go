package request

type MovieRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=255"`
	Synopsis        *string  `json:"synopsis,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	Classification  *string  `json:"classification,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	ReleaseDate     *string  `json:"release_date,omitempty"`
}

type MovieUpdateRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Synopsis        *string  `json:"synopsis,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	Classification  *string  `json:"classification,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	ReleaseDate     *string  `json:"release_date,omitempty"`
	// State toggles active <-> inactive only. Deletion goes through
	// DELETE /api/movies/{id} so the cascade always runs.
	State *string `json:"state,omitempty" validate:"omitempty,oneof=active inactive"`
}

// MovieListRequest carries the catalog listing filters.
type MovieListRequest struct {
	Search *string
	Genre  *string
	State  *string
}
