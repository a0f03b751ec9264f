package response

import (
	"time"

	"cinema-scheduler/internal/data/entity"
)

type MovieResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Synopsis        *string   `json:"synopsis,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Classification  *string   `json:"classification,omitempty"`
	Genres          []string  `json:"genres,omitempty"`
	ReleaseDate     *string   `json:"release_date,omitempty"`
	State           string    `json:"state"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	var releaseDate *string
	if movie.ReleaseDate != nil {
		formatted := movie.ReleaseDate.Format("2006-01-02")
		releaseDate = &formatted
	}

	return MovieResponse{
		ID:              movie.ID.String(),
		Title:           movie.Title,
		Synopsis:        movie.Synopsis,
		DurationMinutes: movie.DurationMinutes,
		Classification:  movie.Classification,
		Genres:          movie.Genres,
		ReleaseDate:     releaseDate,
		State:           string(movie.State),
		CreatedAt:       movie.CreatedAt,
		UpdatedAt:       movie.UpdatedAt,
	}
}
