package response

import (
	"time"

	"cinema-scheduler/internal/data/entity"
)

type ScreeningResponse struct {
	ID       string    `json:"id"`
	MovieID  string    `json:"movie_id"`
	Room     string    `json:"room"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Price    *float64  `json:"price,omitempty"`
	Language *string   `json:"language,omitempty"`
	Format   *string   `json:"format,omitempty"`
	Capacity *int      `json:"capacity,omitempty"`
	State    string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ScreeningToResponse(s *entity.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID:        s.ID.String(),
		MovieID:   s.MovieID.String(),
		Room:      s.Room,
		StartsAt:  s.StartsAt,
		EndsAt:    s.EndsAt,
		Price:     s.Price,
		Language:  s.Language,
		Format:    s.Format,
		Capacity:  s.Capacity,
		State:     string(s.State),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func ScreeningsToResponse(screenings []*entity.Screening) []ScreeningResponse {
	out := make([]ScreeningResponse, len(screenings))
	for i, s := range screenings {
		out[i] = ScreeningToResponse(s)
	}
	return out
}
