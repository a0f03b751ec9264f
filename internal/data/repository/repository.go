package repository

import (
	"cinema-scheduler/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie     MovieRepository
	Screening ScreeningRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:     NewMovieRepository(db, log),
		Screening: NewScreeningRepository(db, log),
	}
}
