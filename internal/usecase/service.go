package usecase

import (
	"cinema-scheduler/internal/data/repository"
	"cinema-scheduler/pkg/cache"

	"go.uber.org/zap"
)

type Service struct {
	Movie     MovieService
	Screening ScreeningService
}

func NewService(repo *repository.Repository, cache *cache.Cache, log *zap.Logger) *Service {
	return &Service{
		Movie:     NewMovieService(repo, cache, log),
		Screening: NewScreeningService(repo, log),
	}
}
