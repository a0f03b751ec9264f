package usecase

import (
	"context"
	"fmt"
	"sync"

	"cinema-scheduler/internal/data/entity"
	"cinema-scheduler/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes so the engine can be exercised without a
// database. Both fakes guard their maps with a mutex because the concurrency
// tests hit them from multiple goroutines.

type fakeMovieRepo struct {
	mu         sync.Mutex
	movies     map[uuid.UUID]*entity.Movie
	screenings *fakeScreeningRepo
}

func newFakeMovieRepo(screenings *fakeScreeningRepo) *fakeMovieRepo {
	return &fakeMovieRepo{
		movies:     make(map[uuid.UUID]*entity.Movie),
		screenings: screenings,
	}
}

func cloneMovie(m *entity.Movie) *entity.Movie {
	c := *m
	return &c
}

func (f *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movies[movie.ID] = cloneMovie(movie)
	return nil
}

func (f *fakeMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	movie, ok := f.movies[id]
	if !ok {
		return nil, nil
	}
	return cloneMovie(movie), nil
}

func (f *fakeMovieRepo) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, movie := range f.movies {
		if movie.Title == title && movie.State != entity.MovieStateDeleted {
			return cloneMovie(movie), nil
		}
	}
	return nil, nil
}

func (f *fakeMovieRepo) FindAll(ctx context.Context, offset, limit int, filter repository.MovieFilter) ([]*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Movie
	for _, movie := range f.movies {
		if movieMatches(movie, filter) {
			out = append(out, cloneMovie(movie))
		}
	}
	return out, nil
}

func (f *fakeMovieRepo) CountAll(ctx context.Context, filter repository.MovieFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, movie := range f.movies {
		if movieMatches(movie, filter) {
			total++
		}
	}
	return total, nil
}

func movieMatches(movie *entity.Movie, filter repository.MovieFilter) bool {
	if filter.State != nil {
		return movie.State == *filter.State
	}
	return movie.State != entity.MovieStateDeleted
}

func (f *fakeMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.movies[movie.ID]
	if !ok || existing.State == entity.MovieStateDeleted {
		return fmt.Errorf("movie %s not found or deleted", movie.ID.String())
	}
	f.movies[movie.ID] = cloneMovie(movie)
	return nil
}

func (f *fakeMovieRepo) SoftDeleteWithScreenings(ctx context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	movie, ok := f.movies[id]
	if !ok || movie.State == entity.MovieStateDeleted {
		return 0, fmt.Errorf("movie %s not found or deleted", id.String())
	}
	movie.State = entity.MovieStateDeleted
	return f.screenings.cascadeDelete(id), nil
}

type fakeScreeningRepo struct {
	mu         sync.Mutex
	screenings map[uuid.UUID]*entity.Screening
}

func newFakeScreeningRepo() *fakeScreeningRepo {
	return &fakeScreeningRepo{screenings: make(map[uuid.UUID]*entity.Screening)}
}

func cloneScreening(s *entity.Screening) *entity.Screening {
	c := *s
	return &c
}

func (f *fakeScreeningRepo) cascadeDelete(movieID uuid.UUID) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, s := range f.screenings {
		if s.MovieID == movieID && s.State == entity.ScreeningStateActive {
			s.State = entity.ScreeningStateDeleted
			count++
		}
	}
	return count
}

func (f *fakeScreeningRepo) Create(ctx context.Context, screening *entity.Screening) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screenings[screening.ID] = cloneScreening(screening)
	return nil
}

func (f *fakeScreeningRepo) CreateBatch(ctx context.Context, screenings []*entity.Screening) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, screening := range screenings {
		f.screenings[screening.ID] = cloneScreening(screening)
	}
	return nil
}

func (f *fakeScreeningRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	screening, ok := f.screenings[id]
	if !ok {
		return nil, nil
	}
	return cloneScreening(screening), nil
}

func (f *fakeScreeningRepo) FindAll(ctx context.Context, filter repository.ScreeningFilter) ([]*entity.Screening, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Screening
	for _, s := range f.screenings {
		if filter.MovieID != nil && s.MovieID != *filter.MovieID {
			continue
		}
		if filter.Room != nil && s.Room != *filter.Room {
			continue
		}
		if filter.From != nil && s.StartsAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.EndsAt.After(*filter.To) {
			continue
		}
		if filter.State != nil {
			if s.State != *filter.State {
				continue
			}
		} else if s.State == entity.ScreeningStateDeleted {
			continue
		}
		out = append(out, cloneScreening(s))
	}
	return out, nil
}

func (f *fakeScreeningRepo) FindActiveByRoom(ctx context.Context, room string, exclude *uuid.UUID) ([]*entity.Screening, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Screening
	for _, s := range f.screenings {
		if s.Room != room || s.State != entity.ScreeningStateActive {
			continue
		}
		if exclude != nil && s.ID == *exclude {
			continue
		}
		out = append(out, cloneScreening(s))
	}
	return out, nil
}

func (f *fakeScreeningRepo) Update(ctx context.Context, screening *entity.Screening) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.screenings[screening.ID]
	if !ok || existing.State != entity.ScreeningStateActive {
		return fmt.Errorf("screening %s not found or deleted", screening.ID.String())
	}
	f.screenings[screening.ID] = cloneScreening(screening)
	return nil
}

func (f *fakeScreeningRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	screening, ok := f.screenings[id]
	if !ok || screening.State != entity.ScreeningStateActive {
		return false, nil
	}
	screening.State = entity.ScreeningStateDeleted
	return true, nil
}

func (f *fakeScreeningRepo) stateOf(id uuid.UUID) entity.ScreeningState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.screenings[id].State
}

func (f *fakeScreeningRepo) activeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, s := range f.screenings {
		if s.State == entity.ScreeningStateActive {
			count++
		}
	}
	return count
}
