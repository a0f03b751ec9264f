package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-scheduler/internal/data/entity"
	"cinema-scheduler/internal/data/repository"
	"cinema-scheduler/internal/dto/request"
	"cinema-scheduler/internal/dto/response"
	"cinema-scheduler/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, page *request.PaginatedRequest, filter request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	// DeleteMovie soft-deletes the movie and cascades to its active
	// screenings in one unit of work. Deleting an already-deleted movie is a
	// no-op; ErrNotFound means the id never existed.
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewMovieService(repo *repository.Repository, cache *cache.Cache, log *zap.Logger) MovieService {
	return &movieService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "movie")),
	}
}

func movieCacheKey(id uuid.UUID) string {
	return "movie:" + id.String()
}

func parseMovieID(movieID string) (uuid.UUID, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: movie id must be a UUID", ErrInvalidInput)
	}
	return id, nil
}

func (s *movieService) GetMovies(ctx context.Context, page *request.PaginatedRequest, filter request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	repoFilter := repository.MovieFilter{
		Search: filter.Search,
		Genre:  filter.Genre,
	}

	if filter.State != nil && *filter.State != "" {
		switch state := entity.MovieState(*filter.State); state {
		case entity.MovieStateActive, entity.MovieStateInactive, entity.MovieStateDeleted:
			repoFilter.State = &state
		default:
			return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidInput, *filter.State)
		}
	}

	movies, err := s.repo.Movie.FindAll(ctx, page.Offset(), page.Limit(), repoFilter)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", page.Page),
	)

	return response.NewPaginatedResponse(movieResponses, page.Page, page.Limit(), total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	var cached response.MovieResponse
	if s.cache.Get(ctx, movieCacheKey(id), &cached) {
		return &cached, nil
	}

	// Deleted movies stay retrievable by id for audit.
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	movieResp := response.MovieToResponse(movie)
	s.cache.Set(ctx, movieCacheKey(id), movieResp)

	return &movieResp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Movie.FindByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("movie %q: %w", req.Title, ErrDuplicateTitle)
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:           req.Title,
		Synopsis:        req.Synopsis,
		DurationMinutes: req.DurationMinutes,
		Classification:  req.Classification,
		Genres:          req.Genres,
		ReleaseDate:     releaseDate,
		State:           entity.MovieStateActive,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}
	// Deleted is terminal: no updates, no state transitions out.
	if movie.State == entity.MovieStateDeleted {
		return nil, fmt.Errorf("movie %s is deleted: %w", movieID, ErrNotFound)
	}

	updated := false

	if req.Title != nil && *req.Title != movie.Title {
		existing, err := s.repo.Movie.FindByTitle(ctx, *req.Title)
		if err != nil {
			return nil, fmt.Errorf("check title: %w", err)
		}
		if existing != nil && existing.ID != movie.ID {
			return nil, fmt.Errorf("movie %q: %w", *req.Title, ErrDuplicateTitle)
		}
		movie.Title = *req.Title
		updated = true
	}

	if req.Synopsis != nil {
		movie.Synopsis = req.Synopsis
		updated = true
	}

	if req.DurationMinutes != nil {
		movie.DurationMinutes = req.DurationMinutes
		updated = true
	}

	if req.Classification != nil {
		movie.Classification = req.Classification
		updated = true
	}

	if req.Genres != nil {
		movie.Genres = req.Genres
		updated = true
	}

	if req.ReleaseDate != nil {
		releaseDate, err := parseReleaseDate(req.ReleaseDate)
		if err != nil {
			return nil, err
		}
		movie.ReleaseDate = releaseDate
		updated = true
	}

	// Active <-> inactive toggle. Never cascades to screenings; an inactive
	// movie simply refuses new admissions.
	if req.State != nil && entity.MovieState(*req.State) != movie.State {
		movie.State = entity.MovieState(*req.State)
		updated = true
	}

	if updated {
		movie.UpdatedAt = time.Now()
		if err := s.repo.Movie.Update(ctx, movie); err != nil {
			return nil, fmt.Errorf("update movie: %w", err)
		}
		s.cache.Delete(ctx, movieCacheKey(id))
	}

	s.log.Info("Movie updated",
		zap.String("movie_id", movieID),
		zap.String("state", string(movie.State)),
		zap.Bool("was_updated", updated),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := parseMovieID(movieID)
	if err != nil {
		return err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}
	if movie.State == entity.MovieStateDeleted {
		s.log.Info("Movie already deleted", zap.String("movie_id", movieID))
		return nil
	}

	screenings, err := s.repo.Movie.SoftDeleteWithScreenings(ctx, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.cache.Delete(ctx, movieCacheKey(id))

	s.log.Info("Movie deleted",
		zap.String("movie_id", movieID),
		zap.String("title", movie.Title),
		zap.Int64("screenings_cascaded", screenings),
	)

	return nil
}

func parseReleaseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: release date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return &parsed, nil
}
