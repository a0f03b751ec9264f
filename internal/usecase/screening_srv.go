package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-scheduler/internal/data/entity"
	"cinema-scheduler/internal/data/repository"
	"cinema-scheduler/internal/dto/request"
	"cinema-scheduler/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreeningService interface {
	// CreateScreening admits a single screening after the full rule set
	// passes: interval sanity, movie availability, duration fit, no overlap
	// with active screenings in the room.
	CreateScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error)

	// BulkCreateScreenings is all-or-nothing: every candidate is validated
	// against persisted state and against candidates accepted earlier in the
	// same batch; the first failure aborts the whole submission and carries
	// the failing candidate's index. An empty batch admits nothing.
	BulkCreateScreenings(ctx context.Context, movieID string, req *request.BulkScreeningRequest) ([]response.ScreeningResponse, error)

	GetScreenings(ctx context.Context, filter request.ScreeningListRequest) ([]response.ScreeningResponse, error)
	GetScreeningByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error)
	UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningUpdateRequest) (*response.ScreeningResponse, error)
	// DeleteScreening soft-deletes one screening, no cascade. Deleting an
	// already-deleted screening is a no-op; ErrNotFound means the id never
	// existed.
	DeleteScreening(ctx context.Context, screeningID string) error
}

type screeningService struct {
	repo  *repository.Repository
	rooms *roomLocks
	log   *zap.Logger
}

func NewScreeningService(repo *repository.Repository, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo:  repo,
		rooms: newRoomLocks(),
		log:   log.With(zap.String("service", "screening")),
	}
}

func parseScreeningID(screeningID string) (uuid.UUID, error) {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: screening id must be a UUID", ErrInvalidInput)
	}
	return id, nil
}

// candidateToEntity materializes a candidate with a fresh id and active state.
func candidateToEntity(movieID uuid.UUID, cand *request.ScreeningCandidate) *entity.Screening {
	now := time.Now()
	return &entity.Screening{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:  movieID,
		Room:     cand.Room,
		StartsAt: cand.StartsAt,
		EndsAt:   cand.EndsAt,
		Price:    cand.Price,
		Language: cand.Language,
		Format:   cand.Format,
		Capacity: cand.Capacity,
		State:    entity.ScreeningStateActive,
	}
}

func (s *screeningService) CreateScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error) {
	movieID, err := parseMovieID(req.MovieID)
	if err != nil {
		return nil, err
	}

	cand := candidateToEntity(movieID, &req.ScreeningCandidate)

	// Hold the room lock across read-check-insert so a concurrent request
	// cannot slip an overlapping screening in between.
	release := s.rooms.acquire(cand.Room)
	defer release()

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("snapshot movie: %w", err)
	}

	active, err := s.repo.Screening.FindActiveByRoom(ctx, cand.Room, nil)
	if err != nil {
		return nil, fmt.Errorf("load room timetable: %w", err)
	}

	if schedErr := validateAdmission(cand, movie, active); schedErr != nil {
		s.log.Warn("Screening refused",
			zap.String("kind", string(schedErr.Kind)),
			zap.String("movie_id", req.MovieID),
			zap.String("room", cand.Room),
		)
		return nil, schedErr
	}

	if err := s.repo.Screening.Create(ctx, cand); err != nil {
		return nil, fmt.Errorf("create screening: %w", err)
	}

	s.log.Info("Screening admitted",
		zap.String("screening_id", cand.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("room", cand.Room),
		zap.Time("starts_at", cand.StartsAt),
	)

	resp := response.ScreeningToResponse(cand)
	return &resp, nil
}

func (s *screeningService) BulkCreateScreenings(ctx context.Context, movieID string, req *request.BulkScreeningRequest) ([]response.ScreeningResponse, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	if len(req.Screenings) == 0 {
		return []response.ScreeningResponse{}, nil
	}

	rooms := make([]string, len(req.Screenings))
	for i := range req.Screenings {
		rooms[i] = req.Screenings[i].Room
	}
	release := s.rooms.acquire(rooms...)
	defer release()

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("snapshot movie: %w", err)
	}

	// Per-room conflict sets grow with each accepted candidate, so two
	// candidates in the same submission that collide with each other are
	// rejected even when neither collides with persisted state.
	activeByRoom := make(map[string][]*entity.Screening)
	batch := make([]*entity.Screening, 0, len(req.Screenings))

	for i := range req.Screenings {
		cand := candidateToEntity(id, &req.Screenings[i])

		if _, ok := activeByRoom[cand.Room]; !ok {
			active, err := s.repo.Screening.FindActiveByRoom(ctx, cand.Room, nil)
			if err != nil {
				return nil, fmt.Errorf("load room timetable: %w", err)
			}
			activeByRoom[cand.Room] = active
		}

		if schedErr := validateAdmission(cand, movie, activeByRoom[cand.Room]); schedErr != nil {
			schedErr.Index = i
			s.log.Warn("Bulk screening refused",
				zap.String("kind", string(schedErr.Kind)),
				zap.Int("index", i),
				zap.String("movie_id", movieID),
				zap.String("room", cand.Room),
			)
			return nil, schedErr
		}

		activeByRoom[cand.Room] = append(activeByRoom[cand.Room], cand)
		batch = append(batch, cand)
	}

	if err := s.repo.Screening.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create screening batch: %w", err)
	}

	s.log.Info("Screening batch admitted",
		zap.String("movie_id", movieID),
		zap.Int("count", len(batch)),
	)

	return response.ScreeningsToResponse(batch), nil
}

func (s *screeningService) GetScreenings(ctx context.Context, filter request.ScreeningListRequest) ([]response.ScreeningResponse, error) {
	repoFilter, err := buildScreeningFilter(filter)
	if err != nil {
		return nil, err
	}

	screenings, err := s.repo.Screening.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("get screenings: %w", err)
	}

	return response.ScreeningsToResponse(screenings), nil
}

func (s *screeningService) GetScreeningByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error) {
	id, err := parseScreeningID(screeningID)
	if err != nil {
		return nil, err
	}

	// Deleted screenings stay retrievable by id for audit.
	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get screening by id: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s: %w", screeningID, ErrNotFound)
	}

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

func (s *screeningService) UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningUpdateRequest) (*response.ScreeningResponse, error) {
	id, err := parseScreeningID(screeningID)
	if err != nil {
		return nil, err
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find screening: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s: %w", screeningID, ErrNotFound)
	}
	// Deleted is terminal.
	if screening.State == entity.ScreeningStateDeleted {
		return nil, fmt.Errorf("screening %s is deleted: %w", screeningID, ErrNotFound)
	}

	if req.Room != nil {
		screening.Room = *req.Room
	}
	if req.StartsAt != nil {
		screening.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		screening.EndsAt = *req.EndsAt
	}
	if req.Price != nil {
		screening.Price = req.Price
	}
	if req.Language != nil {
		screening.Language = req.Language
	}
	if req.Format != nil {
		screening.Format = req.Format
	}
	if req.Capacity != nil {
		screening.Capacity = req.Capacity
	}

	release := s.rooms.acquire(screening.Room)
	defer release()

	movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID)
	if err != nil {
		return nil, fmt.Errorf("snapshot movie: %w", err)
	}

	active, err := s.repo.Screening.FindActiveByRoom(ctx, screening.Room, &screening.ID)
	if err != nil {
		return nil, fmt.Errorf("load room timetable: %w", err)
	}

	if schedErr := validateReschedule(screening, movie, active); schedErr != nil {
		s.log.Warn("Screening update refused",
			zap.String("kind", string(schedErr.Kind)),
			zap.String("screening_id", screeningID),
			zap.String("room", screening.Room),
		)
		return nil, schedErr
	}

	screening.UpdatedAt = time.Now()
	if err := s.repo.Screening.Update(ctx, screening); err != nil {
		return nil, fmt.Errorf("update screening: %w", err)
	}

	s.log.Info("Screening updated",
		zap.String("screening_id", screeningID),
		zap.String("room", screening.Room),
	)

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

func (s *screeningService) DeleteScreening(ctx context.Context, screeningID string) error {
	id, err := parseScreeningID(screeningID)
	if err != nil {
		return err
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find screening: %w", err)
	}
	if screening == nil {
		return fmt.Errorf("screening %s: %w", screeningID, ErrNotFound)
	}
	if screening.State == entity.ScreeningStateDeleted {
		s.log.Info("Screening already deleted", zap.String("screening_id", screeningID))
		return nil
	}

	if _, err := s.repo.Screening.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("delete screening: %w", err)
	}

	s.log.Info("Screening deleted", zap.String("screening_id", screeningID))
	return nil
}

func buildScreeningFilter(filter request.ScreeningListRequest) (repository.ScreeningFilter, error) {
	var out repository.ScreeningFilter

	if filter.MovieID != nil && *filter.MovieID != "" {
		id, err := uuid.Parse(*filter.MovieID)
		if err != nil {
			return out, fmt.Errorf("%w: movie_id must be a UUID", ErrInvalidInput)
		}
		out.MovieID = &id
	}
	if filter.Room != nil && *filter.Room != "" {
		out.Room = filter.Room
	}
	if filter.From != nil && *filter.From != "" {
		from, err := time.Parse(time.RFC3339, *filter.From)
		if err != nil {
			return out, fmt.Errorf("%w: from must be RFC 3339", ErrInvalidInput)
		}
		out.From = &from
	}
	if filter.To != nil && *filter.To != "" {
		to, err := time.Parse(time.RFC3339, *filter.To)
		if err != nil {
			return out, fmt.Errorf("%w: to must be RFC 3339", ErrInvalidInput)
		}
		out.To = &to
	}
	if filter.State != nil && *filter.State != "" {
		switch state := entity.ScreeningState(*filter.State); state {
		case entity.ScreeningStateActive, entity.ScreeningStateDeleted:
			out.State = &state
		default:
			return out, fmt.Errorf("%w: unknown state %q", ErrInvalidInput, *filter.State)
		}
	}

	return out, nil
}
