package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-scheduler/internal/data/entity"
	"cinema-scheduler/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ScreeningFilter narrows timetable listings. A nil State hides deleted
// screenings; an explicit State returns exactly that state.
type ScreeningFilter struct {
	MovieID *uuid.UUID
	Room    *string
	From    *time.Time
	To      *time.Time
	State   *entity.ScreeningState
}

type ScreeningRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	// CreateBatch inserts all screenings in one transaction.
	CreateBatch(ctx context.Context, screenings []*entity.Screening) error
	// FindByID returns deleted screenings too so they stay auditable by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	FindAll(ctx context.Context, filter ScreeningFilter) ([]*entity.Screening, error)
	// FindActiveByRoom returns the active screenings sharing a room, the
	// conflict set for admission checks. exclude skips one screening id so
	// updates do not collide with themselves.
	FindActiveByRoom(ctx context.Context, room string, exclude *uuid.UUID) ([]*entity.Screening, error)
	Update(ctx context.Context, screening *entity.Screening) error
	// SoftDelete transitions active -> deleted and reports whether a row
	// changed. Deleting an already-deleted screening affects nothing.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

const screeningColumns = `id, movie_id, room, starts_at, ends_at, price, language, format, capacity, state, created_at, updated_at`

const insertScreeningQuery = `
	INSERT INTO screenings (id, movie_id, room, starts_at, ends_at, price,
	                        language, format, capacity, state, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

func scanScreening(row pgx.Row) (*entity.Screening, error) {
	var s entity.Screening
	err := row.Scan(
		&s.ID,
		&s.MovieID,
		&s.Room,
		&s.StartsAt,
		&s.EndsAt,
		&s.Price,
		&s.Language,
		&s.Format,
		&s.Capacity,
		&s.State,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func screeningArgs(s *entity.Screening) []any {
	return []any{
		s.ID, s.MovieID, s.Room, s.StartsAt, s.EndsAt, s.Price,
		s.Language, s.Format, s.Capacity, s.State, s.CreatedAt, s.UpdatedAt,
	}
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	_, err := r.db.Exec(ctx, insertScreeningQuery, screeningArgs(screening)...)
	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("movie_id", screening.MovieID.String()),
			zap.String("room", screening.Room),
		)
		return fmt.Errorf("create screening in room %q: %w", screening.Room, err)
	}

	return nil
}

func (r *screeningRepository) CreateBatch(ctx context.Context, screenings []*entity.Screening) error {
	if len(screenings) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, screening := range screenings {
		if _, err := tx.Exec(ctx, insertScreeningQuery, screeningArgs(screening)...); err != nil {
			r.log.Error("Failed to insert screening in batch",
				zap.Error(err),
				zap.String("movie_id", screening.MovieID.String()),
				zap.String("room", screening.Room),
			)
			return fmt.Errorf("batch insert screening in room %q: %w", screening.Room, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch insert: %w", err)
	}

	r.log.Info("Screening batch created", zap.Int("count", len(screenings)))
	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE id = $1`

	screening, err := scanScreening(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return screening, nil
}

func (r *screeningRepository) FindAll(ctx context.Context, filter ScreeningFilter) ([]*entity.Screening, error) {
	conds := []string{}
	args := []any{}

	if filter.MovieID != nil {
		args = append(args, *filter.MovieID)
		conds = append(conds, fmt.Sprintf("movie_id = $%d", len(args)))
	}
	if filter.Room != nil && *filter.Room != "" {
		args = append(args, *filter.Room)
		conds = append(conds, fmt.Sprintf("room = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("starts_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("ends_at <= $%d", len(args)))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		conds = append(conds, fmt.Sprintf("state = $%d", len(args)))
	} else {
		args = append(args, entity.ScreeningStateDeleted)
		conds = append(conds, fmt.Sprintf("state <> $%d", len(args)))
	}

	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY starts_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find screenings", zap.Error(err))
		return nil, fmt.Errorf("find screenings: %w", err)
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		screening, err := scanScreening(rows)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, screening)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screening rows: %w", err)
	}

	return screenings, nil
}

func (r *screeningRepository) FindActiveByRoom(ctx context.Context, room string, exclude *uuid.UUID) ([]*entity.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE room = $1 AND state = $2`
	args := []any{room, entity.ScreeningStateActive}

	if exclude != nil {
		args = append(args, *exclude)
		query += fmt.Sprintf(" AND id <> $%d", len(args))
	}
	query += " ORDER BY starts_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find active screenings by room",
			zap.Error(err),
			zap.String("room", room),
		)
		return nil, fmt.Errorf("find active screenings in room %q: %w", room, err)
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		screening, err := scanScreening(rows)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, screening)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screening rows: %w", err)
	}

	return screenings, nil
}

func (r *screeningRepository) Update(ctx context.Context, screening *entity.Screening) error {
	query := `
		UPDATE screenings
		SET room = $2, starts_at = $3, ends_at = $4, price = $5,
		    language = $6, format = $7, capacity = $8, updated_at = $9
		WHERE id = $1 AND state = $10
	`

	result, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.Room,
		screening.StartsAt,
		screening.EndsAt,
		screening.Price,
		screening.Language,
		screening.Format,
		screening.Capacity,
		screening.UpdatedAt,
		entity.ScreeningStateActive,
	)

	if err != nil {
		r.log.Error("Failed to update screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s not found or deleted", screening.ID.String())
	}

	return nil
}

func (r *screeningRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE screenings SET state = $2, updated_at = NOW() WHERE id = $1 AND state = $3`

	result, err := r.db.Exec(ctx, query, id, entity.ScreeningStateDeleted, entity.ScreeningStateActive)
	if err != nil {
		r.log.Error("Failed to soft delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return false, fmt.Errorf("soft delete screening %s: %w", id.String(), err)
	}

	if result.RowsAffected() > 0 {
		r.log.Info("Screening soft deleted", zap.String("screening_id", id.String()))
		return true, nil
	}

	return false, nil
}
