package repository

import (
	"context"
	"fmt"
	"strings"

	"cinema-scheduler/internal/data/entity"
	"cinema-scheduler/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieFilter narrows catalog listings. A nil State hides deleted movies;
// an explicit State returns exactly that lifecycle state (audit included).
type MovieFilter struct {
	Search *string
	Genre  *string
	State  *entity.MovieState
}

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	// FindByID returns deleted movies too so they stay auditable by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindByTitle(ctx context.Context, title string) (*entity.Movie, error)
	FindAll(ctx context.Context, offset, limit int, filter MovieFilter) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter MovieFilter) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error

	// SoftDeleteWithScreenings marks the movie deleted and every active
	// screening referencing it deleted in one transaction. It returns the
	// number of screenings transitioned.
	SoftDeleteWithScreenings(ctx context.Context, id uuid.UUID) (int64, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, synopsis, duration_minutes, classification, genres, release_date, state, created_at, updated_at`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Synopsis,
		&movie.DurationMinutes,
		&movie.Classification,
		&movie.Genres,
		&movie.ReleaseDate,
		&movie.State,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, synopsis, duration_minutes, classification,
		                    genres, release_date, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Synopsis,
		movie.DurationMinutes,
		movie.Classification,
		movie.Genres,
		movie.ReleaseDate,
		movie.State,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return movie, nil
}

func (r *movieRepository) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE title = $1 AND state <> $2`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, title, entity.MovieStateDeleted))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by title",
			zap.Error(err),
			zap.String("title", title),
		)
		return nil, fmt.Errorf("find movie by title %q: %w", title, err)
	}

	return movie, nil
}

// buildMovieWhere renders the filter as a WHERE clause starting at $1.
func buildMovieWhere(filter MovieFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR synopsis ILIKE $%d)", n, n))
	}
	if filter.Genre != nil && *filter.Genre != "" {
		args = append(args, *filter.Genre)
		conds = append(conds, fmt.Sprintf("$%d = ANY(genres)", len(args)))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		conds = append(conds, fmt.Sprintf("state = $%d", len(args)))
	} else {
		args = append(args, entity.MovieStateDeleted)
		conds = append(conds, fmt.Sprintf("state <> $%d", len(args)))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *movieRepository) FindAll(ctx context.Context, offset, limit int, filter MovieFilter) ([]*entity.Movie, error) {
	where, args := buildMovieWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM movies %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		movieColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	where, args := buildMovieWhere(filter)
	query := `SELECT COUNT(*) FROM movies ` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, synopsis = $3, duration_minutes = $4, classification = $5,
		    genres = $6, release_date = $7, state = $8, updated_at = $9
		WHERE id = $1 AND state <> $10
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Synopsis,
		movie.DurationMinutes,
		movie.Classification,
		movie.Genres,
		movie.ReleaseDate,
		movie.State,
		movie.UpdatedAt,
		entity.MovieStateDeleted,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s not found or deleted", movie.ID.String())
	}

	return nil
}

func (r *movieRepository) SoftDeleteWithScreenings(ctx context.Context, id uuid.UUID) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin cascade delete: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE movies SET state = $2, updated_at = NOW() WHERE id = $1 AND state <> $2`,
		id, entity.MovieStateDeleted,
	)
	if err != nil {
		r.log.Error("Failed to soft delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return 0, fmt.Errorf("soft delete movie %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return 0, fmt.Errorf("movie %s not found or deleted", id.String())
	}

	cascade, err := tx.Exec(ctx,
		`UPDATE screenings SET state = $2, updated_at = NOW() WHERE movie_id = $1 AND state = $3`,
		id, entity.ScreeningStateDeleted, entity.ScreeningStateActive,
	)
	if err != nil {
		r.log.Error("Failed to cascade delete screenings",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return 0, fmt.Errorf("cascade delete screenings of movie %s: %w", id.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit cascade delete: %w", err)
	}

	r.log.Info("Movie soft deleted with screenings",
		zap.String("movie_id", id.String()),
		zap.Int64("screenings", cascade.RowsAffected()),
	)

	return cascade.RowsAffected(), nil
}
