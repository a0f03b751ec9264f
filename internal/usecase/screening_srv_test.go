package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinema-scheduler/internal/data/entity"
	"cinema-scheduler/internal/data/repository"
	"cinema-scheduler/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServices() (*fakeMovieRepo, *fakeScreeningRepo, MovieService, ScreeningService) {
	screenings := newFakeScreeningRepo()
	movies := newFakeMovieRepo(screenings)
	repo := &repository.Repository{Movie: movies, Screening: screenings}
	log := zap.NewNop()
	return movies, screenings, NewMovieService(repo, nil, log), NewScreeningService(repo, log)
}

func seedMovie(t *testing.T, movies *fakeMovieRepo, durationMinutes *int, state entity.MovieState) *entity.Movie {
	t.Helper()
	movie := testMovie(durationMinutes, state)
	require.NoError(t, movies.Create(context.Background(), movie))
	return movie
}

func candidate(room string, start, end time.Time) request.ScreeningCandidate {
	return request.ScreeningCandidate{Room: room, StartsAt: start, EndsAt: end}
}

func TestCreateScreening_Admits(t *testing.T) {
	movies, screenings, _, svc := newTestServices()
	movie := seedMovie(t, movies, intPtr(120), entity.MovieStateActive)

	resp, err := svc.CreateScreening(context.Background(), &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(10, 0), at(12, 0)),
	})

	require.NoError(t, err)
	assert.Equal(t, "R1", resp.Room)
	assert.Equal(t, string(entity.ScreeningStateActive), resp.State)
	assert.Equal(t, 1, screenings.activeCount())
}

func TestCreateScreening_RoomOverlapIdentifiesConflict(t *testing.T) {
	movies, _, _, svc := newTestServices()
	movie := seedMovie(t, movies, nil, entity.MovieStateActive)

	ctx := context.Background()
	first, err := svc.CreateScreening(ctx, &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(10, 0), at(12, 0)),
	})
	require.NoError(t, err)

	_, err = svc.CreateScreening(ctx, &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(11, 0), at(13, 0)),
	})

	var schedErr *ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, ScheduleErrRoomOverlap, schedErr.Kind)
	assert.Equal(t, first.ID, schedErr.ConflictID.String())

	// Boundary-touching is not overlap; a different room is never overlap.
	_, err = svc.CreateScreening(ctx, &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(12, 0), at(14, 0)),
	})
	assert.NoError(t, err)

	_, err = svc.CreateScreening(ctx, &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R2", at(10, 0), at(12, 0)),
	})
	assert.NoError(t, err)
}

func TestCreateScreening_InactiveMovieRefused(t *testing.T) {
	movies, screenings, _, svc := newTestServices()
	movie := seedMovie(t, movies, nil, entity.MovieStateInactive)

	_, err := svc.CreateScreening(context.Background(), &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(10, 0), at(12, 0)),
	})

	var schedErr *ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, ScheduleErrMovieUnavailable, schedErr.Kind)
	assert.Equal(t, 0, screenings.activeCount())
}

func TestCreateScreening_ConcurrentSameRoom(t *testing.T) {
	movies, screenings, _, svc := newTestServices()
	movie := seedMovie(t, movies, nil, entity.MovieStateActive)

	// Two overlapping candidates race for the same room; the per-room lock
	// must let exactly one through.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateScreening(context.Background(), &request.ScreeningRequest{
				MovieID:            movie.ID.String(),
				ScreeningCandidate: candidate("R1", at(10, 0), at(12, 0)),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var admitted, refused int
	for err := range results {
		if err == nil {
			admitted++
			continue
		}
		var schedErr *ScheduleError
		require.ErrorAs(t, err, &schedErr)
		assert.Equal(t, ScheduleErrRoomOverlap, schedErr.Kind)
		refused++
	}

	assert.Equal(t, 1, admitted)
	assert.Equal(t, 1, refused)
	assert.Equal(t, 1, screenings.activeCount())
}

func TestBulkCreate_EmptyBatchIsNoOp(t *testing.T) {
	movies, screenings, _, svc := newTestServices()
	movie := seedMovie(t, movies, nil, entity.MovieStateActive)

	resp, err := svc.BulkCreateScreenings(context.Background(), movie.ID.String(), &request.BulkScreeningRequest{})

	require.NoError(t, err)
	assert.Empty(t, resp)
	assert.Equal(t, 0, screenings.activeCount())
}

func TestBulkCreate_AdmitsAcrossRooms(t *testing.T) {
	movies, screenings, _, svc := newTestServices()
	movie := seedMovie(t, movies, intPtr(90), entity.MovieStateActive)

	resp, err := svc.BulkCreateScreenings(context.Background(), movie.ID.String(), &request.BulkScreeningRequest{
		Screenings: []request.ScreeningCandidate{
			candidate("R1", at(10, 0), at(12, 0)),
			candidate("R1", at(12, 0), at(14, 0)),
			candidate("R2", at(10, 0), at(12, 0)),
		},
	})

	require.NoError(t, err)
	assert.Len(t, resp, 3)
	assert.Equal(t, 3, screenings.activeCount())
}

func TestBulkCreate_IntraBatchOverlapRejectsWholeBatch(t *testing.T) {
	movies, screenings, _, svc := newTestServices()
	movie := seedMovie(t, movies, nil, entity.MovieStateActive)

	// Neither candidate collides with persisted state, but they collide with
	// each other: the whole batch must be refused with the failing index.
	_, err := svc.BulkCreateScreenings(context.Background(), movie.ID.String(), &request.BulkScreeningRequest{
		Screenings: []request.ScreeningCandidate{
			candidate("R1", at(10, 0), at(12, 0)),
			candidate("R1", at(11, 0), at(13, 0)),
		},
	})

	var schedErr *ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, ScheduleErrRoomOverlap, schedErr.Kind)
	assert.Equal(t, 1, schedErr.Index)
	assert.Equal(t, 0, screenings.activeCount())
}

func TestBulkCreate_FirstFailureReportsIndex(t *testing.T) {
	movies, screenings, _, svc := newTestServices()
	movie := seedMovie(t, movies, intPtr(120), entity.MovieStateActive)

	_, err := svc.BulkCreateScreenings(context.Background(), movie.ID.String(), &request.BulkScreeningRequest{
		Screenings: []request.ScreeningCandidate{
			candidate("R1", at(10, 0), at(12, 0)),
			candidate("R2", at(10, 0), at(11, 0)), // too short for 120 minutes
			candidate("R3", at(13, 0), at(12, 0)), // never reached
		},
	})

	var schedErr *ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, ScheduleErrDurationTooShort, schedErr.Kind)
	assert.Equal(t, 1, schedErr.Index)
	assert.Equal(t, 0, screenings.activeCount())
}

func TestUpdateScreening_OverlapExcludesItself(t *testing.T) {
	movies, _, _, svc := newTestServices()
	movie := seedMovie(t, movies, nil, entity.MovieStateActive)

	ctx := context.Background()
	created, err := svc.CreateScreening(ctx, &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(10, 0), at(12, 0)),
	})
	require.NoError(t, err)

	// Shifting within its own slot must not collide with itself.
	newStart := at(10, 30)
	newEnd := at(12, 30)
	updated, err := svc.UpdateScreening(ctx, created.ID, &request.ScreeningUpdateRequest{
		StartsAt: &newStart,
		EndsAt:   &newEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, updated.StartsAt)

	// Moving onto another active screening is still refused.
	other, err := svc.CreateScreening(ctx, &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(14, 0), at(16, 0)),
	})
	require.NoError(t, err)

	badStart := at(15, 0)
	badEnd := at(17, 0)
	_, err = svc.UpdateScreening(ctx, created.ID, &request.ScreeningUpdateRequest{
		StartsAt: &badStart,
		EndsAt:   &badEnd,
	})

	var schedErr *ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, ScheduleErrRoomOverlap, schedErr.Kind)
	assert.Equal(t, other.ID, schedErr.ConflictID.String())
}

func TestDeleteScreening_Idempotent(t *testing.T) {
	movies, screenings, _, svc := newTestServices()
	movie := seedMovie(t, movies, nil, entity.MovieStateActive)

	ctx := context.Background()
	created, err := svc.CreateScreening(ctx, &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(10, 0), at(12, 0)),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteScreening(ctx, created.ID))
	id := uuid.MustParse(created.ID)
	assert.Equal(t, entity.ScreeningStateDeleted, screenings.stateOf(id))

	// Second delete is a no-op, not an error.
	assert.NoError(t, svc.DeleteScreening(ctx, created.ID))

	// An id that never existed is NotFound.
	err = svc.DeleteScreening(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetScreenings_DefaultHidesDeleted(t *testing.T) {
	movies, _, _, svc := newTestServices()
	movie := seedMovie(t, movies, nil, entity.MovieStateActive)

	ctx := context.Background()
	kept, err := svc.CreateScreening(ctx, &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(10, 0), at(12, 0)),
	})
	require.NoError(t, err)

	dropped, err := svc.CreateScreening(ctx, &request.ScreeningRequest{
		MovieID:            movie.ID.String(),
		ScreeningCandidate: candidate("R1", at(12, 0), at(14, 0)),
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteScreening(ctx, dropped.ID))

	listed, err := svc.GetScreenings(ctx, request.ScreeningListRequest{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, kept.ID, listed[0].ID)

	// Deleted screenings stay retrievable by id for audit.
	audit, err := svc.GetScreeningByID(ctx, dropped.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ScreeningStateDeleted), audit.State)
}
