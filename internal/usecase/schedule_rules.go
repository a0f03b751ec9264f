package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"cinema-scheduler/internal/data/entity"
)

// validateAdmission applies the admission rules for a new screening, first
// failure wins: interval sanity, movie availability, duration fit, room
// overlap. The same routine serves single and bulk creation; bulk callers
// stamp the candidate's index onto the returned error.
func validateAdmission(cand *entity.Screening, movie *entity.Movie, active []*entity.Screening) *ScheduleError {
	if err := validateInterval(cand); err != nil {
		return err
	}
	if movie == nil || !movie.Schedulable() {
		return &ScheduleError{
			Kind:    ScheduleErrMovieUnavailable,
			Message: "movie does not exist or is not active",
			Index:   -1,
		}
	}
	return validateFit(cand, movie, active)
}

// validateReschedule re-checks an existing screening after its room or times
// changed. Movie availability gates creation only, so it is skipped here.
func validateReschedule(cand *entity.Screening, movie *entity.Movie, active []*entity.Screening) *ScheduleError {
	if err := validateInterval(cand); err != nil {
		return err
	}
	return validateFit(cand, movie, active)
}

func validateInterval(cand *entity.Screening) *ScheduleError {
	if !cand.StartsAt.Before(cand.EndsAt) {
		return &ScheduleError{
			Kind:    ScheduleErrInvalidInterval,
			Message: "end time must be after start time",
			Index:   -1,
		}
	}
	return nil
}

// validateFit checks the duration rule and the per-room no-overlap invariant
// against the given active set. Overlap uses half-open intervals, so a
// screening starting exactly when another ends is admitted.
func validateFit(cand *entity.Screening, movie *entity.Movie, active []*entity.Screening) *ScheduleError {
	if movie != nil && movie.DurationMinutes != nil {
		need := time.Duration(*movie.DurationMinutes) * time.Minute
		if cand.EndsAt.Sub(cand.StartsAt) < need {
			return &ScheduleError{
				Kind:    ScheduleErrDurationTooShort,
				Message: fmt.Sprintf("interval is shorter than the movie duration of %d minutes", *movie.DurationMinutes),
				Index:   -1,
			}
		}
	}

	for _, s := range active {
		if s.Overlaps(cand.StartsAt, cand.EndsAt) {
			return &ScheduleError{
				Kind:       ScheduleErrRoomOverlap,
				Message:    fmt.Sprintf("room %q is already booked during this interval", cand.Room),
				Index:      -1,
				ConflictID: s.ID,
			}
		}
	}

	return nil
}

// roomLocks serializes read-check-insert admission per room, so two
// concurrent requests cannot both observe an empty slot and insert colliding
// screenings. Locks are acquired in sorted room order to rule out lock-order
// inversion when a bulk submission spans rooms.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *roomLocks) get(room string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[room]
	if !ok {
		m = &sync.Mutex{}
		l.locks[room] = m
	}
	return m
}

// acquire locks the given rooms and returns the matching release function.
func (l *roomLocks) acquire(rooms ...string) func() {
	seen := make(map[string]bool, len(rooms))
	distinct := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if !seen[room] {
			seen[room] = true
			distinct = append(distinct, room)
		}
	}
	sort.Strings(distinct)

	held := make([]*sync.Mutex, 0, len(distinct))
	for _, room := range distinct {
		m := l.get(room)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
