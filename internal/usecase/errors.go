package usecase

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors shared across services. Handlers translate them into HTTP
// statuses, so services never reach for net/http themselves.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateTitle = errors.New("title already in use")
	ErrInvalidInput   = errors.New("invalid input")
)

// ScheduleErrorKind enumerates the admission failures, in the order the
// rules are evaluated.
type ScheduleErrorKind string

const (
	ScheduleErrInvalidInterval  ScheduleErrorKind = "invalid_interval"
	ScheduleErrMovieUnavailable ScheduleErrorKind = "movie_unavailable"
	ScheduleErrDurationTooShort ScheduleErrorKind = "duration_too_short"
	ScheduleErrRoomOverlap      ScheduleErrorKind = "room_overlap"
)

// ScheduleError reports why a candidate screening was refused. Index is the
// candidate's position within a bulk submission, -1 for single submissions.
// ConflictID identifies the colliding screening when Kind is room_overlap.
type ScheduleError struct {
	Kind       ScheduleErrorKind
	Message    string
	Index      int
	ConflictID uuid.UUID
}

func (e *ScheduleError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("screening %d: %s", e.Index, e.Message)
	}
	return e.Message
}
