package adaptor

import (
	"errors"
	"net/http"

	"cinema-scheduler/internal/usecase"
	"cinema-scheduler/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Movie     *MovieHandler
	Screening *ScreeningHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie:     NewMovieHandler(service.Movie, log),
		Screening: NewScreeningHandler(service.Screening, log),
	}
}

// respondServiceError maps service errors onto the HTTP error payload:
// invalid input 400, not found 404, interval/duration violations 422,
// overlap and duplicate-title conflicts 409, everything else 500.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var schedErr *usecase.ScheduleError

	switch {
	case errors.As(err, &schedErr):
		log.Warn(operation+" refused by scheduling rules",
			zap.String("kind", string(schedErr.Kind)),
			zap.Error(err),
		)

		details := map[string]any{}
		if schedErr.Index >= 0 {
			details["index"] = schedErr.Index
		}
		if schedErr.ConflictID != uuid.Nil {
			details["conflicting_screening_id"] = schedErr.ConflictID.String()
		}
		var payload any
		if len(details) > 0 {
			payload = details
		}

		switch schedErr.Kind {
		case usecase.ScheduleErrInvalidInterval, usecase.ScheduleErrDurationTooShort:
			utils.ResponseValidationError(w, string(schedErr.Kind), schedErr.Message, payload)
		case usecase.ScheduleErrRoomOverlap:
			utils.ResponseError(w, http.StatusConflict, string(schedErr.Kind), schedErr.Message, payload)
		default:
			utils.ResponseError(w, http.StatusBadRequest, string(schedErr.Kind), schedErr.Message, payload)
		}

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrDuplicateTitle):
		log.Warn(operation+" failed - duplicate title", zap.Error(err))
		utils.ResponseError(w, http.StatusConflict, "duplicate_title", err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// optionalQuery returns a pointer to the query value, nil when absent.
func optionalQuery(r *http.Request, key string) *string {
	if value := r.URL.Query().Get(key); value != "" {
		return &value
	}
	return nil
}
