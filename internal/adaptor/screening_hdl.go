package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-scheduler/internal/dto/request"
	"cinema-scheduler/internal/usecase"
	"cinema-scheduler/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScreeningHandler struct {
	service usecase.ScreeningService
	log     *zap.Logger
}

func NewScreeningHandler(service usecase.ScreeningService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log.With(zap.String("handler", "screening")),
	}
}

// CreateScreening handles POST /api/screenings
func (h *ScreeningHandler) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var req request.ScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	screening, err := h.service.CreateScreening(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create screening")
		return
	}

	utils.ResponseCreated(w, "Screening created successfully", screening)
}

// BulkCreateScreenings handles POST /api/movies/{id}/screenings:bulkCreate.
// The batch is admitted or rejected as a whole.
func (h *ScreeningHandler) BulkCreateScreenings(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")

	var req request.BulkScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Request body must contain a screenings array", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	screenings, err := h.service.BulkCreateScreenings(r.Context(), movieID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "bulk create screenings")
		return
	}

	utils.ResponseCreated(w, "Screenings created successfully", screenings)
}

// GetScreenings handles GET /api/screenings?movie_id=&room=&from=&to=&state=
func (h *ScreeningHandler) GetScreenings(w http.ResponseWriter, r *http.Request) {
	filter := request.ScreeningListRequest{
		MovieID: optionalQuery(r, "movie_id"),
		Room:    optionalQuery(r, "room"),
		From:    optionalQuery(r, "from"),
		To:      optionalQuery(r, "to"),
		State:   optionalQuery(r, "state"),
	}

	screenings, err := h.service.GetScreenings(r.Context(), filter)
	if err != nil {
		respondServiceError(w, h.log, err, "get screenings")
		return
	}

	utils.ResponseSuccess(w, "Screenings retrieved successfully", screenings)
}

// GetScreeningByID handles GET /api/screenings/{id}
func (h *ScreeningHandler) GetScreeningByID(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")

	screening, err := h.service.GetScreeningByID(r.Context(), screeningID)
	if err != nil {
		respondServiceError(w, h.log, err, "get screening by ID")
		return
	}

	utils.ResponseSuccess(w, "Screening retrieved successfully", screening)
}

// UpdateScreening handles PUT /api/screenings/{id}
func (h *ScreeningHandler) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")

	var req request.ScreeningUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	screening, err := h.service.UpdateScreening(r.Context(), screeningID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update screening")
		return
	}

	utils.ResponseSuccess(w, "Screening updated successfully", screening)
}

// DeleteScreening handles DELETE /api/screenings/{id}: soft delete, no
// cascade.
func (h *ScreeningHandler) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")

	if err := h.service.DeleteScreening(r.Context(), screeningID); err != nil {
		respondServiceError(w, h.log, err, "delete screening")
		return
	}

	utils.ResponseSuccess(w, "Screening marked as deleted", nil)
}
