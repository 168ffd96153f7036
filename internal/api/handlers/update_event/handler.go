package update_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KUL-Services/bookly-sub001/internal/api/handlers"
	"github.com/KUL-Services/bookly-sub001/internal/service/availability"
	eventsService "github.com/KUL-Services/bookly-sub001/internal/service/events"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidEvent        = "некорректные данные события"
	msgEventNotFound       = "событие не найдено"
	msgStaffNotFound       = "сотрудник не найден"
	msgRoomNotFound        = "зал не найден"
	msgSlotNotFound        = "слот не найден"
	msgSlotCancelled       = "слот отменен на выбранную дату"
	msgSlotFull            = "в слоте не осталось мест"
	msgOutsideWorkingHours = "время бронирования вне рабочих часов сотрудника"
	msgTimeOffConflict     = "время бронирования пересекается с отгулом сотрудника"
	msgReservationConflict = "время бронирования пересекается с резервом зала"
)

type Handler struct {
	service EventsService
	logger  Logger
}

func NewHandler(service EventsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/events/{eventId}
// Полная замена события; при провале проверок хранилище не меняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	var req UpdateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /events/%s - Invalid request body: %v", eventID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event, err := req.ToDomain(eventID)
	if err != nil {
		h.logger.Warn("PUT /events/%s - Failed to parse request: %v", eventID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	updated, err := h.service.Update(r.Context(), event)
	if err != nil {
		switch {
		case errors.Is(err, eventsService.ErrEventNotFound):
			h.logger.Warn("PUT /events/%s - Event not found", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, eventsService.ErrUnknownStaff):
			h.logger.Warn("PUT /events/%s - Unknown staff: %v", eventID, err)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, eventsService.ErrUnknownRoom):
			h.logger.Warn("PUT /events/%s - Unknown room: %v", eventID, err)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, availability.ErrSlotNotFound):
			h.logger.Warn("PUT /events/%s - Slot not found: %v", eventID, err)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, availability.ErrSlotCancelled):
			h.logger.Warn("PUT /events/%s - Slot cancelled: %v", eventID, err)
			handlers.RespondError(w, http.StatusConflict, msgSlotCancelled)

		case errors.Is(err, availability.ErrSlotFull):
			h.logger.Warn("PUT /events/%s - Slot full: %v", eventID, err)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, availability.ErrOutsideWorkingHours):
			h.logger.Warn("PUT /events/%s - Outside working hours: %v", eventID, err)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, availability.ErrTimeOffConflict):
			h.logger.Warn("PUT /events/%s - Time off conflict: %v", eventID, err)
			handlers.RespondError(w, http.StatusConflict, msgTimeOffConflict)

		case errors.Is(err, availability.ErrReservationConflict):
			h.logger.Warn("PUT /events/%s - Reservation conflict: %v", eventID, err)
			handlers.RespondError(w, http.StatusConflict, msgReservationConflict)

		case errors.Is(err, eventsService.ErrInvalidInput):
			h.logger.Warn("PUT /events/%s - Invalid event: %v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidEvent)

		default:
			h.logger.Error("PUT /events/%s - Failed to update event: %v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /events/%s - Event updated", eventID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(updated))
}
