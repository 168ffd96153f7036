package create_event

import (
	"errors"
	"net/http"

	"github.com/KUL-Services/bookly-sub001/internal/api/handlers"
	"github.com/KUL-Services/bookly-sub001/internal/service/availability"
	eventsService "github.com/KUL-Services/bookly-sub001/internal/service/events"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidEvent        = "некорректные данные события"
	msgDuplicateID         = "событие с таким id уже существует"
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

// Handle POST /api/v1/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	event, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /events - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	created, err := h.service.Create(r.Context(), event)
	if err != nil {
		switch {
		case errors.Is(err, eventsService.ErrDuplicateID):
			h.logger.Warn("POST /events - Duplicate id=%s", event.ID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateID)

		case errors.Is(err, eventsService.ErrUnknownStaff):
			h.logger.Warn("POST /events - Unknown staff: %v", err)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, eventsService.ErrUnknownRoom):
			h.logger.Warn("POST /events - Unknown room: %v", err)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, availability.ErrSlotNotFound):
			h.logger.Warn("POST /events - Slot not found: %v", err)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, availability.ErrSlotCancelled):
			h.logger.Warn("POST /events - Slot cancelled: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgSlotCancelled)

		case errors.Is(err, availability.ErrSlotFull):
			h.logger.Warn("POST /events - Slot full: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, availability.ErrOutsideWorkingHours):
			h.logger.Warn("POST /events - Outside working hours: %v", err)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, availability.ErrTimeOffConflict):
			h.logger.Warn("POST /events - Time off conflict: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgTimeOffConflict)

		case errors.Is(err, availability.ErrReservationConflict):
			h.logger.Warn("POST /events - Reservation conflict: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgReservationConflict)

		case errors.Is(err, eventsService.ErrInvalidInput):
			h.logger.Warn("POST /events - Invalid event: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEvent)

		default:
			h.logger.Error("POST /events - Failed to create event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events - Event created: id=%s kind=%s", created.ID, created.Kind)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}
