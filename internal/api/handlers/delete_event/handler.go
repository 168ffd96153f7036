package delete_event

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KUL-Services/bookly-sub001/internal/api/handlers"
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

// Handle DELETE /api/v1/events/{eventId}
// Удаление отсутствующего события не ошибка - ответ одинаково 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	if err := h.service.Delete(r.Context(), eventID); err != nil {
		h.logger.Error("DELETE /events/%s - Failed to delete event: %v", eventID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /events/%s - Event deleted", eventID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
