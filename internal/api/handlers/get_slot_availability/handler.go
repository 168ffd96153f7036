package get_slot_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/KUL-Services/bookly-sub001/internal/api/handlers"
	"github.com/KUL-Services/bookly-sub001/internal/domain"
	getSlotAvailabilityUC "github.com/KUL-Services/bookly-sub001/internal/usecase/get_slot_availability"
)

const (
	msgMissingDate     = "параметр date обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlotData = "некорректные параметры запроса"
	msgSlotNotFound    = "слот не найден"
)

type Handler struct {
	useCase GetSlotAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/{slotId}/availability?date=YYYY-MM-DD
// Для отмененного на дату слота отвечает total=0, remaining=0
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots/%s/availability - Missing date", slotID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/%s/availability - Invalid date %q: %v", slotID, dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotAvailabilityUC.Request{
		SlotID: slotID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlotAvailabilityUC.ErrSlotNotFound):
			h.logger.Warn("GET /slots/%s/availability - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, getSlotAvailabilityUC.ErrInvalidInput):
			h.logger.Warn("GET /slots/%s/availability - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotData)

		default:
			h.logger.Error("GET /slots/%s/availability - Failed to get availability: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/%s/availability - %d/%d on %s",
		slotID, result.Remaining, result.Total, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
