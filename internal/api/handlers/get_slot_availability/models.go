package get_slot_availability

import (
	"github.com/KUL-Services/bookly-sub001/internal/domain"
	getSlotAvailabilityUC "github.com/KUL-Services/bookly-sub001/internal/usecase/get_slot_availability"
)

// SlotAvailabilityResponse HTTP модель вместимости слота на дату
type SlotAvailabilityResponse struct {
	SlotID    string `json:"slotId"`
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Remaining int    `json:"remaining"`
	Full      bool   `json:"full"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *getSlotAvailabilityUC.Response) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		SlotID:    result.SlotID,
		Date:      result.Date.Format(domain.DateFormat),
		Total:     result.Total,
		Remaining: result.Remaining,
		Full:      result.Full,
	}
}
