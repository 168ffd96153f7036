package get_slot_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	"github.com/KUL-Services/bookly-sub001/internal/service/availability"
)

// UseCase use case получения вместимости слота на дату
type UseCase struct {
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет расчет вместимости слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotAvailability: slot=%s, date=%s", req.SlotID, req.Date.Format(domain.DateFormat))

	if req.SlotID == "" {
		return nil, fmt.Errorf("%w: empty slot id", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: empty date", ErrInvalidInput)
	}

	state, err := uc.availability.SlotAvailability(ctx, req.SlotID, req.Date)
	if err != nil {
		if errors.Is(err, availability.ErrSlotNotFound) {
			uc.logger.Warn("GetSlotAvailability: slot=%s not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("GetSlotAvailability: availability error for slot=%s: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: availability error: %v", ErrInternal, err)
	}

	return &Response{
		SlotID:    req.SlotID,
		Date:      req.Date,
		Total:     state.Total,
		Remaining: state.Remaining,
		Full:      state.IsFull(),
	}, nil
}
