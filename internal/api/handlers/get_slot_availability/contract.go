package get_slot_availability

import (
	"context"

	getSlotAvailabilityUC "github.com/KUL-Services/bookly-sub001/internal/usecase/get_slot_availability"
)

// GetSlotAvailabilityUseCase интерфейс use case вместимости слота
type GetSlotAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getSlotAvailabilityUC.Request) (*getSlotAvailabilityUC.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
