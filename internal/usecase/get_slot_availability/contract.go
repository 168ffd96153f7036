package get_slot_availability

import (
	"context"
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	SlotAvailability(ctx context.Context, slotID string, date time.Time) (*domain.SlotAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
