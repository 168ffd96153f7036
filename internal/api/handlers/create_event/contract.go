package create_event

import (
	"context"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// EventsService интерфейс сервиса событий
type EventsService interface {
	Create(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
