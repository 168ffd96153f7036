package availability

import (
	"context"
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// EventRepository интерфейс репозитория событий календаря
type EventRepository interface {
	ListWithFilter(ctx context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error)
}

// SlotRepository интерфейс репозитория статичных слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.StaticSlot, error)
	ListByRooms(ctx context.Context, roomIDs []string) ([]*domain.StaticSlot, error)
	GetOverride(ctx context.Context, slotID string, date time.Time) (*domain.SlotOverride, error)
	ListOverridesForDate(ctx context.Context, date time.Time) (map[string]*domain.SlotOverride, error)
}

// ScheduleProvider интерфейс доступа к рабочим часам сотрудников
type ScheduleProvider interface {
	ShiftsForDate(ctx context.Context, staffID string, date time.Time) ([]domain.Shift, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
