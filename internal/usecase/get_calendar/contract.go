package get_calendar

import (
	"context"
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// EventsProvider интерфейс чтения событий календаря
type EventsProvider interface {
	List(ctx context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error)
}

// ResourceCatalog интерфейс каталога ресурсов
type ResourceCatalog interface {
	ListBranches() []*domain.Branch
	ListStaff() []*domain.StaffMember
	ListRooms() []*domain.Room
	StaffByBranches(branchIDs []string) []*domain.StaffMember
	RoomsByBranches(branchIDs []string) []*domain.Room
	StaffName(id string) string
}

// ScheduleProvider интерфейс рабочих часов для фильтра работающих сотрудников
type ScheduleProvider interface {
	WorkingSet(ctx context.Context, staffIDs []string, date time.Time) (map[string]bool, error)
}

// SlotProvider интерфейс чтения статичных слотов
type SlotProvider interface {
	ListByRooms(ctx context.Context, roomIDs []string) ([]*domain.StaticSlot, error)
}

// AvailabilityProvider интерфейс расчета вместимости слотов
type AvailabilityProvider interface {
	AvailabilityForSlots(ctx context.Context, slots []*domain.StaticSlot, date time.Time) (map[string]domain.SlotAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
