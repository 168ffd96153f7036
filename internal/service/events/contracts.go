package events

import (
	"context"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// EventRepository интерфейс репозитория событий календаря
type EventRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	Update(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
	ListWithFilter(ctx context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error)
}

// BookingValidator интерфейс проверки доступности перед записью бронирования
type BookingValidator interface {
	ValidateBooking(ctx context.Context, event *domain.CalendarEvent) error
}

// ResourceCatalog интерфейс каталога для проверки ссылок события на ресурсы
type ResourceCatalog interface {
	HasStaff(id string) bool
	HasRoom(id string) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
