package schedule

import (
	"context"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	GetByStaff(ctx context.Context, staffID string) (*domain.WeeklyStaffHours, error)
	GetByStaffIDs(ctx context.Context, staffIDs []string) (map[string]*domain.WeeklyStaffHours, error)
	UpsertDay(ctx context.Context, staffID string, day domain.DayHours) error
}

// StaffCatalog интерфейс каталога для проверки существования сотрудников
type StaffCatalog interface {
	HasStaff(id string) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
