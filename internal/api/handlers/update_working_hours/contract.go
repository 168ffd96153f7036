package update_working_hours

import (
	"context"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// ScheduleService интерфейс сервиса рабочих часов
type ScheduleService interface {
	UpdateDay(ctx context.Context, staffID string, day domain.DayHours) error
	GetWeek(ctx context.Context, staffID string) (*domain.WeeklyStaffHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
