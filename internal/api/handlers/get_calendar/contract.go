package get_calendar

import (
	"context"

	getCalendarUC "github.com/KUL-Services/bookly-sub001/internal/usecase/get_calendar"
)

// GetCalendarUseCase интерфейс use case составления календаря
type GetCalendarUseCase interface {
	Execute(ctx context.Context, req *getCalendarUC.Request) (*getCalendarUC.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
