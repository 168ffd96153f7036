package get_calendar

import "errors"

var (
	// ErrInvalidDateRange возвращается при некорректном окне календаря
	ErrInvalidDateRange = errors.New("get_calendar: invalid date range")

	// ErrInvalidMode возвращается при неизвестном режиме расписания
	ErrInvalidMode = errors.New("get_calendar: invalid scheduling mode")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_calendar: internal error")
)
