package schedule

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден в каталоге
	ErrStaffNotFound = errors.New("schedule.service: staff not found")

	// ErrInvalidInput возвращается при невалидном расписании дня
	ErrInvalidInput = errors.New("schedule.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
