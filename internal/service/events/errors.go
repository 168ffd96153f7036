package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("events.service: event not found")

	// ErrDuplicateID возвращается при создании события с уже занятым id
	ErrDuplicateID = errors.New("events.service: duplicate event id")

	// ErrUnknownStaff возвращается, когда событие ссылается на несуществующего сотрудника
	ErrUnknownStaff = errors.New("events.service: unknown staff")

	// ErrUnknownRoom возвращается, когда событие ссылается на несуществующий зал
	ErrUnknownRoom = errors.New("events.service: unknown room")

	// ErrInvalidInput возвращается при невалидных данных события
	ErrInvalidInput = errors.New("events.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("events.service: internal error")
)
