package get_slot_availability

import "errors"

var (
	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("get_slot_availability: invalid input")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("get_slot_availability: slot not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_slot_availability: internal error")
)
