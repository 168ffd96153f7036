package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда статичный слот не найден
	ErrSlotNotFound = errors.New("availability.service: slot not found")

	// ErrSlotCancelled возвращается при бронировании отмененного слота
	ErrSlotCancelled = errors.New("availability.service: slot is cancelled")

	// ErrSlotFull возвращается, когда в слоте не хватает мест
	ErrSlotFull = errors.New("availability.service: slot is full")

	// ErrOutsideWorkingHours возвращается, когда интервал бронирования целиком
	// вне рабочих смен сотрудника
	ErrOutsideWorkingHours = errors.New("availability.service: outside working hours")

	// ErrTimeOffConflict возвращается при пересечении бронирования с отгулом сотрудника
	ErrTimeOffConflict = errors.New("availability.service: staff time off conflict")

	// ErrReservationConflict возвращается при пересечении бронирования с резервом зала
	ErrReservationConflict = errors.New("availability.service: room reservation conflict")

	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("availability.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
