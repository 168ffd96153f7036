package staticslot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("staticslot.repository: slot not found")

	// ErrOverrideNotFound возвращается, когда переопределение на дату не найдено
	ErrOverrideNotFound = errors.New("staticslot.repository: override not found")

	// ErrDuplicateID возвращается при создании слота с уже занятым id
	ErrDuplicateID = errors.New("staticslot.repository: duplicate slot id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("staticslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("staticslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("staticslot.repository: failed to scan row")
)
