package schedule

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrEncodeShifts возвращается при ошибке сериализации смен в JSONB
	ErrEncodeShifts = errors.New("schedule.repository: failed to encode shifts")

	// ErrDecodeShifts возвращается при ошибке десериализации смен из JSONB
	ErrDecodeShifts = errors.New("schedule.repository: failed to decode shifts")
)
