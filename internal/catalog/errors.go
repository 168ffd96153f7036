package catalog

import "errors"

var (
	// ErrDuplicateID возвращается при дублировании id ресурса в seed-данных
	ErrDuplicateID = errors.New("catalog: duplicate resource id")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("catalog: branch not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("catalog: staff member not found")

	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = errors.New("catalog: room not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrUnknownBranch возвращается, когда ресурс ссылается на несуществующий филиал
	ErrUnknownBranch = errors.New("catalog: resource references unknown branch")

	// ErrLoadSeed возвращается при ошибке чтения seed-файла
	ErrLoadSeed = errors.New("catalog: failed to load seed file")
)
