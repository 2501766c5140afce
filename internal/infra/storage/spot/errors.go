package spot

import "errors"

var (
	// ErrSpotNotFound возвращается, когда парковочное место не найдено
	ErrSpotNotFound = errors.New("spot.repository: parking spot not found")

	// ErrSpotAlreadyExists возвращается при попытке создать место с существующим номером
	ErrSpotAlreadyExists = errors.New("spot.repository: parking spot already exists")

	// ErrSpotReferenced возвращается при удалении места, на которое ссылаются бронирования
	ErrSpotReferenced = errors.New("spot.repository: parking spot is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("spot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("spot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("spot.repository: failed to scan row")
)
