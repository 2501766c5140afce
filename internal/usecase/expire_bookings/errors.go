package expire_bookings

import "errors"

var (
	// ErrListCandidates возвращается, если не удалось выбрать кандидатов
	ErrListCandidates = errors.New("expire_bookings: failed to list candidate bookings")

	// ErrAborted возвращается, если проход прерван отменой контекста
	ErrAborted = errors.New("expire_bookings: sweep aborted")
)
