package tariffs

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrTariffNotFound возвращается, когда тариф не найден
	ErrTariffNotFound = fmt.Errorf("tariffs: tariff not found: %w", domain.ErrNotFound)

	// ErrTariffNameTaken возвращается, когда название тарифа уже занято
	ErrTariffNameTaken = fmt.Errorf("tariffs: tariff name already taken: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("tariffs: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("tariffs: internal error")
)
