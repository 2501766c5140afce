package models

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ErrInvalidStatus возвращается при некорректном статусе
var ErrInvalidStatus = fmt.Errorf("invalid booking status: %w", domain.ErrValidation)
