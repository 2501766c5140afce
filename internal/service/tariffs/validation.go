package tariffs

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

func validateCreate(req *models.CreateTariffRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if domain.TariffDuration(req.Duration) == domain.DurationCustom && req.DurationMinutes == nil {
		return fmt.Errorf("%w: durationMinutes is required for custom tariffs", ErrInvalidInput)
	}

	return nil
}

func validateUpdate(req *models.UpdateTariffRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Price != nil && req.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if req.Name == nil && req.Price == nil && req.IsActive == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	return nil
}
