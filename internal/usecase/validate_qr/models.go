package validate_qr

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на проверку QR-кода
type Request struct {
	Raw string // данные, считанные сканером
}

// Payload схема данных QR-кода
type Payload struct {
	BookingID string `json:"booking_id" validate:"required,numeric"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z"`
	EndTime   string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z"`
	Signature string `json:"signature" validate:"required,hexadecimal,len=64"`
}

// parsedPayload данные QR-кода после разбора
type parsedPayload struct {
	BookingID int64
	StartTime time.Time
	EndTime   time.Time
	Signature string
}

// Response результат успешной проверки
type Response struct {
	BookingID  int64
	SpotNumber int64
	EndTime    time.Time
	Entry      *domain.QRAccessLogEntry
}
