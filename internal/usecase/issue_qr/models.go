package issue_qr

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на выпуск QR-кода
type Request struct {
	Principal domain.Principal
	BookingID int64
}

// Response подписанные данные для QR-кода
// Отрисовка изображения выполняется клиентом
type Response struct {
	BookingID int64
	StartTime time.Time
	EndTime   time.Time
	Token     string // JSON: booking_id, start_time, end_time, signature
}
