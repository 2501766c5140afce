package issue_qr

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	issueQR "github.com/m04kA/SMC-ParkingService/internal/usecase/issue_qr"
)

// QRResponse HTTP response model; qrData кодируется в изображение клиентом
type QRResponse struct {
	BookingID int64  `json:"bookingId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	QRData    string `json:"qrData"`
}

func FromUseCaseResponse(resp *issueQR.Response) *QRResponse {
	return &QRResponse{
		BookingID: resp.BookingID,
		StartTime: resp.StartTime.Format(domain.TimeFormat),
		EndTime:   resp.EndTime.Format(domain.TimeFormat),
		QRData:    resp.Token,
	}
}
