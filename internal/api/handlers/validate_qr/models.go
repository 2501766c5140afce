package validate_qr

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	validateQR "github.com/m04kA/SMC-ParkingService/internal/usecase/validate_qr"
)

// ValidateRequest HTTP request model: строка, считанная сканером
type ValidateRequest struct {
	QRData string `json:"qrData"`
}

// GrantedResponse ответ при разрешенном доступе
type GrantedResponse struct {
	Granted    bool   `json:"granted"`
	BookingID  int64  `json:"bookingId"`
	SpotNumber int64  `json:"spotNumber"`
	EndTime    string `json:"endTime"`
	LogID      int64  `json:"logId"`
}

// DeniedResponse ответ при отказе в доступе
type DeniedResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

func FromUseCaseResponse(resp *validateQR.Response) *GrantedResponse {
	out := &GrantedResponse{
		Granted:    true,
		BookingID:  resp.BookingID,
		SpotNumber: resp.SpotNumber,
		EndTime:    resp.EndTime.UTC().Format(domain.TimeFormat),
	}
	if resp.Entry != nil {
		out.LogID = resp.Entry.ID
	}
	return out
}
