package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ListPaymentsRequest запрос администратора на список оплат
type ListPaymentsRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// PaymentResponse данные оплаты
type PaymentResponse struct {
	ID          int64           `json:"id"`
	BookingID   int64           `json:"bookingId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"paymentDate"`
	OwnerID     int64           `json:"ownerId,omitempty"`
	OwnerEmail  string          `json:"ownerEmail,omitempty"`
	TariffName  string          `json:"tariffName,omitempty"`
}

// PaymentListResponse ответ со списком оплат
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
	Page     int               `json:"page,omitempty"`
	PageSize int               `json:"pageSize,omitempty"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.PaymentDetails) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:          p.ID,
		BookingID:   p.BookingID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.UTC().Format(domain.TimeFormat),
		OwnerID:     p.OwnerID,
		OwnerEmail:  p.OwnerEmail,
		TariffName:  p.TariffName,
	}
}

// FromDomainPaymentList конвертирует список оплат в DTO
func FromDomainPaymentList(payments []*domain.PaymentDetails) *PaymentListResponse {
	resp := &PaymentListResponse{
		Payments: make([]PaymentResponse, 0, len(payments)),
		Total:    len(payments),
	}

	for _, p := range payments {
		if paymentResp := FromDomainPayment(p); paymentResp != nil {
			resp.Payments = append(resp.Payments, *paymentResp)
		}
	}

	return resp
}
