package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Active *bool `json:"active,omitempty"` // true - только активные, false - только завершенные
	Paid   *bool `json:"paid,omitempty"`   // true - только оплаченные, false - только неоплаченные
}

// GetAdminBookingsRequest запрос администратора на получение бронирований
type GetAdminBookingsRequest struct {
	Statuses []string `json:"statuses,omitempty"` // пустой список - все статусы
	Search   string   `json:"search,omitempty"`   // email владельца или госномер
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAdminBookingsRequest) ToDomainFilter() (domain.AdminBookingsFilter, error) {
	filter := domain.AdminBookingsFilter{
		Search: r.Search,
		Limit:  r.PageSize,
		Offset: domain.PageOffset(r.Page, r.PageSize),
	}

	for _, s := range r.Statuses {
		status, err := ToDomainBookingStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// Response модели

// PaymentResponse данные оплаты
type PaymentResponse struct {
	ID          int64           `json:"id"`
	BookingID   int64           `json:"bookingId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"paymentDate"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	CarID      int64  `json:"carId"`
	SpotNumber int64  `json:"spotNumber"`
	TariffID   int64  `json:"tariffId"`
	Status     string `json:"status"`
	StartTime  string `json:"startTime"` // RFC 3339, UTC
	EndTime    string `json:"endTime"`   // RFC 3339, UTC

	// Связанные данные
	TariffName   string  `json:"tariffName"`
	LicensePlate string  `json:"licensePlate"`
	CarMake      *string `json:"carMake,omitempty"`
	CarModel     *string `json:"carModel,omitempty"`
	CarColor     *string `json:"carColor,omitempty"`
	OwnerID      int64   `json:"ownerId"`
	OwnerEmail   string  `json:"ownerEmail"`

	IsPaid  bool             `json:"isPaid"`
	Payment *PaymentResponse `json:"payment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
	Page     int               `json:"page,omitempty"`
	PageSize int               `json:"pageSize,omitempty"`
}

// Методы конвертации

// FromDomainPayment конвертирует оплату в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:          p.ID,
		BookingID:   p.BookingID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.UTC().Format(domain.TimeFormat),
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.BookingDetails) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID,
		CarID:        b.CarID,
		SpotNumber:   b.SpotNumber,
		TariffID:     b.TariffID,
		Status:       string(b.Status),
		StartTime:    b.StartTime.UTC().Format(domain.TimeFormat),
		EndTime:      b.EndTime.UTC().Format(domain.TimeFormat),
		TariffName:   b.TariffName,
		LicensePlate: b.LicensePlate,
		CarMake:      b.CarMake,
		CarModel:     b.CarModel,
		CarColor:     b.CarColor,
		OwnerID:      b.OwnerID,
		OwnerEmail:   b.OwnerEmail,
		IsPaid:       b.IsPaid(),
		Payment:      FromDomainPayment(b.Payment),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.BookingDetails) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
