package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// ListAccessLogsRequest запрос администратора на просмотр журнала доступа
type ListAccessLogsRequest struct {
	Granted   *bool  `json:"granted,omitempty"`
	BookingID *int64 `json:"bookingId,omitempty"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
}

// AccessLogResponse запись журнала доступа
type AccessLogResponse struct {
	ID            int64     `json:"id"`
	QRData        string    `json:"qrData"`
	BookingID     *int64    `json:"bookingId,omitempty"`
	AccessGranted bool      `json:"accessGranted"`
	FailureReason *string   `json:"failureReason,omitempty"`
	Time          time.Time `json:"time"`
}

// AccessLogListResponse страница журнала доступа
type AccessLogListResponse struct {
	Logs     []AccessLogResponse `json:"logs"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
}

// FromDomainEntry конвертирует запись журнала в DTO
func FromDomainEntry(e *domain.QRAccessLogEntry) *AccessLogResponse {
	if e == nil {
		return nil
	}

	resp := &AccessLogResponse{
		ID:            e.ID,
		QRData:        e.QRData,
		BookingID:     e.BookingID,
		AccessGranted: e.AccessGranted,
		Time:          e.Time,
	}
	if e.FailureReason != nil {
		resp.FailureReason = ptr.Ptr(string(*e.FailureReason))
	}

	return resp
}

// FromDomainEntryList конвертирует страницу журнала в DTO
func FromDomainEntryList(entries []*domain.QRAccessLogEntry, total, page, pageSize int) *AccessLogListResponse {
	resp := &AccessLogListResponse{
		Logs:     make([]AccessLogResponse, 0, len(entries)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}

	for _, e := range entries {
		if entryResp := FromDomainEntry(e); entryResp != nil {
			resp.Logs = append(resp.Logs, *entryResp)
		}
	}

	return resp
}
