package accesslog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var logColumns = []string{"id", "qr_data", "booking_id", "access_granted", "failure_reason", "time"}

// Repository журнал попыток доступа по QR-коду
// Записи только добавляются: методов изменения и удаления нет
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр журнала доступа
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись о попытке доступа
func (r *Repository) Create(ctx context.Context, entry *domain.QRAccessLogEntry) (*domain.QRAccessLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("qr_access_logs").
		Columns("qr_data", "booking_id", "access_granted", "failure_reason", "time").
		Values(entry.QRData, entry.BookingID, entry.AccessGranted, entry.FailureReason, entry.Time).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// List возвращает страницу журнала (сначала новые) и общее количество записей под фильтром
func (r *Repository) List(ctx context.Context, filter domain.AccessLogFilter) ([]*domain.QRAccessLogEntry, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Eq{}
	if filter.Granted != nil {
		where["access_granted"] = *filter.Granted
	}
	if filter.BookingID != nil {
		where["booking_id"] = *filter.BookingID
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("qr_access_logs").
		Where(where).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	selectBuilder := psqlbuilder.Select(logColumns...).
		From("qr_access_logs").
		Where(where).
		OrderBy("time DESC", "id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.QRAccessLogEntry, 0)
	for rows.Next() {
		var (
			entry     domain.QRAccessLogEntry
			bookingID sql.NullInt64
			reason    sql.NullString
		)

		err := rows.Scan(&entry.ID, &entry.QRData, &bookingID, &entry.AccessGranted, &reason, &entry.Time)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		if bookingID.Valid {
			entry.BookingID = ptr.Ptr(bookingID.Int64)
		}
		if reason.Valid {
			entry.FailureReason = ptr.Ptr(domain.AccessFailureReason(reason.String))
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return entries, total, nil
}
