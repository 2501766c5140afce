package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerr"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var detailsColumns = []string{
	"p.id",
	"p.booking_id",
	"p.amount",
	"p.payment_date",
	"c.user_id",
	"u.email",
	"t.name",
}

// Repository репозиторий оплат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оплат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает оплату бронирования
// Уникальный индекс по booking_id гарантирует не более одной оплаты
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("booking_id", "amount").
		Values(payment.BookingID, payment.Amount).
		Suffix("RETURNING id, payment_date").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &payment.PaymentDate)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrAlreadyPaid
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return payment, nil
}

// GetByBookingID получает оплату бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "amount", "payment_date").
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var payment domain.Payment
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.PaymentDate,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan payment: %v", ErrScanRow, err)
	}

	return &payment, nil
}

// ListByUser возвращает оплаты бронирований пользователя (сначала новые)
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.PaymentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"c.user_id": userID}).
		OrderBy("p.payment_date DESC", "p.id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetailsRows(rows)
}

// List возвращает страницу всех оплат и их общее количество
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*domain.PaymentDetails, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From("payments").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	selectBuilder := detailsSelect().OrderBy("p.payment_date DESC", "p.id DESC")
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}
	if offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(offset))
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

	payments, err := scanDetailsRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("payments p").
		Join("bookings b ON b.id = p.booking_id").
		Join("tariffs t ON t.id = b.tariff_id").
		Join("cars c ON c.id = b.car_id").
		Join("users u ON u.id = c.user_id")
}

func scanDetailsRows(rows *sql.Rows) ([]*domain.PaymentDetails, error) {
	payments := make([]*domain.PaymentDetails, 0)

	for rows.Next() {
		var payment domain.PaymentDetails
		err := rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.Amount,
			&payment.PaymentDate,
			&payment.OwnerID,
			&payment.OwnerEmail,
			&payment.TariffName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetailsRows - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetailsRows - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
