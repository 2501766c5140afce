package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerr"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"car_id",
	"spot_number",
	"tariff_id",
	"status",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

var detailsColumns = []string{
	"b.id",
	"b.car_id",
	"b.spot_number",
	"b.tariff_id",
	"b.status",
	"b.start_time",
	"b.end_time",
	"b.created_at",
	"b.updated_at",
	"t.name",
	"c.license_plate",
	"c.make",
	"c.model",
	"c.color",
	"c.user_id",
	"u.email",
	"p.id",
	"p.amount",
	"p.payment_date",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// start_time и end_time записываются только здесь: ни один другой метод репозитория их не обновляет
// Частичные уникальные индексы (активное бронирование на авто / на место) превращаются в ErrActiveBookingExists
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"car_id",
			"spot_number",
			"tariff_id",
			"status",
			"start_time",
			"end_time",
		).
		Values(
			booking.CarID,
			booking.SpotNumber,
			booking.TariffID,
			booking.Status,
			booking.StartTime,
			booking.EndTime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if pgerr.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrActiveBookingExists, pgerr.Constraint(err))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки (FOR UPDATE)
// Должен вызываться внутри транзакции: все изменения статуса бронирования сериализуются через эту блокировку
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CarID,
		&booking.SpotNumber,
		&booking.TariffID,
		&booking.Status,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return &booking, nil
}

// GetDetailsByID получает бронирование вместе с тарифом, автомобилем, владельцем и оплатой
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan booking: %v", ErrScanRow, err)
	}

	return details, nil
}

// HasActiveByCar проверяет, есть ли у автомобиля активное бронирование
func (r *Repository) HasActiveByCar(ctx context.Context, carID int64) (bool, error) {
	return r.exists(ctx, "HasActiveByCar", squirrel.Eq{"car_id": carID, "status": domain.StatusActive})
}

// HasActiveBySpot проверяет, занято ли место активным бронированием
func (r *Repository) HasActiveBySpot(ctx context.Context, spotNumber int64) (bool, error) {
	return r.exists(ctx, "HasActiveBySpot", squirrel.Eq{"spot_number": spotNumber, "status": domain.StatusActive})
}

func (r *Repository) exists(ctx context.Context, op string, where squirrel.Eq) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, op, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус бронирования
// Обновляются только status и updated_at, время начала и окончания не трогаются
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListExpiredActiveIDs возвращает ID активных бронирований, у которых end_time < now
func (r *Repository) ListExpiredActiveIDs(ctx context.Context, now time.Time) ([]int64, error) {
	query, args, err := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Lt{"end_time": now}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredActiveIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryIDs(ctx, "ListExpiredActiveIDs", query, args)
}

// ListUnpaidActiveIDs возвращает ID активных неоплаченных бронирований, начатых не позже startedBefore
func (r *Repository) ListUnpaidActiveIDs(ctx context.Context, startedBefore time.Time) ([]int64, error) {
	query, args, err := psqlbuilder.Select("b.id").
		From("bookings b").
		LeftJoin("payments p ON p.booking_id = b.id").
		Where(squirrel.Eq{"b.status": domain.StatusActive}).
		Where(squirrel.LtOrEq{"b.start_time": startedBefore}).
		Where("p.id IS NULL").
		OrderBy("b.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUnpaidActiveIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryIDs(ctx, "ListUnpaidActiveIDs", query, args)
}

func (r *Repository) queryIDs(ctx context.Context, op, query string, args []interface{}) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %s - scan id: %v", ErrScanRow, op, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return ids, nil
}

// ListByUser получает бронирования пользователя (сначала новые)
// Фильтры Active и Paid опциональны
func (r *Repository) ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := detailsSelect().
		Where(squirrel.Eq{"c.user_id": filter.UserID}).
		OrderBy("b.id DESC")

	if filter.Active != nil {
		if *filter.Active {
			selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": domain.StatusActive})
		} else {
			selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": domain.StatusActive})
		}
	}

	if filter.Paid != nil {
		if *filter.Paid {
			selectBuilder = selectBuilder.Where("p.id IS NOT NULL")
		} else {
			selectBuilder = selectBuilder.Where("p.id IS NULL")
		}
	}

	query, args, err := selectBuilder.ToSql()
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

// ListWithFilter получает бронирования для администратора с фильтрацией и пагинацией
// Возвращает страницу и общее количество записей под фильтром
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AdminBookingsFilter) ([]*domain.BookingDetails, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, squirrel.Eq{"b.status": statuses})
	}
	if filter.Search != "" {
		where = append(where, psqlbuilder.ContainsAny(filter.Search, "u.email", "c.license_plate"))
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("bookings b").
		Join("cars c ON c.id = b.car_id").
		Join("users u ON u.id = c.user_id").
		Where(where).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - scan count: %v", ErrScanRow, err)
	}

	selectBuilder := detailsSelect().
		Where(where).
		OrderBy("b.id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanDetailsRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("bookings b").
		Join("tariffs t ON t.id = b.tariff_id").
		Join("cars c ON c.id = b.car_id").
		Join("users u ON u.id = c.user_id").
		LeftJoin("payments p ON p.booking_id = b.id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetails(row rowScanner) (*domain.BookingDetails, error) {
	var (
		details     domain.BookingDetails
		paymentID   sql.NullInt64
		amount      decimal.NullDecimal
		paymentDate sql.NullTime
	)

	err := row.Scan(
		&details.ID,
		&details.CarID,
		&details.SpotNumber,
		&details.TariffID,
		&details.Status,
		&details.StartTime,
		&details.EndTime,
		&details.CreatedAt,
		&details.UpdatedAt,
		&details.TariffName,
		&details.LicensePlate,
		&details.CarMake,
		&details.CarModel,
		&details.CarColor,
		&details.OwnerID,
		&details.OwnerEmail,
		&paymentID,
		&amount,
		&paymentDate,
	)
	if err != nil {
		return nil, err
	}

	if paymentID.Valid {
		details.Payment = &domain.Payment{
			ID:          paymentID.Int64,
			BookingID:   details.ID,
			Amount:      amount.Decimal,
			PaymentDate: paymentDate.Time,
		}
	}

	return &details, nil
}

// scanDetailsRows сканирует результаты запроса в слайс бронирований
func scanDetailsRows(rows *sql.Rows) ([]*domain.BookingDetails, error) {
	bookings := make([]*domain.BookingDetails, 0)

	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetailsRows - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetailsRows - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
