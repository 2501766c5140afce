package car

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

var carColumns = []string{
	"c.id",
	"c.user_id",
	"c.license_plate",
	"c.make",
	"c.model",
	"c.color",
	"c.is_deleted",
	"c.registered_at",
	"u.email",
}

// Repository репозиторий автомобилей пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// EnsureUser сохраняет пользователя из identity-провайдера, обновляя email при повторном обращении
func (r *Repository) EnsureUser(ctx context.Context, principal domain.Principal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "email", "is_staff").
		Values(principal.UserID, principal.Email, principal.IsStaff).
		Suffix("ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, is_staff = EXCLUDED.is_staff").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: EnsureUser - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: EnsureUser - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Create регистрирует автомобиль
func (r *Repository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cars").
		Columns("user_id", "license_plate", "make", "model", "color").
		Values(car.UserID, car.LicensePlate, car.Make, car.Model, car.Color).
		Suffix("RETURNING id, is_deleted, registered_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&car.ID, &car.IsDeleted, &car.RegisteredAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrLicensePlateTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return car, nil
}

// GetByID получает автомобиль по ID (включая удаленные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CarDetails, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает автомобиль по ID с блокировкой строки (FOR UPDATE)
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.CarDetails, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.CarDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := carSelect().Where(squirrel.Eq{"c.id": id})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF c")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	car, err := scanCar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan car: %v", ErrScanRow, err)
	}

	return car, nil
}

// ListByUser возвращает не удаленные автомобили пользователя
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.CarDetails, error) {
	query, args, err := carSelect().
		Where(squirrel.Eq{"c.user_id": userID, "c.is_deleted": false}).
		OrderBy("c.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByUser", query, args)
}

// List возвращает все автомобили; удаленные включаются только при includeDeleted
func (r *Repository) List(ctx context.Context, includeDeleted bool) ([]*domain.CarDetails, error) {
	selectBuilder := carSelect().OrderBy("c.id ASC")
	if !includeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"c.is_deleted": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

// SoftDelete помечает автомобиль удаленным
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cars").
		Set("is_deleted", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCarNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.CarDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	cars := make([]*domain.CarDetails, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		cars = append(cars, car)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return cars, nil
}

func carSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(carColumns...).
		From("cars c").
		Join("users u ON u.id = c.user_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCar(row rowScanner) (*domain.CarDetails, error) {
	var car domain.CarDetails

	err := row.Scan(
		&car.ID,
		&car.UserID,
		&car.LicensePlate,
		&car.Make,
		&car.Model,
		&car.Color,
		&car.IsDeleted,
		&car.RegisteredAt,
		&car.OwnerEmail,
	)
	if err != nil {
		return nil, err
	}

	return &car, nil
}
