package spot

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

var spotColumns = []string{"spot_number", "status", "created_at", "updated_at"}

// Repository репозиторий для работы с парковочными местами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает парковочное место
func (r *Repository) Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_spots").
		Columns("spot_number", "status").
		Values(spot.Number, spot.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&spot.CreatedAt, &spot.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrSpotAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return spot, nil
}

// GetByNumber получает место по номеру
func (r *Repository) GetByNumber(ctx context.Context, number int64) (*domain.ParkingSpot, error) {
	return r.getByNumber(ctx, number, false)
}

// GetByNumberForUpdate получает место по номеру с блокировкой строки (FOR UPDATE)
func (r *Repository) GetByNumberForUpdate(ctx context.Context, number int64) (*domain.ParkingSpot, error) {
	return r.getByNumber(ctx, number, true)
}

func (r *Repository) getByNumber(ctx context.Context, number int64, forUpdate bool) (*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(spotColumns...).
		From("parking_spots").
		Where(squirrel.Eq{"spot_number": number})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - build select query: %v", ErrBuildQuery, err)
	}

	var spot domain.ParkingSpot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&spot.Number,
		&spot.Status,
		&spot.CreatedAt,
		&spot.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - scan spot: %v", ErrScanRow, err)
	}

	return &spot, nil
}

// List возвращает все места, отсортированные по номеру
func (r *Repository) List(ctx context.Context) ([]*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(spotColumns...).
		From("parking_spots").
		OrderBy("spot_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spots := make([]*domain.ParkingSpot, 0)
	for rows.Next() {
		var spot domain.ParkingSpot
		if err := rows.Scan(&spot.Number, &spot.Status, &spot.CreatedAt, &spot.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		spots = append(spots, &spot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return spots, nil
}

// UpdateStatus обновляет статус места
func (r *Repository) UpdateStatus(ctx context.Context, number int64, status domain.SpotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_spots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"spot_number": number}).
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
		return ErrSpotNotFound
	}

	return nil
}

// Delete удаляет место
// Место с историей бронирований удалить нельзя (ErrSpotReferenced)
func (r *Repository) Delete(ctx context.Context, number int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("parking_spots").
		Where(squirrel.Eq{"spot_number": number}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsForeignKeyViolation(err) {
		return ErrSpotReferenced
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpotNotFound
	}

	return nil
}
