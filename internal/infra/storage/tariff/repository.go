package tariff

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
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var tariffColumns = []string{
	"id",
	"name",
	"price",
	"duration",
	"duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

var historyColumns = []string{"id", "tariff_id", "old_price", "new_price", "changed_by", "changed_at"}

// Repository репозиторий тарифов и истории их цен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает тариф
func (r *Repository) Create(ctx context.Context, tariff *domain.Tariff) (*domain.Tariff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tariffs").
		Columns("name", "price", "duration", "duration_minutes", "is_active").
		Values(tariff.Name, tariff.Price, tariff.Duration, tariff.DurationMinutes, tariff.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&tariff.ID, &tariff.CreatedAt, &tariff.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrTariffNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return tariff, nil
}

// GetByID получает тариф по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tariff, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает тариф по ID с блокировкой строки (FOR UPDATE)
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Tariff, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Tariff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(tariffColumns...).
		From("tariffs").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	tariff, err := scanTariff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTariffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan tariff: %v", ErrScanRow, err)
	}

	return tariff, nil
}

// List возвращает тарифы; неактивные включаются только при includeInactive
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]*domain.Tariff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(tariffColumns...).
		From("tariffs").
		OrderBy("id ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tariffs := make([]*domain.Tariff, 0)
	for rows.Next() {
		tariff, err := scanTariff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		tariffs = append(tariffs, tariff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return tariffs, nil
}

// Update сохраняет изменяемые поля тарифа
func (r *Repository) Update(ctx context.Context, tariff *domain.Tariff) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tariffs").
		Set("name", tariff.Name).
		Set("price", tariff.Price).
		Set("duration", tariff.Duration).
		Set("duration_minutes", tariff.DurationMinutes).
		Set("is_active", tariff.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tariff.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsUniqueViolation(err) {
		return ErrTariffNameTaken
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTariffNotFound
	}

	return nil
}

// CreatePriceHistory добавляет запись об изменении цены тарифа
func (r *Repository) CreatePriceHistory(ctx context.Context, entry *domain.TariffPriceHistory) (*domain.TariffPriceHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tariff_price_history").
		Columns("tariff_id", "old_price", "new_price", "changed_by").
		Values(entry.TariffID, entry.OldPrice, entry.NewPrice, entry.ChangedBy).
		Suffix("RETURNING id, changed_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePriceHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.ChangedAt); err != nil {
		return nil, fmt.Errorf("%w: CreatePriceHistory - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// ListPriceHistory возвращает историю цен (сначала новые)
// tariffID == nil - история по всем тарифам
func (r *Repository) ListPriceHistory(ctx context.Context, tariffID *int64) ([]*domain.TariffPriceHistory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(historyColumns...).
		From("tariff_price_history").
		OrderBy("changed_at DESC", "id DESC")

	if tariffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"tariff_id": *tariffID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPriceHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPriceHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	history := make([]*domain.TariffPriceHistory, 0)
	for rows.Next() {
		var entry domain.TariffPriceHistory
		err := rows.Scan(
			&entry.ID,
			&entry.TariffID,
			&entry.OldPrice,
			&entry.NewPrice,
			&entry.ChangedBy,
			&entry.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPriceHistory - scan row: %v", ErrScanRow, err)
		}
		history = append(history, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPriceHistory - rows error: %v", ErrScanRow, err)
	}

	return history, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTariff(row rowScanner) (*domain.Tariff, error) {
	var (
		tariff          domain.Tariff
		durationMinutes sql.NullInt64
	)

	err := row.Scan(
		&tariff.ID,
		&tariff.Name,
		&tariff.Price,
		&tariff.Duration,
		&durationMinutes,
		&tariff.IsActive,
		&tariff.CreatedAt,
		&tariff.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if durationMinutes.Valid {
		tariff.DurationMinutes = ptr.Ptr(int(durationMinutes.Int64))
	}

	return &tariff, nil
}
