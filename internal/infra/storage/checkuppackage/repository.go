// Package checkuppackage доступ к каталогу пакетов обследований
// Каталог авторизуется админкой в другом сервисе; здесь только чтение
package checkuppackage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/pkg/dbmetrics"
	"github.com/avdeew/HCC-ReservationService/pkg/psqlbuilder"
)

var packageColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"discount_price",
	"duration_minutes",
	"max_reservations_per_slot",
	"available_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога пакетов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пакетов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пакет по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CheckupPackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("checkup_packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	pkg, err := scanPackage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan package: %v", ErrScanRow, err)
	}

	return pkg, nil
}

// List получает все пакеты каталога
func (r *Repository) List(ctx context.Context) ([]*domain.CheckupPackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("checkup_packages").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	packages := make([]*domain.CheckupPackage, 0)
	for rows.Next() {
		pkg, err := scanPackage(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return packages, nil
}

// scanPackage сканирует одну строку каталога
// available_days хранится как int[] (0 = воскресенье ... 6 = суббота)
func scanPackage(scan func(dest ...interface{}) error) (*domain.CheckupPackage, error) {
	var pkg domain.CheckupPackage
	var availableDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Description,
		&pkg.Price,
		&pkg.DiscountPrice,
		&pkg.DurationMinutes,
		&pkg.MaxReservationsPerSlot,
		&availableDays,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	pkg.AvailableDays = make([]time.Weekday, len(availableDays))
	for i, d := range availableDays {
		pkg.AvailableDays[i] = time.Weekday(d)
	}

	pkg.CreatedAt = createdAt.Time
	pkg.UpdatedAt = updatedAt.Time

	return &pkg, nil
}
