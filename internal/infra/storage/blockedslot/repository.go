// Package blockedslot хранение административных блокировок ячеек расписания
//
// Уникальность блокировок логическая, без жесткого ограничения в БД:
// дубликаты безвредны (эффект идемпотентен), сервисный слой избегает их
// upsert-подходом при массовом создании.
package blockedslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/pkg/dbmetrics"
	"github.com/avdeew/HCC-ReservationService/pkg/psqlbuilder"
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

var blockColumns = []string{
	"id",
	"block_date",
	"block_time",
	"package_id",
	"reason",
	"created_at",
}

// Repository репозиторий блокировок слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает блокировки для набора меток времени одной даты
// Возвращает созданные записи с проставленными ID
func (r *Repository) CreateBatch(ctx context.Context, blocks []*domain.BlockedSlot) ([]*domain.BlockedSlot, error) {
	if len(blocks) == 0 {
		return blocks, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("blocked_slots").
		Columns("block_date", "block_time", "package_id", "reason")

	for _, b := range blocks {
		var packageID *int64
		if id, ok := b.Scope.PackageID(); ok {
			packageID = &id
		}
		insertBuilder = insertBuilder.Values(b.Date, b.Time, packageID, b.Reason)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var createdAt sql.NullTime
		if err := rows.Scan(&blocks[i].ID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returning: %v", ErrScanRow, err)
		}
		blocks[i].CreatedAt = createdAt.Time
		i++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// ListByDate получает все блокировки на указанную дату
// Вызывается внутри транзакции проверки вместимости — блокировки читаются
// в том же снимке, что и подсчёт занятости
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_slots").
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("block_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// Delete удаляет блокировку по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// DeleteByDate удаляет все блокировки даты, опционально только одного пакета
// Возвращает количество удалённых записей
func (r *Repository) DeleteByDate(ctx context.Context, date time.Time, packageID *int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"block_date": date})

	if packageID != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"package_id": *packageID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDate - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanBlocks сканирует результаты запроса в слайс блокировок
func scanBlocks(rows *sql.Rows) ([]*domain.BlockedSlot, error) {
	blocks := make([]*domain.BlockedSlot, 0)

	for rows.Next() {
		var block domain.BlockedSlot
		var blockTime types.TimeString
		var packageID *int64
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.Date,
			&blockTime,
			&packageID,
			&block.Reason,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}

		block.Time = blockTime
		if packageID != nil {
			block.Scope = domain.ScopePackage(*packageID)
		} else {
			block.Scope = domain.ScopeAllPackages()
		}
		block.CreatedAt = createdAt.Time

		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
