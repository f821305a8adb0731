package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avdeew/HCC-ReservationService/internal/domain"
	"github.com/avdeew/HCC-ReservationService/pkg/dbmetrics"
	"github.com/avdeew/HCC-ReservationService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

var paymentColumns = []string{
	"id",
	"reservation_id",
	"order_id",
	"payment_key",
	"amount",
	"status",
	"paid_at",
	"fail_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платёж в статусе ready
// Коллизия уникального order_id мапится в ErrDuplicateOrderID
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("reservation_id", "order_id", "amount", "status").
		Values(p.ReservationID, p.OrderID, p.Amount, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: order_id=%s", ErrDuplicateOrderID, p.OrderID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByOrderID получает платёж по внутреннему идентификатору заказа
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	return r.getByWhere(ctx, squirrel.Eq{"order_id": orderID}, "GetByOrderID")
}

// GetByPaymentKey получает платёж по ключу провайдера
func (r *Repository) GetByPaymentKey(ctx context.Context, paymentKey string) (*domain.Payment, error) {
	return r.getByWhere(ctx, squirrel.Eq{"payment_key": paymentKey}, "GetByPaymentKey")
}

// GetByID получает платёж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getByWhere(ctx, squirrel.Eq{"id": id}, "GetByID")
}

func (r *Repository) getByWhere(ctx context.Context, where squirrel.Eq, op string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ReservationID,
		&p.OrderID,
		&p.PaymentKey,
		&p.Amount,
		&p.Status,
		&p.PaidAt,
		&p.FailReason,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, op, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	cancels, err := r.listCancels(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Cancels = cancels

	return &p, nil
}

// MarkPaid помечает платёж оплаченным и сохраняет ключ провайдера
func (r *Repository) MarkPaid(ctx context.Context, id int64, paymentKey string, paidAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusPaid).
		Set("payment_key", paymentKey).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkPaid")
}

// MarkFailed помечает платёж отклонённым с указанием причины
func (r *Repository) MarkFailed(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusFailed).
		Set("fail_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkFailed")
}

// UpdateStatus обновляет статус платежа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// AppendCancel добавляет запись полного или частичного возврата
func (r *Repository) AppendCancel(ctx context.Context, paymentID int64, amount int64, reason string) (*domain.PaymentCancel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_cancels").
		Columns("payment_id", "amount", "reason").
		Values(paymentID, amount, reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AppendCancel - build insert query: %v", ErrBuildQuery, err)
	}

	cancel := &domain.PaymentCancel{
		PaymentID: paymentID,
		Amount:    amount,
		Reason:    reason,
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cancel.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: AppendCancel - execute insert: %v", ErrExecQuery, err)
	}
	cancel.CreatedAt = createdAt.Time

	return cancel, nil
}

// listCancels получает записи возвратов платежа
func (r *Repository) listCancels(ctx context.Context, paymentID int64) ([]domain.PaymentCancel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "payment_id", "amount", "reason", "created_at").
		From("payment_cancels").
		Where(squirrel.Eq{"payment_id": paymentID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listCancels - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listCancels - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cancels := make([]domain.PaymentCancel, 0)
	for rows.Next() {
		var c domain.PaymentCancel
		var createdAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.PaymentID, &c.Amount, &c.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: listCancels - scan row: %v", ErrScanRow, err)
		}
		c.CreatedAt = createdAt.Time
		cancels = append(cancels, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listCancels - rows error: %v", ErrScanRow, err)
	}

	return cancels, nil
}

// execExpectingRow выполняет запрос и требует ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
