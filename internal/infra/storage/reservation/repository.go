package reservation

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
	"github.com/avdeew/HCC-ReservationService/pkg/types"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"number",
	"user_id",
	"package_id",
	"reservation_date",
	"reservation_time",
	"status",
	"patient_name",
	"patient_phone",
	"patient_birth_date",
	"patient_gender",
	"total_amount",
	"discount_amount",
	"final_amount",
	"payment_id",
	"note",
	"admin_memo",
	"cancelled_at",
	"cancel_reason",
	"refund_amount",
	"created_at",
	"updated_at",
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
// Если в контексте передана активная транзакция, использует её —
// проверка вместимости и вставка обязаны выполняться в одной транзакции,
// иначе возможна гонка двух конкурентных запросов за последнее место.
//
// Коллизия уникального номера мапится в ErrDuplicateNumber: вызывающая
// сторона перегенерирует номер и повторяет вставку, не показывая ошибку клиенту.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"number",
			"user_id",
			"package_id",
			"reservation_date",
			"reservation_time",
			"status",
			"patient_name",
			"patient_phone",
			"patient_birth_date",
			"patient_gender",
			"total_amount",
			"discount_amount",
			"final_amount",
			"payment_id",
			"note",
			"admin_memo",
		).
		Values(
			res.Number,
			res.UserID,
			res.PackageID,
			res.ReservationDate,
			res.ReservationTime,
			res.Status,
			res.Patient.Name,
			res.Patient.Phone,
			res.Patient.BirthDate,
			res.Patient.Gender,
			res.TotalAmount,
			res.DiscountAmount,
			res.FinalAmount,
			res.PaymentID,
			res.Note,
			res.AdminMemo,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: number=%s", ErrDuplicateNumber, res.Number)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getByWhere(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByNumber получает бронирование по человекочитаемому номеру
func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.Reservation, error) {
	return r.getByWhere(ctx, squirrel.Eq{"number": number}, "GetByNumber")
}

func (r *Repository) getByWhere(ctx context.Context, where squirrel.Eq, op string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}

	return res, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reservation_date DESC, reservation_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListActiveByPackageAndDate получает активные (pending|confirmed) бронирования
// пакета на указанную дату — источник данных для подсчёта занятости ячеек.
//
// Внутри транзакции добавляет FOR UPDATE: строки дня блокируются до конца
// проверки вместимости, чтобы конкурентные вставки в ту же ячейку
// сериализовались (usecase создания и переноса).
func (r *Repository) ListActiveByPackageAndDate(ctx context.Context, packageID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{
			"package_id":       packageID,
			"reservation_date": date,
			"status":           activeStatuses,
		}).
		OrderBy("reservation_time ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByPackageAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByPackageAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListWithFilter получает бронирования с гибкой фильтрацией (административная выборка)
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations")

	if filter.PackageID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"package_id": *filter.PackageID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": []string{
			string(domain.StatusCancelled),
			string(domain.StatusNoShow),
		}})
	}

	// Для выборки одного дня сортируем по времени слота, иначе сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("reservation_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, reservation_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования, опционально добавляя служебную заметку
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, adminMemo *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if adminMemo != nil {
		updateBuilder = updateBuilder.Set("admin_memo", *adminMemo)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel отменяет бронирование: статус, причина, сумма возврата, отметка времени
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, refundAmount int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancel_reason", reason).
		Set("refund_amount", refundAmount).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// Reschedule переносит бронирование на другую ячейку расписания
// Меняются только дата и время; номер, снимок пациента и суммы не трогаются
func (r *Repository) Reschedule(ctx context.Context, id int64, newDate time.Time, newTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("reservation_date", newDate).
		Set("reservation_time", newTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Reschedule")
}

// SetPaymentID привязывает актуальный платёж к бронированию
func (r *Repository) SetPaymentID(ctx context.Context, id int64, paymentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentID - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaymentID")
}

// Delete физически удаляет бронирование
// Используется только административной чисткой отменённых записей
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

// execExpectingRow выполняет запрос и требует ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservation сканирует одну строку результата
func scanReservation(scan func(dest ...interface{}) error) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&res.ID,
		&res.Number,
		&res.UserID,
		&res.PackageID,
		&res.ReservationDate,
		&res.ReservationTime,
		&res.Status,
		&res.Patient.Name,
		&res.Patient.Phone,
		&res.Patient.BirthDate,
		&res.Patient.Gender,
		&res.TotalAmount,
		&res.DiscountAmount,
		&res.FinalAmount,
		&res.PaymentID,
		&res.Note,
		&res.AdminMemo,
		&res.CancelledAt,
		&res.CancelReason,
		&res.RefundAmount,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
