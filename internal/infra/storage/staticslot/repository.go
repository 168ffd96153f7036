package staticslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	"github.com/KUL-Services/bookly-sub001/pkg/dbmetrics"
	"github.com/KUL-Services/bookly-sub001/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"service_name",
	"start_time",
	"end_time",
	"capacity",
	"room_id",
	"instructor_staff_id",
	"is_cancelled",
}

// Repository репозиторий для работы с расписанием статичных слотов
// Слоты - повторяющиеся ежедневные позиции расписания; точечные изменения
// на конкретную дату хранятся отдельно в slot_overrides
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый статичный слот
func (r *Repository) Create(ctx context.Context, slot *domain.StaticSlot) (*domain.StaticSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("static_slots").
		Columns(
			"id",
			"service_name",
			"start_time",
			"end_time",
			"capacity",
			"room_id",
			"instructor_staff_id",
			"is_cancelled",
		).
		Values(
			slot.ID,
			slot.ServiceName,
			slot.StartTime,
			slot.EndTime,
			slot.Capacity,
			slot.RoomID,
			slot.InstructorStaffID,
			slot.IsCancelled,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, slot.ID)
	}

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.StaticSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("static_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.StaticSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.ServiceName,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&slot.RoomID,
		&slot.InstructorStaffID,
		&slot.IsCancelled,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &slot, nil
}

// ListByRooms получает слоты указанных залов
// Порядок: по времени начала, затем по id для стабильности
func (r *Repository) ListByRooms(ctx context.Context, roomIDs []string) ([]*domain.StaticSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("static_slots").
		Where(squirrel.Eq{"room_id": roomIDs}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetOverride получает переопределение слота на конкретную дату
func (r *Repository) GetOverride(ctx context.Context, slotID string, date time.Time) (*domain.SlotOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_id",
		"override_date",
		"capacity",
		"is_cancelled",
	).
		From("slot_overrides").
		Where(squirrel.Eq{"slot_id": slotID, "override_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	var override domain.SlotOverride
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.SlotID,
		&override.Date,
		&override.Capacity,
		&override.IsCancelled,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan override: %v", ErrScanRow, err)
	}

	return &override, nil
}

// ListOverridesForDate получает все переопределения слотов на дату
// Результат - map slot_id -> override для склейки со слотами
func (r *Repository) ListOverridesForDate(ctx context.Context, date time.Time) (map[string]*domain.SlotOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_id",
		"override_date",
		"capacity",
		"is_cancelled",
	).
		From("slot_overrides").
		Where(squirrel.Eq{"override_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make(map[string]*domain.SlotOverride)
	for rows.Next() {
		var override domain.SlotOverride
		err := rows.Scan(
			&override.SlotID,
			&override.Date,
			&override.Capacity,
			&override.IsCancelled,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOverridesForDate - scan row: %v", ErrScanRow, err)
		}
		overrides[override.SlotID] = &override
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverridesForDate - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// UpsertOverride создает или обновляет переопределение слота на дату
// nil-поля сохраняются как NULL и означают "взять значение слота"
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.SlotOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_overrides").
		Columns("slot_id", "override_date", "capacity", "is_cancelled").
		Values(override.SlotID, override.Date, override.Capacity, override.IsCancelled).
		Suffix("ON CONFLICT (slot_id, override_date) DO UPDATE SET capacity = EXCLUDED.capacity, is_cancelled = EXCLUDED.is_cancelled").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertOverride - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertOverride - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.StaticSlot, error) {
	slots := make([]*domain.StaticSlot, 0)

	for rows.Next() {
		var slot domain.StaticSlot
		err := rows.Scan(
			&slot.ID,
			&slot.ServiceName,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Capacity,
			&slot.RoomID,
			&slot.InstructorStaffID,
			&slot.IsCancelled,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
