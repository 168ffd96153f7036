package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	"github.com/KUL-Services/bookly-sub001/pkg/dbmetrics"
	"github.com/KUL-Services/bookly-sub001/pkg/psqlbuilder"
	"github.com/KUL-Services/bookly-sub001/pkg/types"
)

// Repository репозиторий для работы с рабочими часами сотрудников
// Хранение: строка на (staff_id, weekday), смены с перерывами - в JSONB
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// shiftJSON JSONB-схема смены
type shiftJSON struct {
	ID     string      `json:"id"`
	Start  string      `json:"start"`
	End    string      `json:"end"`
	Breaks []breakJSON `json:"breaks,omitempty"`
}

// breakJSON JSONB-схема перерыва внутри смены
type breakJSON struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// GetByStaff получает недельное расписание сотрудника
// Отсутствие строк - не ошибка: день без записи считается нерабочим
func (r *Repository) GetByStaff(ctx context.Context, staffID string) (*domain.WeeklyStaffHours, error) {
	hours, err := r.GetByStaffIDs(ctx, []string{staffID})
	if err != nil {
		return nil, err
	}

	if weekly, ok := hours[staffID]; ok {
		return weekly, nil
	}
	return &domain.WeeklyStaffHours{
		StaffID: staffID,
		Days:    make(map[time.Weekday]domain.DayHours),
	}, nil
}

// GetByStaffIDs получает недельные расписания группы сотрудников одним запросом
// Сотрудники без записей в результат не попадают
func (r *Repository) GetByStaffIDs(ctx context.Context, staffIDs []string) (map[string]*domain.WeeklyStaffHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"staff_id",
		"weekday",
		"is_working",
		"shifts",
	).
		From("staff_working_hours").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		OrderBy("staff_id ASC, weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string]*domain.WeeklyStaffHours)

	for rows.Next() {
		var (
			staffID   string
			weekday   int
			isWorking bool
			rawShifts []byte
		)
		if err := rows.Scan(&staffID, &weekday, &isWorking, &rawShifts); err != nil {
			return nil, fmt.Errorf("%w: GetByStaffIDs - scan row: %v", ErrScanRow, err)
		}

		shifts, err := decodeShifts(rawShifts)
		if err != nil {
			return nil, err
		}

		weekly, ok := result[staffID]
		if !ok {
			weekly = &domain.WeeklyStaffHours{
				StaffID: staffID,
				Days:    make(map[time.Weekday]domain.DayHours),
			}
			result[staffID] = weekly
		}

		weekly.Days[time.Weekday(weekday)] = domain.DayHours{
			Weekday:   time.Weekday(weekday),
			IsWorking: isWorking,
			Shifts:    shifts,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStaffIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpsertDay создает или заменяет расписание сотрудника на день недели
func (r *Repository) UpsertDay(ctx context.Context, staffID string, day domain.DayHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rawShifts, err := encodeShifts(day.Shifts)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert("staff_working_hours").
		Columns("staff_id", "weekday", "is_working", "shifts").
		Values(staffID, int(day.Weekday), day.IsWorking, rawShifts).
		Suffix("ON CONFLICT (staff_id, weekday) DO UPDATE SET is_working = EXCLUDED.is_working, shifts = EXCLUDED.shifts, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertDay - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDay - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func encodeShifts(shifts []domain.Shift) ([]byte, error) {
	out := make([]shiftJSON, 0, len(shifts))
	for _, s := range shifts {
		sj := shiftJSON{
			ID:    s.ID,
			Start: s.Start.String(),
			End:   s.End.String(),
		}
		for _, b := range s.Breaks {
			sj.Breaks = append(sj.Breaks, breakJSON{
				ID:    b.ID,
				Start: b.Start.String(),
				End:   b.End.String(),
			})
		}
		out = append(out, sj)
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeShifts, err)
	}
	return raw, nil
}

func decodeShifts(raw []byte) ([]domain.Shift, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var in []shiftJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeShifts, err)
	}

	shifts := make([]domain.Shift, 0, len(in))
	for _, sj := range in {
		shift := domain.Shift{
			ID:    sj.ID,
			Start: types.TimeString(sj.Start),
			End:   types.TimeString(sj.End),
		}
		for _, bj := range sj.Breaks {
			shift.Breaks = append(shift.Breaks, domain.Break{
				ID:    bj.ID,
				Start: types.TimeString(bj.Start),
				End:   types.TimeString(bj.End),
			})
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}
