package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	"github.com/KUL-Services/bookly-sub001/pkg/dbmetrics"
	"github.com/KUL-Services/bookly-sub001/pkg/psqlbuilder"
)

// Колонки таблицы calendar_events
// Таблица плоская: дискриминатор kind + nullable поля каждого варианта.
// Сборка tagged union происходит при сканировании (см. scanEvent)
var eventColumns = []string{
	"id",
	"kind",
	"title",
	"event_date",
	"start_time",
	"end_time",
	"all_day",
	"staff_id",
	"room_id",
	"slot_id",
	"service_name",
	"customer_name",
	"price",
	"status",
	"payment_status",
	"selection_method",
	"starred",
	"party_size",
	"notes",
	"booking_ref",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с событиями календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое событие календаря
// ID задается вызывающей стороной; занятый id - ошибка ErrDuplicateID,
// существующая запись при этом не перезаписывается.
//
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Транзакция нужна при создании бронирования с проверкой вместимости слота
// (для предотвращения race condition)
func (r *Repository) Create(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := flattenEvent(event)

	query, args, err := psqlbuilder.Insert("calendar_events").
		Columns(
			"id",
			"kind",
			"title",
			"event_date",
			"start_time",
			"end_time",
			"all_day",
			"staff_id",
			"room_id",
			"slot_id",
			"service_name",
			"customer_name",
			"price",
			"status",
			"payment_status",
			"selection_method",
			"starred",
			"party_size",
			"notes",
			"booking_ref",
			"reason",
		).
		Values(
			event.ID,
			event.Kind,
			event.Title,
			event.Date,
			event.StartTime,
			event.EndTime,
			event.AllDay,
			row.staffID,
			row.roomID,
			row.slotID,
			row.serviceName,
			row.customerName,
			row.price,
			row.status,
			row.paymentStatus,
			row.selectionMethod,
			row.starred,
			row.partySize,
			row.notes,
			row.bookingRef,
			row.reason,
		).
		Suffix("ON CONFLICT (id) DO NOTHING RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		// Конфликт по id - вставка не произошла
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, event.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return event, nil
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("calendar_events").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	event, err := scanEvent(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %v", ErrScanRow, err)
	}

	return event, nil
}

// Update полностью заменяет данные события по его ID
// Kind события при этом может измениться (например booking -> timeOff)
func (r *Repository) Update(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := flattenEvent(event)

	query, args, err := psqlbuilder.Update("calendar_events").
		Set("kind", event.Kind).
		Set("title", event.Title).
		Set("event_date", event.Date).
		Set("start_time", event.StartTime).
		Set("end_time", event.EndTime).
		Set("all_day", event.AllDay).
		Set("staff_id", row.staffID).
		Set("room_id", row.roomID).
		Set("slot_id", row.slotID).
		Set("service_name", row.serviceName).
		Set("customer_name", row.customerName).
		Set("price", row.price).
		Set("status", row.status).
		Set("payment_status", row.paymentStatus).
		Set("selection_method", row.selectionMethod).
		Set("starred", row.starred).
		Set("party_size", row.partySize).
		Set("notes", row.notes).
		Set("booking_ref", row.bookingRef).
		Set("reason", row.reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": event.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return event, nil
}

// Delete удаляет событие по ID
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_events").
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
		return ErrEventNotFound
	}

	return nil
}

// ListWithFilter получает события с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (From, To) - опционально
// - Ресурсу (StaffID, RoomID, SlotID) - опционально
// - Виду события (Kind) - опционально
// - Включению отмененных бронирований (IncludeCancelled)
//
// Если запрос выполняется в транзакции и период сужен до одной даты,
// добавляется FOR UPDATE для блокировки строк на время проверки вместимости
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(eventColumns...).
		From("calendar_events")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"event_date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"event_date": *filter.To})
	}

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.SlotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_id": *filter.SlotID})
	}

	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}

	if !filter.IncludeCancelled {
		// TRUE OR NULL = TRUE, поэтому NULL-статус небукинговых событий не отфильтрует их
		selectBuilder = selectBuilder.Where(
			squirrel.Expr("(kind <> ? OR status <> ?)", domain.KindBooking, domain.StatusCancelled),
		)
	}

	selectBuilder = selectBuilder.OrderBy("event_date ASC, start_time ASC, id ASC")

	singleDate := filter.From != nil && filter.To != nil && filter.From.Equal(*filter.To)
	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
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

	return scanEvents(rows)
}

// eventRow nullable-представление вариантных полей события для вставки/обновления
type eventRow struct {
	staffID         *string
	roomID          *string
	slotID          *string
	serviceName     sql.NullString
	customerName    sql.NullString
	price           sql.NullFloat64
	status          sql.NullString
	paymentStatus   sql.NullString
	selectionMethod sql.NullString
	starred         sql.NullBool
	partySize       sql.NullInt64
	notes           *string
	bookingRef      sql.NullString
	reason          *string
}

// flattenEvent раскладывает tagged union по nullable-колонкам
func flattenEvent(event *domain.CalendarEvent) eventRow {
	var row eventRow

	switch event.Kind {
	case domain.KindBooking:
		if event.Booking == nil {
			return row
		}
		b := event.Booking
		row.staffID = b.StaffID
		row.roomID = b.RoomID
		row.slotID = b.SlotID
		row.serviceName = sql.NullString{String: b.ServiceName, Valid: true}
		row.customerName = sql.NullString{String: b.CustomerName, Valid: true}
		row.price = sql.NullFloat64{Float64: b.Price, Valid: true}
		row.status = sql.NullString{String: string(b.Status), Valid: true}
		row.paymentStatus = sql.NullString{String: string(b.PaymentStatus), Valid: true}
		row.selectionMethod = sql.NullString{String: string(b.SelectionMethod), Valid: true}
		row.starred = sql.NullBool{Bool: b.Starred, Valid: true}
		row.partySize = sql.NullInt64{Int64: int64(b.PartySize), Valid: true}
		row.notes = b.Notes
		row.bookingRef = sql.NullString{String: b.BookingRef, Valid: true}
	case domain.KindTimeOff:
		if event.TimeOff == nil {
			return row
		}
		row.staffID = event.TimeOff.StaffID
		row.roomID = event.TimeOff.RoomID
		row.reason = event.TimeOff.Reason
	case domain.KindReservation:
		if event.Reservation == nil {
			return row
		}
		row.staffID = event.Reservation.StaffID
		row.roomID = event.Reservation.RoomID
		row.reason = event.Reservation.Reason
	}

	return row
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent сканирует одну строку и собирает из нее tagged union
func scanEvent(scanner rowScanner) (*domain.CalendarEvent, error) {
	var (
		event     domain.CalendarEvent
		row       eventRow
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := scanner.Scan(
		&event.ID,
		&event.Kind,
		&event.Title,
		&event.Date,
		&event.StartTime,
		&event.EndTime,
		&event.AllDay,
		&row.staffID,
		&row.roomID,
		&row.slotID,
		&row.serviceName,
		&row.customerName,
		&row.price,
		&row.status,
		&row.paymentStatus,
		&row.selectionMethod,
		&row.starred,
		&row.partySize,
		&row.notes,
		&row.bookingRef,
		&row.reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	switch event.Kind {
	case domain.KindBooking:
		event.Booking = &domain.BookingDetails{
			StaffID:         row.staffID,
			RoomID:          row.roomID,
			SlotID:          row.slotID,
			ServiceName:     row.serviceName.String,
			CustomerName:    row.customerName.String,
			Price:           row.price.Float64,
			Status:          domain.BookingStatus(row.status.String),
			PaymentStatus:   domain.PaymentStatus(row.paymentStatus.String),
			SelectionMethod: domain.SelectionMethod(row.selectionMethod.String),
			Starred:         row.starred.Bool,
			PartySize:       int(row.partySize.Int64),
			Notes:           row.notes,
			BookingRef:      row.bookingRef.String,
		}
	case domain.KindTimeOff:
		event.TimeOff = &domain.BlockDetails{
			StaffID: row.staffID,
			RoomID:  row.roomID,
			Reason:  row.reason,
		}
	case domain.KindReservation:
		event.Reservation = &domain.BlockDetails{
			StaffID: row.staffID,
			RoomID:  row.roomID,
			Reason:  row.reason,
		}
	}

	return &event, nil
}

// scanEvents сканирует результаты запроса в слайс событий
func scanEvents(rows *sql.Rows) ([]*domain.CalendarEvent, error) {
	events := make([]*domain.CalendarEvent, 0)

	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEvents - scan row: %v", ErrScanRow, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}
