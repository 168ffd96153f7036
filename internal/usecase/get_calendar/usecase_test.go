package get_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KUL-Services/bookly-sub001/internal/catalog"
	"github.com/KUL-Services/bookly-sub001/internal/domain"
	"github.com/KUL-Services/bookly-sub001/pkg/ptr"
	"github.com/KUL-Services/bookly-sub001/pkg/types"
)

type fakeEvents struct {
	events []*domain.CalendarEvent
}

func (f *fakeEvents) List(_ context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error) {
	out := make([]*domain.CalendarEvent, 0)
	for _, e := range f.events {
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		if !filter.IncludeCancelled && e.IsCancelled() {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeSchedule struct {
	working map[string]bool // staffID -> работает ли хоть когда-то
}

func (f *fakeSchedule) WorkingSet(_ context.Context, staffIDs []string, _ time.Time) (map[string]bool, error) {
	result := make(map[string]bool, len(staffIDs))
	for _, id := range staffIDs {
		result[id] = f.working[id]
	}
	return result, nil
}

type fakeSlots struct {
	slots []*domain.StaticSlot
}

func (f *fakeSlots) ListByRooms(_ context.Context, roomIDs []string) ([]*domain.StaticSlot, error) {
	out := make([]*domain.StaticSlot, 0)
	for _, slot := range f.slots {
		for _, roomID := range roomIDs {
			if slot.RoomID == roomID {
				out = append(out, slot)
				break
			}
		}
	}
	return out, nil
}

type fakeAvailability struct{}

func (fakeAvailability) AvailabilityForSlots(_ context.Context, slots []*domain.StaticSlot, _ time.Time) (map[string]domain.SlotAvailability, error) {
	result := make(map[string]domain.SlotAvailability, len(slots))
	for _, slot := range slots {
		if slot.IsCancelled {
			result[slot.ID] = domain.SlotAvailability{}
			continue
		}
		result[slot.ID] = domain.SlotAvailability{Total: slot.Capacity, Remaining: slot.Capacity}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	day1 = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	day2 = day1.AddDate(0, 0, 1)
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(&catalog.Seed{
		Branches: []catalog.BranchSeed{
			{ID: "b1", Name: "Downtown"},
			{ID: "b2", Name: "Uptown"},
		},
		Staff: []catalog.StaffSeed{
			{ID: "s1", Name: "Alice", BranchID: "b1", StaffType: "dynamic"},
			{ID: "s2", Name: "Bob", BranchID: "b2", StaffType: "dynamic"},
		},
		Rooms: []catalog.RoomSeed{
			{ID: "r1", Name: "Studio A", BranchID: "b1", RoomType: "static"},
			{ID: "r2", Name: "Studio B", BranchID: "b2", RoomType: "static"},
		},
	})
	require.NoError(t, err)
	return c
}

func staffBooking(id, staffID, customer string, date time.Time, start, end string, status domain.BookingStatus) *domain.CalendarEvent {
	return &domain.CalendarEvent{
		ID:        id,
		Kind:      domain.KindBooking,
		Title:     "Booking",
		Date:      date,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Booking: &domain.BookingDetails{
			StaffID:       ptr.Ptr(staffID),
			CustomerName:  customer,
			ServiceName:   "Haircut",
			Status:        status,
			PaymentStatus: domain.PaymentUnpaid,
		},
	}
}

func slotBooking(id, slotID string, date time.Time, start string, status domain.BookingStatus) *domain.CalendarEvent {
	return &domain.CalendarEvent{
		ID:        id,
		Kind:      domain.KindBooking,
		Title:     "Class",
		Date:      date,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString("23:00"),
		Booking: &domain.BookingDetails{
			SlotID:        ptr.Ptr(slotID),
			ServiceName:   "Yoga",
			Status:        status,
			PaymentStatus: domain.PaymentPaid,
		},
	}
}

func newUseCase(events []*domain.CalendarEvent, c *catalog.Catalog, working map[string]bool, slots []*domain.StaticSlot) *UseCase {
	return NewUseCase(
		&fakeEvents{events: events},
		c,
		&fakeSchedule{working: working},
		&fakeSlots{slots: slots},
		fakeAvailability{},
		nopLogger{},
	)
}

func dynamicRequest() *Request {
	return &Request{
		UserID: "s1",
		From:   day1,
		To:     day2,
		Mode:   domain.ModeDynamic,
	}
}

func TestExecute_BranchNarrowingBeatsStaleStaffSelection(t *testing.T) {
	events := []*domain.CalendarEvent{
		staffBooking("e1", "s1", "Dana", day1, "10:00", "11:00", domain.StatusConfirmed),
		staffBooking("e2", "s2", "Eve", day1, "12:00", "13:00", domain.StatusConfirmed),
	}
	uc := newUseCase(events, testCatalog(t), nil, nil)

	req := dynamicRequest()
	req.Filter.Branch = domain.BranchFilter{BranchIDs: []string{"b1"}}
	// Устаревший выбор сотрудника из скрытого филиала
	req.Filter.Staff.StaffIDs = []string{"s1", "s2"}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Resources, 1)
	assert.Equal(t, "s1", resp.Resources[0].ID)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "e1", resp.Events[0].ID)
}

func TestExecute_OnlyMe(t *testing.T) {
	events := []*domain.CalendarEvent{
		staffBooking("e1", "s1", "Dana", day1, "10:00", "11:00", domain.StatusConfirmed),
		staffBooking("e2", "s2", "Eve", day1, "12:00", "13:00", domain.StatusConfirmed),
	}
	uc := newUseCase(events, testCatalog(t), nil, nil)

	req := dynamicRequest()
	req.Filter.Staff.OnlyMe = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Resources, 1)
	assert.Equal(t, "s1", resp.Resources[0].ID)
}

func TestExecute_WorkingStaffOnly(t *testing.T) {
	uc := newUseCase(nil, testCatalog(t), map[string]bool{"s1": true}, nil)

	req := dynamicRequest()
	req.Filter.Staff.WorkingStaffOnly = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Resources, 1)
	assert.Equal(t, "s1", resp.Resources[0].ID)
}

func TestExecute_HighlightNeverChangesCardinality(t *testing.T) {
	events := []*domain.CalendarEvent{
		staffBooking("e1", "s1", "Dana", day1, "10:00", "11:00", domain.StatusConfirmed),
		staffBooking("e2", "s1", "Eve", day1, "12:00", "13:00", domain.StatusPending),
	}
	uc := newUseCase(events, testCatalog(t), nil, nil)

	plain, err := uc.Execute(context.Background(), dynamicRequest())
	require.NoError(t, err)

	highlighted := dynamicRequest()
	highlighted.Filter.Highlight.Statuses = []domain.BookingStatus{domain.StatusConfirmed}
	withHighlight, err := uc.Execute(context.Background(), highlighted)
	require.NoError(t, err)

	// Подсветка аннотирует, но не убирает события
	require.Equal(t, len(plain.Events), len(withHighlight.Events))
	assert.True(t, withHighlight.Events[0].Highlighted)
	assert.False(t, withHighlight.Events[1].Highlighted)
}

func TestExecute_HighlightDimensionsANDed(t *testing.T) {
	paid := staffBooking("e1", "s1", "Dana", day1, "10:00", "11:00", domain.StatusConfirmed)
	paid.Booking.PaymentStatus = domain.PaymentPaid
	unpaidConfirmed := staffBooking("e2", "s1", "Eve", day1, "12:00", "13:00", domain.StatusConfirmed)

	uc := newUseCase([]*domain.CalendarEvent{paid, unpaidConfirmed}, testCatalog(t), nil, nil)

	req := dynamicRequest()
	req.Filter.Highlight.Statuses = []domain.BookingStatus{domain.StatusConfirmed}
	req.Filter.Highlight.Payments = []domain.PaymentStatus{domain.PaymentPaid}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Events[0].Highlighted)
	assert.False(t, resp.Events[1].Highlighted, "измерения подсветки объединяются через AND")
}

func TestExecute_SearchAnnotatesWithoutRemoving(t *testing.T) {
	events := []*domain.CalendarEvent{
		staffBooking("e1", "s1", "Dana Smith", day1, "10:00", "11:00", domain.StatusConfirmed),
		staffBooking("e2", "s1", "Eve Jones", day1, "12:00", "13:00", domain.StatusConfirmed),
	}
	uc := newUseCase(events, testCatalog(t), nil, nil)

	req := dynamicRequest()
	req.Search = "dana"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Events, 2)
	assert.True(t, resp.Events[0].SearchMatch)
	assert.False(t, resp.Events[1].SearchMatch)
}

func TestExecute_Idempotent(t *testing.T) {
	events := []*domain.CalendarEvent{
		staffBooking("e1", "s1", "Dana", day1, "10:00", "11:00", domain.StatusConfirmed),
	}
	uc := newUseCase(events, testCatalog(t), nil, nil)

	req := dynamicRequest()
	req.Search = "dana"

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := newUseCase(nil, testCatalog(t), nil, nil)

	req := dynamicRequest()
	req.From, req.To = req.To.AddDate(0, 0, 5), req.From

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_StaticConsolidation(t *testing.T) {
	slots := []*domain.StaticSlot{
		{ID: "slot1", ServiceName: "Yoga", StartTime: "09:00", EndTime: "10:00", Capacity: 10, RoomID: "r1"},
		{ID: "slot2", ServiceName: "Pilates", StartTime: "10:00", EndTime: "11:00", Capacity: 8, RoomID: "r1"},
		{ID: "slot3", ServiceName: "Boxing", StartTime: "11:00", EndTime: "12:00", Capacity: 6, RoomID: "r1"},
	}
	events := []*domain.CalendarEvent{
		slotBooking("e1", "slot1", day1, "09:00", domain.StatusConfirmed),
		slotBooking("e2", "slot1", day1, "09:00", domain.StatusConfirmed),
		slotBooking("e3", "slot1", day1, "09:00", domain.StatusCancelled), // мест не занимает
		slotBooking("e4", "slot2", day1, "10:00", domain.StatusConfirmed),
		slotBooking("e5", "slot3", day1, "11:00", domain.StatusConfirmed),
	}
	uc := newUseCase(events, testCatalog(t), nil, slots)

	req := &Request{UserID: "s1", From: day1, To: day1, Mode: domain.ModeStatic}
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Cells, 1)
	cell := resp.Cells[0]
	assert.Equal(t, "r1", cell.RoomID)

	// Три группы: видно не больше двух, остальные в переполнении
	require.Len(t, cell.Entries, domain.MaxVisibleCellEntries)
	assert.Equal(t, 1, cell.OverflowCount)

	// Сохранение числа бронирований: 4 активных (отмененное не в счет)
	assert.Equal(t, 4, cell.TotalBookings)

	first := cell.Entries[0]
	assert.Equal(t, "slot1", first.Key)
	assert.Equal(t, 2, first.BookingCount)
	assert.Equal(t, 10, first.TotalCapacity)
}

func TestExecute_StaticFallbackGroupByStartTime(t *testing.T) {
	event := &domain.CalendarEvent{
		ID:        "e1",
		Kind:      domain.KindBooking,
		Title:     "Walk-in",
		Date:      day1,
		StartTime: "14:00",
		EndTime:   "15:00",
		Booking: &domain.BookingDetails{
			RoomID:        ptr.Ptr("r1"),
			ServiceName:   "Open gym",
			Status:        domain.StatusConfirmed,
			PaymentStatus: domain.PaymentUnpaid,
		},
	}
	uc := newUseCase([]*domain.CalendarEvent{event}, testCatalog(t), nil, nil)

	req := &Request{UserID: "s1", From: day1, To: day1, Mode: domain.ModeStatic}
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Cells, 1)
	require.Len(t, resp.Cells[0].Entries, 1)
	entry := resp.Cells[0].Entries[0]
	assert.Equal(t, "14:00", entry.Key)
	assert.Equal(t, 1, entry.BookingCount)
	assert.Equal(t, 1, entry.TotalCapacity)
}

func TestExecute_StaticBackgroundsDerived(t *testing.T) {
	slots := []*domain.StaticSlot{
		{ID: "slot1", ServiceName: "Yoga", StartTime: "09:00", EndTime: "10:00", Capacity: 10, RoomID: "r1"},
	}
	uc := newUseCase(nil, testCatalog(t), nil, slots)

	req := &Request{UserID: "s1", From: day1, To: day2, Mode: domain.ModeStatic}
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Фон материализуется на каждую дату окна
	require.Len(t, resp.Backgrounds, 2)
	assert.Equal(t, day1.Format(domain.DateFormat), resp.Backgrounds[0].Date)
	assert.Equal(t, day2.Format(domain.DateFormat), resp.Backgrounds[1].Date)
	assert.Equal(t, 10, resp.Backgrounds[0].Total)
}

func TestExecute_RemovedStaffPlaceholder(t *testing.T) {
	c := testCatalog(t)
	booking := staffBooking("e1", "s1", "Dana", day1, "10:00", "11:00", domain.StatusConfirmed)
	booking.Booking.RoomID = ptr.Ptr("r1")
	uc := newUseCase([]*domain.CalendarEvent{booking}, c, nil, nil)

	require.NoError(t, c.DeleteStaff("s1"))

	// Динамический режим: удаленный сотрудник больше не строка календаря,
	// его события скрыты вместе со строкой; остальные сотрудники остаются
	resp, err := uc.Execute(context.Background(), dynamicRequest())
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, "s2", resp.Resources[0].ID)
	assert.Empty(t, resp.Events)

	// Статический режим: событие видно через зал, имя удаленного
	// сотрудника резолвится в placeholder
	static := &Request{UserID: "s1", From: day1, To: day1, Mode: domain.ModeStatic}
	staticResp, err := uc.Execute(context.Background(), static)
	require.NoError(t, err)
	require.Len(t, staticResp.Events, 1)
	require.NotNil(t, staticResp.Events[0].StaffName)
	assert.Equal(t, domain.RemovedStaffLabel, *staticResp.Events[0].StaffName)
}

func TestExecute_BackgroundSuppressedByInstructorTimeOff(t *testing.T) {
	slots := []*domain.StaticSlot{
		{ID: "slot1", ServiceName: "Yoga", StartTime: "09:00", EndTime: "10:00", Capacity: 10, RoomID: "r1", InstructorStaffID: "s1"},
		{ID: "slot2", ServiceName: "Pilates", StartTime: "10:00", EndTime: "11:00", Capacity: 8, RoomID: "r1", InstructorStaffID: "s2"},
	}
	events := []*domain.CalendarEvent{
		{
			ID:      "off1",
			Kind:    domain.KindTimeOff,
			Title:   "Vacation",
			Date:    day1,
			AllDay:  true,
			TimeOff: &domain.BlockDetails{StaffID: ptr.Ptr("s1")},
		},
		// Отгул вне окна слота подавлять фон не должен
		{
			ID:        "off2",
			Kind:      domain.KindTimeOff,
			Title:     "Errand",
			Date:      day2,
			StartTime: "12:00",
			EndTime:   "13:00",
			TimeOff:   &domain.BlockDetails{StaffID: ptr.Ptr("s2")},
		},
	}
	uc := newUseCase(events, testCatalog(t), nil, slots)

	req := &Request{UserID: "s1", From: day1, To: day2, Mode: domain.ModeStatic}
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// slot1 не материализуется на day1 (отгул инструктора), остальные
	// комбинации слот/дата остаются
	require.Len(t, resp.Backgrounds, 3)
	for _, bg := range resp.Backgrounds {
		assert.False(t, bg.SlotID == "slot1" && bg.Date == day1.Format(domain.DateFormat),
			"фон слота с отгулом инструктора не должен материализоваться")
	}
}
