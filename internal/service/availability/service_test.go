package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	slotRepo "github.com/KUL-Services/bookly-sub001/internal/infra/storage/staticslot"
	"github.com/KUL-Services/bookly-sub001/pkg/ptr"
)

type fakeEventRepo struct {
	events []*domain.CalendarEvent
}

func (f *fakeEventRepo) ListWithFilter(_ context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error) {
	out := make([]*domain.CalendarEvent, 0)
	for _, e := range f.events {
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		if filter.Kind != nil && e.Kind != *filter.Kind {
			continue
		}
		if filter.StaffID != nil && (e.StaffID() == nil || *e.StaffID() != *filter.StaffID) {
			continue
		}
		if filter.RoomID != nil && (e.RoomID() == nil || *e.RoomID() != *filter.RoomID) {
			continue
		}
		if filter.SlotID != nil {
			if e.Booking == nil || e.Booking.SlotID == nil || *e.Booking.SlotID != *filter.SlotID {
				continue
			}
		}
		if !filter.IncludeCancelled && e.IsCancelled() {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeSlotRepo struct {
	slots     map[string]*domain.StaticSlot
	overrides map[string]*domain.SlotOverride // ключ slot_id, одна дата на тест
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id string) (*domain.StaticSlot, error) {
	if slot, ok := f.slots[id]; ok {
		cp := *slot
		return &cp, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) ListByRooms(_ context.Context, roomIDs []string) ([]*domain.StaticSlot, error) {
	out := make([]*domain.StaticSlot, 0)
	for _, slot := range f.slots {
		for _, roomID := range roomIDs {
			if slot.RoomID == roomID {
				cp := *slot
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) GetOverride(_ context.Context, slotID string, _ time.Time) (*domain.SlotOverride, error) {
	if ov, ok := f.overrides[slotID]; ok {
		return ov, nil
	}
	return nil, slotRepo.ErrOverrideNotFound
}

func (f *fakeSlotRepo) ListOverridesForDate(_ context.Context, _ time.Time) (map[string]*domain.SlotOverride, error) {
	return f.overrides, nil
}

// fakeSchedule отдает настроенные смены; сотрудник без записи считается
// работающим весь день, чтобы не мешать тестам вместимости
type fakeSchedule struct {
	shifts map[string][]domain.Shift
}

func (f *fakeSchedule) ShiftsForDate(_ context.Context, staffID string, _ time.Time) ([]domain.Shift, error) {
	if shifts, ok := f.shifts[staffID]; ok {
		return shifts, nil
	}
	return []domain.Shift{{ID: "full", Start: "00:00", End: "24:00"}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func slotBooking(id, slotID string, partySize int, status domain.BookingStatus) *domain.CalendarEvent {
	return &domain.CalendarEvent{
		ID:        id,
		Kind:      domain.KindBooking,
		Date:      testDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		Booking: &domain.BookingDetails{
			SlotID:    ptr.Ptr(slotID),
			PartySize: partySize,
			Status:    status,
		},
	}
}

func newTestService(events []*domain.CalendarEvent, slots *fakeSlotRepo) *Service {
	return NewService(&fakeEventRepo{events: events}, slots, &fakeSchedule{}, nopLogger{})
}

func yogaSlot() *fakeSlotRepo {
	return &fakeSlotRepo{
		slots: map[string]*domain.StaticSlot{
			"slot1": {ID: "slot1", ServiceName: "Yoga", StartTime: "10:00", EndTime: "11:00", Capacity: 3, RoomID: "r1"},
		},
		overrides: map[string]*domain.SlotOverride{},
	}
}

func TestSlotAvailability(t *testing.T) {
	svc := newTestService([]*domain.CalendarEvent{
		slotBooking("e1", "slot1", 1, domain.StatusConfirmed),
		slotBooking("e2", "slot1", 1, domain.StatusCancelled), // не занимает место
	}, yogaSlot())

	availability, err := svc.SlotAvailability(context.Background(), "slot1", testDate)
	require.NoError(t, err)
	assert.Equal(t, 3, availability.Total)
	assert.Equal(t, 2, availability.Remaining)
	assert.True(t, availability.IsPartiallyBooked())
}

func TestSlotAvailability_NeverNegative(t *testing.T) {
	// Переопределение урезало вместимость ниже уже занятых мест
	slots := yogaSlot()
	slots.overrides["slot1"] = &domain.SlotOverride{SlotID: "slot1", Date: testDate, Capacity: ptr.Ptr(1)}

	svc := newTestService([]*domain.CalendarEvent{
		slotBooking("e1", "slot1", 2, domain.StatusConfirmed),
	}, slots)

	availability, err := svc.SlotAvailability(context.Background(), "slot1", testDate)
	require.NoError(t, err)
	assert.Equal(t, 0, availability.Remaining)
	assert.True(t, availability.IsFull())
}

func TestSlotAvailability_CancelledByOverride(t *testing.T) {
	slots := yogaSlot()
	slots.overrides["slot1"] = &domain.SlotOverride{SlotID: "slot1", Date: testDate, IsCancelled: ptr.Ptr(true)}

	svc := newTestService(nil, slots)

	availability, err := svc.SlotAvailability(context.Background(), "slot1", testDate)
	require.NoError(t, err)
	assert.Equal(t, 0, availability.Total)
	assert.Equal(t, 0, availability.Remaining)
}

func TestSlotAvailability_UnknownSlot(t *testing.T) {
	svc := newTestService(nil, yogaSlot())

	_, err := svc.SlotAvailability(context.Background(), "ghost", testDate)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestValidateBooking_SlotFull(t *testing.T) {
	svc := newTestService([]*domain.CalendarEvent{
		slotBooking("e1", "slot1", 3, domain.StatusConfirmed),
	}, yogaSlot())

	err := svc.ValidateBooking(context.Background(), slotBooking("e2", "slot1", 1, domain.StatusConfirmed))
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestValidateBooking_ExcludesSelfOnUpdate(t *testing.T) {
	// Слот занят целиком одним бронированием; обновление этого же
	// бронирования не должно конфликтовать само с собой
	existing := slotBooking("e1", "slot1", 3, domain.StatusConfirmed)
	svc := newTestService([]*domain.CalendarEvent{existing}, yogaSlot())

	updated := slotBooking("e1", "slot1", 2, domain.StatusConfirmed)
	assert.NoError(t, svc.ValidateBooking(context.Background(), updated))
}

func TestValidateBooking_CancelledSkipsChecks(t *testing.T) {
	svc := newTestService([]*domain.CalendarEvent{
		slotBooking("e1", "slot1", 3, domain.StatusConfirmed),
	}, yogaSlot())

	cancelled := slotBooking("e2", "slot1", 1, domain.StatusCancelled)
	assert.NoError(t, svc.ValidateBooking(context.Background(), cancelled))
}

func TestValidateBooking_TimeOffConflict(t *testing.T) {
	timeOff := &domain.CalendarEvent{
		ID:        "off1",
		Kind:      domain.KindTimeOff,
		Date:      testDate,
		StartTime: "12:00",
		EndTime:   "14:00",
		TimeOff:   &domain.BlockDetails{StaffID: ptr.Ptr("s1")},
	}
	svc := newTestService([]*domain.CalendarEvent{timeOff}, yogaSlot())

	booking := &domain.CalendarEvent{
		ID:        "b1",
		Kind:      domain.KindBooking,
		Date:      testDate,
		StartTime: "13:00",
		EndTime:   "13:30",
		Booking:   &domain.BookingDetails{StaffID: ptr.Ptr("s1"), Status: domain.StatusConfirmed},
	}
	assert.ErrorIs(t, svc.ValidateBooking(context.Background(), booking), ErrTimeOffConflict)

	// Смежный интервал конфликтом не считается
	booking.StartTime = "14:00"
	booking.EndTime = "15:00"
	assert.NoError(t, svc.ValidateBooking(context.Background(), booking))
}

func TestValidateBooking_AllDayReservationConflict(t *testing.T) {
	reservation := &domain.CalendarEvent{
		ID:          "res1",
		Kind:        domain.KindReservation,
		Date:        testDate,
		AllDay:      true,
		Reservation: &domain.BlockDetails{RoomID: ptr.Ptr("r1")},
	}
	svc := newTestService([]*domain.CalendarEvent{reservation}, yogaSlot())

	booking := &domain.CalendarEvent{
		ID:        "b1",
		Kind:      domain.KindBooking,
		Date:      testDate,
		StartTime: "08:00",
		EndTime:   "09:00",
		Booking:   &domain.BookingDetails{RoomID: ptr.Ptr("r1"), Status: domain.StatusConfirmed},
	}
	assert.ErrorIs(t, svc.ValidateBooking(context.Background(), booking), ErrReservationConflict)
}

func TestAvailabilityForSlots(t *testing.T) {
	slots := yogaSlot()
	slots.slots["slot2"] = &domain.StaticSlot{ID: "slot2", ServiceName: "Pilates", StartTime: "11:00", EndTime: "12:00", Capacity: 5, RoomID: "r1"}
	slots.overrides["slot2"] = &domain.SlotOverride{SlotID: "slot2", Date: testDate, IsCancelled: ptr.Ptr(true)}

	svc := newTestService([]*domain.CalendarEvent{
		slotBooking("e1", "slot1", 2, domain.StatusConfirmed),
	}, slots)

	list := []*domain.StaticSlot{slots.slots["slot1"], slots.slots["slot2"]}
	result, err := svc.AvailabilityForSlots(context.Background(), list, testDate)
	require.NoError(t, err)

	require.Contains(t, result, "slot1")
	assert.Equal(t, 1, result["slot1"].Remaining)

	// Отмененный на дату слот отдается как 0/0
	require.Contains(t, result, "slot2")
	assert.Equal(t, domain.SlotAvailability{Total: 0, Remaining: 0}, result["slot2"])
}

func TestValidateBooking_OutsideWorkingHours(t *testing.T) {
	schedule := &fakeSchedule{shifts: map[string][]domain.Shift{
		"s1": {{ID: "sh1", Start: "09:00", End: "13:00"}},
	}}
	svc := NewService(&fakeEventRepo{}, yogaSlot(), schedule, nopLogger{})

	booking := &domain.CalendarEvent{
		ID:        "b1",
		Kind:      domain.KindBooking,
		Date:      testDate,
		StartTime: "14:00",
		EndTime:   "15:00",
		Booking:   &domain.BookingDetails{StaffID: ptr.Ptr("s1"), Status: domain.StatusConfirmed},
	}
	assert.ErrorIs(t, svc.ValidateBooking(context.Background(), booking), ErrOutsideWorkingHours)

	// Интервал, задевающий смену, проходит
	booking.StartTime = "12:00"
	booking.EndTime = "14:00"
	assert.NoError(t, svc.ValidateBooking(context.Background(), booking))

	// Перерыв не уменьшает бронируемое время
	schedule.shifts["s1"] = []domain.Shift{{
		ID: "sh1", Start: "09:00", End: "13:00",
		Breaks: []domain.Break{{ID: "br1", Start: "10:00", End: "11:00"}},
	}}
	booking.StartTime = "10:00"
	booking.EndTime = "11:00"
	assert.NoError(t, svc.ValidateBooking(context.Background(), booking))
}

func TestValidateBooking_ShiftEndingAtDayEnd(t *testing.T) {
	// Смена до конца суток: "24:00" - валидная граница конца интервала
	schedule := &fakeSchedule{shifts: map[string][]domain.Shift{
		"s1": {{ID: "sh1", Start: "18:00", End: "24:00"}},
	}}
	svc := NewService(&fakeEventRepo{}, yogaSlot(), schedule, nopLogger{})

	booking := &domain.CalendarEvent{
		ID:        "b1",
		Kind:      domain.KindBooking,
		Date:      testDate,
		StartTime: "22:00",
		EndTime:   "23:30",
		Booking:   &domain.BookingDetails{StaffID: ptr.Ptr("s1"), Status: domain.StatusConfirmed},
	}
	assert.NoError(t, svc.ValidateBooking(context.Background(), booking))

	booking.StartTime = "16:00"
	booking.EndTime = "17:00"
	assert.ErrorIs(t, svc.ValidateBooking(context.Background(), booking), ErrOutsideWorkingHours)
}
