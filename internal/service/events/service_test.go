package events

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	eventRepo "github.com/KUL-Services/bookly-sub001/internal/infra/storage/event"
	"github.com/KUL-Services/bookly-sub001/internal/service/availability"
	"github.com/KUL-Services/bookly-sub001/pkg/ptr"
)

type fakeEventRepo struct {
	events map[string]*domain.CalendarEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*domain.CalendarEvent)}
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if _, exists := f.events[event.ID]; exists {
		return nil, fmt.Errorf("%w: %s", eventRepo.ErrDuplicateID, event.ID)
	}
	cp := *event
	f.events[event.ID] = &cp
	return event, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.CalendarEvent, error) {
	if event, ok := f.events[id]; ok {
		cp := *event
		return &cp, nil
	}
	return nil, eventRepo.ErrEventNotFound
}

func (f *fakeEventRepo) Update(_ context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if _, ok := f.events[event.ID]; !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	cp := *event
	f.events[event.ID] = &cp
	return event, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return eventRepo.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) ListWithFilter(_ context.Context, _ domain.EventsFilter) ([]*domain.CalendarEvent, error) {
	out := make([]*domain.CalendarEvent, 0, len(f.events))
	for _, event := range f.events {
		cp := *event
		out = append(out, &cp)
	}
	return out, nil
}

// fakeValidator настраиваемая проверка доступности
type fakeValidator struct {
	err error
}

func (f *fakeValidator) ValidateBooking(context.Context, *domain.CalendarEvent) error {
	return f.err
}

// passTxManager исполняет функцию без настоящей транзакции
type passTxManager struct{}

func (passTxManager) Do(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }
func (passTxManager) DoSerializable(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
func (passTxManager) DoReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func validBooking(id string) *domain.CalendarEvent {
	return &domain.CalendarEvent{
		ID:        id,
		Kind:      domain.KindBooking,
		Title:     "Haircut",
		Date:      testDate,
		StartTime: "10:00",
		EndTime:   "11:00",
		Booking: &domain.BookingDetails{
			StaffID:         ptr.Ptr("s1"),
			ServiceName:     "Haircut",
			CustomerName:    "Dana",
			Status:          domain.StatusConfirmed,
			PaymentStatus:   domain.PaymentUnpaid,
			SelectionMethod: domain.SelectionByClient,
			PartySize:       1,
		},
	}
}

// fakeCatalog каталог с фиксированным набором ресурсов
type fakeCatalog struct{}

func (fakeCatalog) HasStaff(id string) bool { return id == "s1" }
func (fakeCatalog) HasRoom(id string) bool  { return id == "r1" }

func newTestService(validatorErr error) (*Service, *fakeEventRepo) {
	repo := newFakeEventRepo()
	svc := NewService(repo, &fakeValidator{err: validatorErr}, fakeCatalog{}, passTxManager{}, nopLogger{})
	return svc, repo
}

func TestCreate_AssignsID(t *testing.T) {
	svc, repo := newTestService(nil)

	event := validBooking("")
	created, err := svc.Create(context.Background(), event)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Booking.BookingRef)
	assert.Contains(t, repo.events, created.ID)
}

func TestCreate_DuplicateIDKeepsExisting(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	first := validBooking("e1")
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validBooking("e1")
	second.Title = "Massage"
	_, err = svc.Create(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateID)

	// Существующее событие не перезаписано
	assert.Equal(t, "Haircut", repo.events["e1"].Title)
}

func TestCreate_RoundTrip(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validBooking("e1"))
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindBooking, got.Kind)
	assert.Equal(t, "Dana", got.Booking.CustomerName)
}

func TestCreate_ValidationFailureLeavesStoreUntouched(t *testing.T) {
	svc, repo := newTestService(availability.ErrSlotFull)

	_, err := svc.Create(context.Background(), validBooking("e1"))
	assert.ErrorIs(t, err, availability.ErrSlotFull)
	assert.Empty(t, repo.events)
}

func TestCreate_PayloadMismatch(t *testing.T) {
	svc, _ := newTestService(nil)

	event := validBooking("e1")
	event.TimeOff = &domain.BlockDetails{}
	_, err := svc.Create(context.Background(), event)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_AllDayBookingRejected(t *testing.T) {
	svc, _ := newTestService(nil)

	event := validBooking("e1")
	event.AllDay = true
	_, err := svc.Create(context.Background(), event)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_AllDayTimeOffAllowed(t *testing.T) {
	svc, _ := newTestService(nil)

	event := &domain.CalendarEvent{
		Kind:    domain.KindTimeOff,
		Title:   "Vacation",
		Date:    testDate,
		AllDay:  true,
		TimeOff: &domain.BlockDetails{StaffID: ptr.Ptr("s1")},
	}
	created, err := svc.Create(context.Background(), event)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestCreate_UnknownStaffRejected(t *testing.T) {
	svc, repo := newTestService(nil)

	event := validBooking("e1")
	event.Booking.StaffID = ptr.Ptr("ghost")
	_, err := svc.Create(context.Background(), event)
	assert.ErrorIs(t, err, ErrUnknownStaff)
	assert.Empty(t, repo.events)
}

func TestCreate_UnknownRoomRejected(t *testing.T) {
	svc, _ := newTestService(nil)

	event := &domain.CalendarEvent{
		Kind:        domain.KindReservation,
		Title:       "Maintenance",
		Date:        testDate,
		StartTime:   "09:00",
		EndTime:     "12:00",
		Reservation: &domain.BlockDetails{RoomID: ptr.Ptr("ghost")},
	}
	_, err := svc.Create(context.Background(), event)
	assert.ErrorIs(t, err, ErrUnknownRoom)
}

func TestUpdate_MissingEvent(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Update(context.Background(), validBooking("ghost"))
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUpdate_ValidationFailureLeavesStoreUntouched(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validBooking("e1"))
	require.NoError(t, err)

	// Дальнейшие записи бронирований отклоняются
	svc.validator = &fakeValidator{err: availability.ErrTimeOffConflict}

	changed := validBooking("e1")
	changed.StartTime = "12:00"
	changed.EndTime = "13:00"
	_, err = svc.Update(ctx, changed)
	assert.ErrorIs(t, err, availability.ErrTimeOffConflict)

	assert.Equal(t, "10:00", repo.events["e1"].StartTime.String())
}

func TestDelete_AbsentIsNoOp(t *testing.T) {
	svc, _ := newTestService(nil)

	assert.NoError(t, svc.Delete(context.Background(), "ghost"))
}

func TestDelete_RemovesEvent(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validBooking("e1"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "e1"))
	assert.Empty(t, repo.events)

	_, err = svc.GetByID(ctx, "e1")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
