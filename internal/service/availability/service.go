package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	slotRepo "github.com/KUL-Services/bookly-sub001/internal/infra/storage/staticslot"
	"github.com/KUL-Services/bookly-sub001/pkg/ptr"
)

// Service сервис расчета доступности
// Отвечает за вместимость статичных слотов и проверку конфликтов
// бронирований с отгулами и резервами залов
type Service struct {
	eventRepo EventRepository
	slotRepo  SlotRepository
	schedule  ScheduleProvider
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	eventRepo EventRepository,
	slotRepo SlotRepository,
	schedule ScheduleProvider,
	logger Logger,
) *Service {
	return &Service{
		eventRepo: eventRepo,
		slotRepo:  slotRepo,
		schedule:  schedule,
		logger:    logger,
	}
}

// SlotAvailability вычисляет вместимость слота на дату
// Учитывает переопределения на дату и активные бронирования слота;
// отмененные бронирования мест не занимают
func (s *Service) SlotAvailability(ctx context.Context, slotID string, date time.Time) (*domain.SlotAvailability, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("SlotAvailability: slot=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("SlotAvailability: repository error for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: SlotAvailability - repository error: %v", ErrInternal, err)
	}

	override, err := s.slotRepo.GetOverride(ctx, slotID, date)
	if err != nil && !errors.Is(err, slotRepo.ErrOverrideNotFound) {
		s.logger.Error("SlotAvailability: override lookup failed for slot=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: SlotAvailability - override lookup: %v", ErrInternal, err)
	}

	if slot.CancelledOn(override) {
		// Отмененный слот показывается как 0/0, а не ошибка
		return &domain.SlotAvailability{Total: 0, Remaining: 0}, nil
	}

	booked, err := s.bookedSeats(ctx, slotID, date, "")
	if err != nil {
		return nil, err
	}

	availability := capacityState(slot.EffectiveCapacity(override), booked)
	return &availability, nil
}

// AvailabilityForSlots вычисляет вместимость группы слотов на дату
// одним запросом к событиям. Отмененные на дату слоты отдаются как 0/0
func (s *Service) AvailabilityForSlots(ctx context.Context, slots []*domain.StaticSlot, date time.Time) (map[string]domain.SlotAvailability, error) {
	if len(slots) == 0 {
		return map[string]domain.SlotAvailability{}, nil
	}

	overrides, err := s.slotRepo.ListOverridesForDate(ctx, date)
	if err != nil {
		s.logger.Error("AvailabilityForSlots: overrides lookup failed: %v", err)
		return nil, fmt.Errorf("%w: AvailabilityForSlots - overrides lookup: %v", ErrInternal, err)
	}

	day := domain.DateOnly(date)
	bookings, err := s.eventRepo.ListWithFilter(ctx, domain.EventsFilter{
		From: &day,
		To:   &day,
		Kind: ptr.Ptr(domain.KindBooking),
	})
	if err != nil {
		s.logger.Error("AvailabilityForSlots: events lookup failed: %v", err)
		return nil, fmt.Errorf("%w: AvailabilityForSlots - events lookup: %v", ErrInternal, err)
	}

	bookedBySlot := make(map[string]int)
	for _, event := range bookings {
		if !event.IsActiveBooking() || event.Booking.SlotID == nil {
			continue
		}
		bookedBySlot[*event.Booking.SlotID] += seats(event)
	}

	result := make(map[string]domain.SlotAvailability, len(slots))
	for _, slot := range slots {
		override := overrides[slot.ID]
		if slot.CancelledOn(override) {
			result[slot.ID] = domain.SlotAvailability{Total: 0, Remaining: 0}
			continue
		}
		result[slot.ID] = capacityState(slot.EffectiveCapacity(override), bookedBySlot[slot.ID])
	}

	return result, nil
}

// ValidateBooking проверяет, что бронирование может быть создано или обновлено:
// - слот (если указан) существует, не отменен и вмещает запрошенное число мест
// - интервал не пересекается с отгулами сотрудника
// - интервал не пересекается с резервами зала
//
// Событие с тем же ID исключается из подсчетов, поэтому проверка одинаково
// работает для создания и обновления. Вызывать внутри serializable-транзакции
func (s *Service) ValidateBooking(ctx context.Context, event *domain.CalendarEvent) error {
	if event.Kind != domain.KindBooking || event.Booking == nil {
		return fmt.Errorf("%w: not a booking event", ErrInvalidInput)
	}
	if event.IsCancelled() {
		// Отмененное бронирование мест не занимает и конфликтов не создает
		return nil
	}

	if event.Booking.SlotID != nil {
		if err := s.validateSlotCapacity(ctx, event); err != nil {
			return err
		}
	}

	if event.Booking.StaffID != nil && !event.AllDay {
		if err := s.validateWorkingHours(ctx, event); err != nil {
			return err
		}
	}

	if event.Booking.StaffID != nil {
		conflict, err := s.hasBlockingConflict(ctx, event, domain.KindTimeOff, domain.EventsFilter{
			StaffID: event.Booking.StaffID,
		})
		if err != nil {
			return err
		}
		if conflict {
			return ErrTimeOffConflict
		}
	}

	if event.Booking.RoomID != nil {
		conflict, err := s.hasBlockingConflict(ctx, event, domain.KindReservation, domain.EventsFilter{
			RoomID: event.Booking.RoomID,
		})
		if err != nil {
			return err
		}
		if conflict {
			return ErrReservationConflict
		}
	}

	return nil
}

func (s *Service) validateSlotCapacity(ctx context.Context, event *domain.CalendarEvent) error {
	slotID := *event.Booking.SlotID

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("%w: validateSlotCapacity - slot lookup: %v", ErrInternal, err)
	}

	override, err := s.slotRepo.GetOverride(ctx, slotID, event.Date)
	if err != nil && !errors.Is(err, slotRepo.ErrOverrideNotFound) {
		return fmt.Errorf("%w: validateSlotCapacity - override lookup: %v", ErrInternal, err)
	}

	if slot.CancelledOn(override) {
		return ErrSlotCancelled
	}

	booked, err := s.bookedSeats(ctx, slotID, event.Date, event.ID)
	if err != nil {
		return err
	}

	if booked+seats(event) > slot.EffectiveCapacity(override) {
		s.logger.Warn("validateSlotCapacity: slot=%s full on %s: capacity=%d booked=%d requested=%d",
			slotID, event.Date.Format(domain.DateFormat), slot.EffectiveCapacity(override), booked, seats(event))
		return ErrSlotFull
	}

	return nil
}

// validateWorkingHours отклоняет бронирование, интервал которого целиком
// вне рабочих смен сотрудника. Перерывы внутри смены бронируемое время
// не уменьшают
func (s *Service) validateWorkingHours(ctx context.Context, event *domain.CalendarEvent) error {
	staffID := *event.Booking.StaffID

	shifts, err := s.schedule.ShiftsForDate(ctx, staffID, event.Date)
	if err != nil {
		return fmt.Errorf("%w: validateWorkingHours - schedule lookup: %v", ErrInternal, err)
	}

	for _, shift := range shifts {
		if domain.Overlaps(shift.Start, shift.End, event.StartTime, event.EndTime) {
			return nil
		}
	}

	s.logger.Warn("validateWorkingHours: booking %s-%s outside shifts of staff=%s on %s",
		event.StartTime, event.EndTime, staffID, event.Date.Format(domain.DateFormat))
	return ErrOutsideWorkingHours
}

// bookedSeats считает занятые места слота на дату, исключая событие excludeID
func (s *Service) bookedSeats(ctx context.Context, slotID string, date time.Time, excludeID string) (int, error) {
	day := domain.DateOnly(date)
	events, err := s.eventRepo.ListWithFilter(ctx, domain.EventsFilter{
		From:   &day,
		To:     &day,
		SlotID: &slotID,
		Kind:   ptr.Ptr(domain.KindBooking),
	})
	if err != nil {
		s.logger.Error("bookedSeats: events lookup failed for slot=%s: %v", slotID, err)
		return 0, fmt.Errorf("%w: bookedSeats - events lookup: %v", ErrInternal, err)
	}

	booked := 0
	for _, event := range events {
		if event.ID == excludeID || !event.IsActiveBooking() {
			continue
		}
		booked += seats(event)
	}
	return booked, nil
}

// hasBlockingConflict проверяет пересечение интервала бронирования с
// блокирующими событиями (отгул или резерв) указанного ресурса
func (s *Service) hasBlockingConflict(ctx context.Context, event *domain.CalendarEvent, kind domain.EventKind, filter domain.EventsFilter) (bool, error) {
	day := domain.DateOnly(event.Date)
	filter.From = &day
	filter.To = &day
	filter.Kind = &kind

	blocks, err := s.eventRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("hasBlockingConflict: events lookup failed: %v", err)
		return false, fmt.Errorf("%w: hasBlockingConflict - events lookup: %v", ErrInternal, err)
	}

	for _, block := range blocks {
		if block.ID == event.ID {
			continue
		}
		if block.OverlapsWindow(event.StartTime, event.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

// seats возвращает число мест, занимаемых бронированием (минимум одно)
func seats(event *domain.CalendarEvent) int {
	if event.Booking != nil && event.Booking.PartySize > 1 {
		return event.Booking.PartySize
	}
	return 1
}

// capacityState строит состояние вместимости, не допуская отрицательного остатка
func capacityState(total, booked int) domain.SlotAvailability {
	remaining := total - booked
	if remaining < 0 {
		remaining = 0
	}
	return domain.SlotAvailability{Total: total, Remaining: remaining}
}
