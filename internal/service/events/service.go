package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	eventRepo "github.com/KUL-Services/bookly-sub001/internal/infra/storage/event"
)

// Service сервис для работы с событиями календаря
// Единственная точка мутации хранилища событий: создание, обновление и
// удаление проходят через проверку доступности в serializable-транзакции,
// чтобы два конкурентных бронирования не переполнили слот
type Service struct {
	eventRepo EventRepository
	validator BookingValidator
	catalog   ResourceCatalog
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(
	eventRepo EventRepository,
	validator BookingValidator,
	catalog ResourceCatalog,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		eventRepo: eventRepo,
		validator: validator,
		catalog:   catalog,
		txManager: txManager,
		logger:    logger,
	}
}

// Create создает новое событие календаря
// Пустой ID заполняется сгенерированным uuid; занятый ID - ошибка
// ErrDuplicateID, существующее событие при этом не перезаписывается
func (s *Service) Create(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if err := validateEvent(event); err != nil {
		s.logger.Warn("Create: invalid event: %v", err)
		return nil, err
	}
	if err := s.validateResourceRefs(event); err != nil {
		s.logger.Warn("Create: bad resource reference: %v", err)
		return nil, err
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Kind == domain.KindBooking && event.Booking.BookingRef == "" {
		event.Booking.BookingRef = newBookingRef()
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if event.Kind == domain.KindBooking {
			if err := s.validator.ValidateBooking(txCtx, event); err != nil {
				return err
			}
		}

		created, err := s.eventRepo.Create(txCtx, event)
		if err != nil {
			if errors.Is(err, eventRepo.ErrDuplicateID) {
				return fmt.Errorf("%w: %s", ErrDuplicateID, event.ID)
			}
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		event = created
		return nil
	})
	if err != nil {
		s.logger.Warn("Create: event id=%s rejected: %v", event.ID, err)
		return nil, err
	}

	s.logger.Info("Create: event id=%s kind=%s date=%s created",
		event.ID, event.Kind, event.Date.Format(domain.DateFormat))
	return event, nil
}

// Update полностью заменяет событие по его ID
// При провале проверки доступности хранилище остается без изменений
func (s *Service) Update(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if event.ID == "" {
		return nil, fmt.Errorf("%w: empty event id", ErrInvalidInput)
	}
	if err := validateEvent(event); err != nil {
		s.logger.Warn("Update: invalid event id=%s: %v", event.ID, err)
		return nil, err
	}
	if err := s.validateResourceRefs(event); err != nil {
		s.logger.Warn("Update: bad resource reference for id=%s: %v", event.ID, err)
		return nil, err
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.eventRepo.GetByID(txCtx, event.ID); err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: Update - lookup error: %v", ErrInternal, err)
		}

		if event.Kind == domain.KindBooking {
			if err := s.validator.ValidateBooking(txCtx, event); err != nil {
				return err
			}
		}

		updated, err := s.eventRepo.Update(txCtx, event)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		event = updated
		return nil
	})
	if err != nil {
		s.logger.Warn("Update: event id=%s rejected: %v", event.ID, err)
		return nil, err
	}

	s.logger.Info("Update: event id=%s updated", event.ID)
	return event, nil
}

// Delete удаляет событие по ID
// Удаление отсутствующего события не считается ошибкой
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Info("Delete: event id=%s already absent", id)
			return nil
		}
		s.logger.Error("Delete: repository error for event id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: event id=%s deleted", id)
	return nil
}

// GetByID получает событие по ID
func (s *Service) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("GetByID: repository error for event id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return event, nil
}

// List получает события по фильтру
func (s *Service) List(ctx context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error) {
	events, err := s.eventRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return events, nil
}

// validateResourceRefs проверяет, что событие ссылается на существующие
// ресурсы каталога. Обновление события удаленного сотрудника допускается
// только со снятой ссылкой
func (s *Service) validateResourceRefs(event *domain.CalendarEvent) error {
	if staffID := event.StaffID(); staffID != nil && !s.catalog.HasStaff(*staffID) {
		return fmt.Errorf("%w: %s", ErrUnknownStaff, *staffID)
	}
	if roomID := event.RoomID(); roomID != nil && !s.catalog.HasRoom(*roomID) {
		return fmt.Errorf("%w: %s", ErrUnknownRoom, *roomID)
	}
	return nil
}

// validateEvent проверяет консистентность события:
// kind известен, payload соответствует kind, интервал времени непустой
func validateEvent(event *domain.CalendarEvent) error {
	if event == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidInput)
	}
	if !domain.ValidEventKind(event.Kind) {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, event.Kind)
	}
	if event.Date.IsZero() {
		return fmt.Errorf("%w: empty date", ErrInvalidInput)
	}

	switch event.Kind {
	case domain.KindBooking:
		if event.Booking == nil || event.TimeOff != nil || event.Reservation != nil {
			return fmt.Errorf("%w: booking payload mismatch", ErrInvalidInput)
		}
		if event.AllDay {
			return fmt.Errorf("%w: booking cannot be all-day", ErrInvalidInput)
		}
		if !domain.ValidStatus(event.Booking.Status) {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, event.Booking.Status)
		}
		if !domain.ValidPaymentStatus(event.Booking.PaymentStatus) {
			return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, event.Booking.PaymentStatus)
		}
		if !domain.ValidSelectionMethod(event.Booking.SelectionMethod) {
			return fmt.Errorf("%w: unknown selection method %q", ErrInvalidInput, event.Booking.SelectionMethod)
		}
	case domain.KindTimeOff:
		if event.TimeOff == nil || event.Booking != nil || event.Reservation != nil {
			return fmt.Errorf("%w: timeOff payload mismatch", ErrInvalidInput)
		}
	case domain.KindReservation:
		if event.Reservation == nil || event.Booking != nil || event.TimeOff != nil {
			return fmt.Errorf("%w: reservation payload mismatch", ErrInvalidInput)
		}
	}

	if !event.AllDay {
		if err := event.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
		}
		if err := event.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
		if !event.StartTime.IsBefore(event.EndTime) {
			return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidInput, event.StartTime, event.EndTime)
		}
	}

	return nil
}

// newBookingRef генерирует короткий человекочитаемый номер бронирования
func newBookingRef() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}
