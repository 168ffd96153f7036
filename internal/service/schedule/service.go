package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// Service сервис для работы с рабочими часами сотрудников
type Service struct {
	scheduleRepo ScheduleRepository
	catalog      StaffCatalog
	logger       Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(
	scheduleRepo ScheduleRepository,
	catalog StaffCatalog,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		logger:       logger,
	}
}

// GetWeek получает недельное расписание сотрудника
// День без записи считается нерабочим
func (s *Service) GetWeek(ctx context.Context, staffID string) (*domain.WeeklyStaffHours, error) {
	if !s.catalog.HasStaff(staffID) {
		s.logger.Warn("GetWeek: staff=%s not found", staffID)
		return nil, ErrStaffNotFound
	}

	weekly, err := s.scheduleRepo.GetByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	return weekly, nil
}

// UpdateDay заменяет расписание сотрудника на день недели
// Пересекающиеся смены внутри дня и перерывы вне смен отклоняются,
// существующее расписание при этом не меняется
func (s *Service) UpdateDay(ctx context.Context, staffID string, day domain.DayHours) error {
	if !s.catalog.HasStaff(staffID) {
		s.logger.Warn("UpdateDay: staff=%s not found", staffID)
		return ErrStaffNotFound
	}

	if err := day.Validate(); err != nil {
		s.logger.Warn("UpdateDay: invalid day for staff=%s weekday=%d: %v", staffID, day.Weekday, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.scheduleRepo.UpsertDay(ctx, staffID, day); err != nil {
		s.logger.Error("UpdateDay: repository error for staff=%s: %v", staffID, err)
		return fmt.Errorf("%w: UpdateDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDay: staff=%s weekday=%d updated, working=%t shifts=%d",
		staffID, day.Weekday, day.IsWorking, len(day.Shifts))
	return nil
}

// IsWorking возвращает true, если у сотрудника есть рабочее время на дату
func (s *Service) IsWorking(ctx context.Context, staffID string, date time.Time) (bool, error) {
	weekly, err := s.scheduleRepo.GetByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("IsWorking: repository error for staff=%s: %v", staffID, err)
		return false, fmt.Errorf("%w: IsWorking - repository error: %v", ErrInternal, err)
	}

	day := weekly.ForDate(date)
	return day.HasBookableTime(), nil
}

// WorkingSet возвращает для группы сотрудников признак наличия рабочего
// времени на дату. Используется фильтром "только работающие сотрудники"
func (s *Service) WorkingSet(ctx context.Context, staffIDs []string, date time.Time) (map[string]bool, error) {
	hours, err := s.scheduleRepo.GetByStaffIDs(ctx, staffIDs)
	if err != nil {
		s.logger.Error("WorkingSet: repository error: %v", err)
		return nil, fmt.Errorf("%w: WorkingSet - repository error: %v", ErrInternal, err)
	}

	result := make(map[string]bool, len(staffIDs))
	for _, staffID := range staffIDs {
		weekly, ok := hours[staffID]
		if !ok {
			result[staffID] = false
			continue
		}
		day := weekly.ForDate(date)
		result[staffID] = day.HasBookableTime()
	}

	return result, nil
}

// ShiftsForDate возвращает смены сотрудника на дату
// Для нерабочего дня возвращает пустой срез
func (s *Service) ShiftsForDate(ctx context.Context, staffID string, date time.Time) ([]domain.Shift, error) {
	weekly, err := s.scheduleRepo.GetByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("ShiftsForDate: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: ShiftsForDate - repository error: %v", ErrInternal, err)
	}

	day := weekly.ForDate(date)
	if !day.IsWorking {
		return nil, nil
	}
	return day.Shifts, nil
}
