package get_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// UseCase use case составления представления календаря:
// сужение по фильтрам, аннотация подсветкой и поиском, производные фоновые
// записи слотов и консолидация ячеек в static-режиме
type UseCase struct {
	events       EventsProvider
	catalog      ResourceCatalog
	schedule     ScheduleProvider
	slots        SlotProvider
	availability AvailabilityProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	events EventsProvider,
	catalog ResourceCatalog,
	schedule ScheduleProvider,
	slots SlotProvider,
	availability AvailabilityProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		events:       events,
		catalog:      catalog,
		schedule:     schedule,
		slots:        slots,
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет составление представления календаря
// Результат - чистая функция от снимка хранилища, фильтров и поиска:
// повторный вызов на том же снимке дает тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: user=%s, mode=%s, window=%s..%s, search=%q",
		req.UserID, req.Mode, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.Search)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 1. Сужение по филиалам: выбор филиала главнее устаревших выборов
	// сотрудников и залов
	branchIDs := uc.resolveBranchIDs(req.Filter.Branch)

	// 2. Режим расписания определяет строки календаря:
	// dynamic - сотрудники, static - залы
	var (
		resources []Resource
		staffSet  map[string]bool
		roomSet   map[string]bool
		err       error
	)
	switch req.Mode {
	case domain.ModeDynamic:
		resources, staffSet, err = uc.resolveStaffRows(ctx, req, branchIDs)
		if err != nil {
			return nil, err
		}
	case domain.ModeStatic:
		resources, roomSet = uc.resolveRoomRows(req, branchIDs)
	}

	// 3. Снимок событий окна
	events, err := uc.events.List(ctx, domain.EventsFilter{
		From:             &req.From,
		To:               &req.To,
		IncludeCancelled: true,
	})
	if err != nil {
		uc.logger.Error("GetCalendar: events lookup failed: %v", err)
		return nil, fmt.Errorf("%w: events lookup: %v", ErrInternal, err)
	}

	// 4. Индекс слотов видимых залов (static)
	slotIndex := make(map[string]*domain.StaticSlot)
	var visibleSlots []*domain.StaticSlot
	if req.Mode == domain.ModeStatic {
		visibleSlots, err = uc.loadSlots(ctx, roomSet)
		if err != nil {
			return nil, err
		}
		for _, slot := range visibleSlots {
			slotIndex[slot.ID] = slot
		}
	}

	resolveRoom := func(event *domain.CalendarEvent) string {
		if roomID := event.RoomID(); roomID != nil {
			return *roomID
		}
		if event.Kind == domain.KindBooking && event.Booking.SlotID != nil {
			if slot, ok := slotIndex[*event.Booking.SlotID]; ok {
				return slot.RoomID
			}
		}
		return ""
	}

	// 5. Фильтры только сужают; подсветка и поиск только аннотируют
	visible := uc.filterEvents(events, req.Mode, staffSet, roomSet, resolveRoom)

	views := make([]EventView, 0, len(visible))
	for _, event := range visible {
		view := buildEventView(event, uc.catalog.StaffName)
		view.Highlighted = matchesHighlight(event, req.Filter.Highlight)

		staffName := ""
		if view.StaffName != nil {
			staffName = *view.StaffName
		}
		view.SearchMatch = matchesSearch(event, staffName, req.Search)
		views = append(views, view)
	}

	response := &Response{
		Resources: resources,
		Events:    views,
	}

	// 6. Производные фоновые записи и консолидация (static)
	if req.Mode == domain.ModeStatic {
		backgrounds, availabilityByDate, err := uc.buildBackgrounds(ctx, req, visibleSlots, events)
		if err != nil {
			return nil, err
		}
		response.Backgrounds = backgrounds
		response.Cells = consolidateCells(visible, slotIndex, availabilityByDate, resolveRoom)
	}

	uc.logger.Info("GetCalendar: user=%s got %d resources, %d events, %d cells",
		req.UserID, len(response.Resources), len(response.Events), len(response.Cells))
	return response, nil
}

// resolveBranchIDs возвращает выбранные филиалы либо все при пустом выборе
func (uc *UseCase) resolveBranchIDs(filter domain.BranchFilter) []string {
	if !filter.AllBranches && len(filter.BranchIDs) > 0 {
		return filter.BranchIDs
	}
	branches := uc.catalog.ListBranches()
	ids := make([]string, 0, len(branches))
	for _, b := range branches {
		ids = append(ids, b.ID)
	}
	return ids
}

// resolveStaffRows строит строки-сотрудники с учетом фильтров
// Выбор сотрудников пересекается с сужением по филиалам: устаревший выбор
// сотрудника из скрытого филиала молча отбрасывается
func (uc *UseCase) resolveStaffRows(ctx context.Context, req *Request, branchIDs []string) ([]Resource, map[string]bool, error) {
	staff := uc.catalog.StaffByBranches(branchIDs)

	if req.Filter.Staff.OnlyMe {
		staff = keepStaff(staff, func(s *domain.StaffMember) bool { return s.ID == req.UserID })
	} else if req.Filter.Staff.SelectedStaffID != nil {
		staff = keepStaff(staff, func(s *domain.StaffMember) bool { return s.ID == *req.Filter.Staff.SelectedStaffID })
	} else if len(req.Filter.Staff.StaffIDs) > 0 {
		selected := make(map[string]bool, len(req.Filter.Staff.StaffIDs))
		for _, id := range req.Filter.Staff.StaffIDs {
			selected[id] = true
		}
		staff = keepStaff(staff, func(s *domain.StaffMember) bool { return selected[s.ID] })
	}

	if req.Filter.Staff.WorkingStaffOnly && len(staff) > 0 {
		working, err := uc.workingInRange(ctx, staff, req.From, req.To)
		if err != nil {
			return nil, nil, err
		}
		staff = keepStaff(staff, func(s *domain.StaffMember) bool { return working[s.ID] })
	}

	resources := make([]Resource, 0, len(staff))
	staffSet := make(map[string]bool, len(staff))
	for _, s := range staff {
		resources = append(resources, Resource{ID: s.ID, Name: s.Name, Color: s.Color})
		staffSet[s.ID] = true
	}
	return resources, staffSet, nil
}

// resolveRoomRows строит строки-залы с учетом фильтров
func (uc *UseCase) resolveRoomRows(req *Request, branchIDs []string) ([]Resource, map[string]bool) {
	rooms := uc.catalog.RoomsByBranches(branchIDs)

	if !req.Filter.Room.AllRooms && len(req.Filter.Room.RoomIDs) > 0 {
		selected := make(map[string]bool, len(req.Filter.Room.RoomIDs))
		for _, id := range req.Filter.Room.RoomIDs {
			selected[id] = true
		}
		kept := rooms[:0:0]
		for _, r := range rooms {
			if selected[r.ID] {
				kept = append(kept, r)
			}
		}
		rooms = kept
	}

	resources := make([]Resource, 0, len(rooms))
	roomSet := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		resources = append(resources, Resource{ID: r.ID, Name: r.Name})
		roomSet[r.ID] = true
	}
	return resources, roomSet
}

// workingInRange возвращает сотрудников с хотя бы одним рабочим днем в окне
func (uc *UseCase) workingInRange(ctx context.Context, staff []*domain.StaffMember, from, to time.Time) (map[string]bool, error) {
	ids := make([]string, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}

	working := make(map[string]bool, len(ids))
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		daySet, err := uc.schedule.WorkingSet(ctx, ids, date)
		if err != nil {
			uc.logger.Error("GetCalendar: working set lookup failed for %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: working set lookup: %v", ErrInternal, err)
		}
		for id, isWorking := range daySet {
			if isWorking {
				working[id] = true
			}
		}
	}
	return working, nil
}

// filterEvents оставляет события видимых ресурсов текущего режима
func (uc *UseCase) filterEvents(
	events []*domain.CalendarEvent,
	mode domain.SchedulingMode,
	staffSet map[string]bool,
	roomSet map[string]bool,
	resolveRoom func(*domain.CalendarEvent) string,
) []*domain.CalendarEvent {
	visible := make([]*domain.CalendarEvent, 0, len(events))
	for _, event := range events {
		switch mode {
		case domain.ModeDynamic:
			staffID := event.StaffID()
			if staffID != nil && staffSet[*staffID] {
				visible = append(visible, event)
			}
		case domain.ModeStatic:
			if roomID := resolveRoom(event); roomID != "" && roomSet[roomID] {
				visible = append(visible, event)
			}
		}
	}
	return visible
}

// loadSlots загружает слоты видимых залов
func (uc *UseCase) loadSlots(ctx context.Context, roomSet map[string]bool) ([]*domain.StaticSlot, error) {
	if len(roomSet) == 0 {
		return nil, nil
	}
	roomIDs := make([]string, 0, len(roomSet))
	for id := range roomSet {
		roomIDs = append(roomIDs, id)
	}

	slots, err := uc.slots.ListByRooms(ctx, roomIDs)
	if err != nil {
		uc.logger.Error("GetCalendar: slots lookup failed: %v", err)
		return nil, fmt.Errorf("%w: slots lookup: %v", ErrInternal, err)
	}
	return slots, nil
}

// buildBackgrounds материализует фоновые записи слотов на каждую дату окна
// Фон - производное представление, оно никогда не записывается в хранилище.
// Слот с отгулом инструктора на дату фон не получает
func (uc *UseCase) buildBackgrounds(ctx context.Context, req *Request, slots []*domain.StaticSlot, events []*domain.CalendarEvent) ([]BackgroundEntry, map[string]map[string]domain.SlotAvailability, error) {
	backgrounds := make([]BackgroundEntry, 0)
	availabilityByDate := make(map[string]map[string]domain.SlotAvailability)

	if len(slots) == 0 {
		return backgrounds, availabilityByDate, nil
	}

	timeOffByDate := indexTimeOffByDate(events)

	for date := req.From; !date.After(req.To); date = date.AddDate(0, 0, 1) {
		dateKey := date.Format(domain.DateFormat)

		states, err := uc.availability.AvailabilityForSlots(ctx, slots, date)
		if err != nil {
			uc.logger.Error("GetCalendar: availability lookup failed for %s: %v", dateKey, err)
			return nil, nil, fmt.Errorf("%w: availability lookup: %v", ErrInternal, err)
		}
		availabilityByDate[dateKey] = states

		for _, slot := range slots {
			state, ok := states[slot.ID]
			if !ok {
				continue
			}
			if instructorOnTimeOff(timeOffByDate[dateKey], slot) {
				continue
			}
			backgrounds = append(backgrounds, BackgroundEntry{
				RoomID:      slot.RoomID,
				Date:        dateKey,
				SlotID:      slot.ID,
				ServiceName: slot.ServiceName,
				StartTime:   slot.StartTime.String(),
				EndTime:     slot.EndTime.String(),
				Total:       state.Total,
				Remaining:   state.Remaining,
				Cancelled:   state.Total == 0 && state.Remaining == 0,
			})
		}
	}

	return backgrounds, availabilityByDate, nil
}

// indexTimeOffByDate индексирует отгулы снимка событий по дате
func indexTimeOffByDate(events []*domain.CalendarEvent) map[string][]*domain.CalendarEvent {
	index := make(map[string][]*domain.CalendarEvent)
	for _, event := range events {
		if event.Kind != domain.KindTimeOff {
			continue
		}
		key := event.Date.Format(domain.DateFormat)
		index[key] = append(index[key], event)
	}
	return index
}

// instructorOnTimeOff возвращает true, если отгул инструктора слота
// пересекает окно слота в этот день
func instructorOnTimeOff(timeOffs []*domain.CalendarEvent, slot *domain.StaticSlot) bool {
	if slot.InstructorStaffID == "" {
		return false
	}
	for _, event := range timeOffs {
		staffID := event.StaffID()
		if staffID == nil || *staffID != slot.InstructorStaffID {
			continue
		}
		if event.OverlapsWindow(slot.StartTime, slot.EndTime) {
			return true
		}
	}
	return false
}

func keepStaff(staff []*domain.StaffMember, keep func(*domain.StaffMember) bool) []*domain.StaffMember {
	kept := staff[:0:0]
	for _, s := range staff {
		if keep(s) {
			kept = append(kept, s)
		}
	}
	return kept
}
