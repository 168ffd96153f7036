package get_calendar

import (
	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// cellKey идентифицирует ячейку зал/день
type cellKey struct {
	roomID string
	date   string
}

// consolidateCells сворачивает бронирования static-режима в ячейки зал/день
// Группировка внутри ячейки - по id слота, для бронирований без слота -
// по отформатированному времени начала. Порядок групп - порядок появления
// событий (стабильный, события приходят отсортированными по времени)
func consolidateCells(
	events []*domain.CalendarEvent,
	slotIndex map[string]*domain.StaticSlot,
	availabilityByDate map[string]map[string]domain.SlotAvailability,
	resolveRoom func(*domain.CalendarEvent) string,
) []Cell {
	cellOrder := make([]cellKey, 0)
	cells := make(map[cellKey]*cellAccumulator)

	for _, event := range events {
		if event.Kind != domain.KindBooking || event.Booking == nil {
			continue
		}
		roomID := resolveRoom(event)
		if roomID == "" {
			continue
		}

		key := cellKey{roomID: roomID, date: event.Date.Format(domain.DateFormat)}
		acc, ok := cells[key]
		if !ok {
			acc = newCellAccumulator()
			cells[key] = acc
			cellOrder = append(cellOrder, key)
		}
		acc.add(event)
	}

	result := make([]Cell, 0, len(cellOrder))
	for _, key := range cellOrder {
		acc := cells[key]
		result = append(result, acc.build(key, slotIndex, availabilityByDate[key.date]))
	}
	return result
}

// cellAccumulator копит группы бронирований одной ячейки в порядке появления
type cellAccumulator struct {
	order  []string
	groups map[string]*cellGroup
}

type cellGroup struct {
	slotID      string // пустой для fallback-группы
	serviceName string
	startTime   string
	active      int // бронирования, занимающие места
}

func newCellAccumulator() *cellAccumulator {
	return &cellAccumulator{groups: make(map[string]*cellGroup)}
}

func (a *cellAccumulator) add(event *domain.CalendarEvent) {
	key := event.StartTime.String()
	slotID := ""
	if event.Booking.SlotID != nil {
		slotID = *event.Booking.SlotID
		key = slotID
	}

	group, ok := a.groups[key]
	if !ok {
		group = &cellGroup{
			slotID:      slotID,
			serviceName: event.Booking.ServiceName,
			startTime:   event.StartTime.String(),
		}
		a.groups[key] = group
		a.order = append(a.order, key)
	}

	if event.IsActiveBooking() {
		group.active++
	}
}

func (a *cellAccumulator) build(
	key cellKey,
	slotIndex map[string]*domain.StaticSlot,
	availability map[string]domain.SlotAvailability,
) Cell {
	cell := Cell{RoomID: key.roomID, Date: key.date}

	for _, groupKey := range a.order {
		group := a.groups[groupKey]
		cell.TotalBookings += group.active

		entry := CellEntry{
			Key:           groupKey,
			ServiceName:   group.serviceName,
			StartTime:     group.startTime,
			BookingCount:  group.active,
			TotalCapacity: group.active, // fallback без слота
		}
		if group.slotID != "" {
			if slot, ok := slotIndex[group.slotID]; ok {
				entry.ServiceName = slot.ServiceName
				entry.TotalCapacity = slot.Capacity
			}
			if state, ok := availability[group.slotID]; ok {
				entry.TotalCapacity = state.Total
			}
		}

		if len(cell.Entries) < domain.MaxVisibleCellEntries {
			cell.Entries = append(cell.Entries, entry)
		} else {
			cell.OverflowCount++
		}
	}

	return cell
}
