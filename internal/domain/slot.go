package domain

import (
	"time"

	"github.com/KUL-Services/bookly-sub001/pkg/types"
)

// StaticSlot is a recurring daily timetable entry with a capacity ceiling
type StaticSlot struct {
	ID                string
	ServiceName       string
	StartTime         types.TimeString
	EndTime           types.TimeString
	Capacity          int
	RoomID            string
	InstructorStaffID string
	IsCancelled       bool
}

// SlotOverride is a date-specific override of a static slot
type SlotOverride struct {
	SlotID      string
	Date        time.Time
	Capacity    *int  // nil keeps the slot's capacity
	IsCancelled *bool // nil keeps the slot's flag
}

// EffectiveCapacity returns the slot capacity with an optional date override applied
func (s *StaticSlot) EffectiveCapacity(override *SlotOverride) int {
	if override != nil && override.Capacity != nil {
		return *override.Capacity
	}
	return s.Capacity
}

// CancelledOn returns true if the slot is cancelled, either globally or
// by a date override
func (s *StaticSlot) CancelledOn(override *SlotOverride) bool {
	if override != nil && override.IsCancelled != nil {
		return *override.IsCancelled
	}
	return s.IsCancelled
}

// SlotAvailability is the capacity state of a static slot on a date
type SlotAvailability struct {
	Total     int
	Remaining int
}

// IsFull returns true if the slot has no remaining capacity
func (a SlotAvailability) IsFull() bool {
	return a.Remaining <= 0
}

// IsPartiallyBooked returns true if the slot has some but not all capacity taken
func (a SlotAvailability) IsPartiallyBooked() bool {
	return a.Remaining > 0 && a.Remaining < a.Total
}

// OccupancyRate returns the occupancy as a percentage (0-100)
func (a SlotAvailability) OccupancyRate() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Total-a.Remaining) / float64(a.Total) * 100
}
