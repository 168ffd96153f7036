package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShift_Validate(t *testing.T) {
	t.Run("valid with break", func(t *testing.T) {
		s := Shift{Start: "09:00", End: "17:00", Breaks: []Break{{Start: "13:00", End: "14:00"}}}
		assert.NoError(t, s.Validate())
	})

	t.Run("break outside shift", func(t *testing.T) {
		s := Shift{Start: "09:00", End: "17:00", Breaks: []Break{{Start: "08:00", End: "09:30"}}}
		assert.ErrorIs(t, s.Validate(), ErrBreakOutsideShift)
	})

	t.Run("empty shift range", func(t *testing.T) {
		s := Shift{Start: "17:00", End: "09:00"}
		assert.ErrorIs(t, s.Validate(), ErrEmptyTimeRange)
	})
}

func TestDayHours_Validate(t *testing.T) {
	t.Run("overlapping shifts rejected", func(t *testing.T) {
		d := DayHours{
			IsWorking: true,
			Shifts: []Shift{
				{Start: "09:00", End: "13:00"},
				{Start: "12:00", End: "18:00"},
			},
		}
		assert.ErrorIs(t, d.Validate(), ErrShiftsOverlap)
	})

	t.Run("adjacent shifts allowed", func(t *testing.T) {
		d := DayHours{
			IsWorking: true,
			Shifts: []Shift{
				{Start: "09:00", End: "13:00"},
				{Start: "13:00", End: "18:00"},
			},
		}
		assert.NoError(t, d.Validate())
	})
}

func TestDayHours_HasBookableTime(t *testing.T) {
	assert.False(t, (&DayHours{IsWorking: false, Shifts: []Shift{{Start: "09:00", End: "17:00"}}}).HasBookableTime())
	assert.False(t, (&DayHours{IsWorking: true}).HasBookableTime())
	assert.False(t, (&DayHours{IsWorking: true, Shifts: []Shift{{Start: "09:00", End: "09:00"}}}).HasBookableTime())
	assert.True(t, (&DayHours{IsWorking: true, Shifts: []Shift{{Start: "09:00", End: "17:00"}}}).HasBookableTime())
}

func TestWeeklyStaffHours_ForDate(t *testing.T) {
	hours := &WeeklyStaffHours{
		StaffID: "s1",
		Days: map[time.Weekday]DayHours{
			time.Monday: {Weekday: time.Monday, IsWorking: true, Shifts: []Shift{{Start: "09:00", End: "17:00"}}},
		},
	}

	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	assert.True(t, hours.ForDate(monday).IsWorking)
	assert.False(t, hours.ForDate(tuesday).IsWorking)
}

func TestStaticSlot_Overrides(t *testing.T) {
	slot := &StaticSlot{ID: "sl1", Capacity: 10}

	t.Run("no override", func(t *testing.T) {
		assert.Equal(t, 10, slot.EffectiveCapacity(nil))
		assert.False(t, slot.CancelledOn(nil))
	})

	t.Run("capacity override", func(t *testing.T) {
		cap := 4
		ov := &SlotOverride{SlotID: "sl1", Capacity: &cap}
		assert.Equal(t, 4, slot.EffectiveCapacity(ov))
	})

	t.Run("cancellation override", func(t *testing.T) {
		cancelled := true
		ov := &SlotOverride{SlotID: "sl1", IsCancelled: &cancelled}
		assert.True(t, slot.CancelledOn(ov))
	})
}

func TestSlotAvailability(t *testing.T) {
	full := SlotAvailability{Total: 3, Remaining: 0}
	partial := SlotAvailability{Total: 4, Remaining: 1}

	assert.True(t, full.IsFull())
	assert.True(t, partial.IsPartiallyBooked())
	assert.InDelta(t, 75.0, partial.OccupancyRate(), 0.001)
	assert.Zero(t, SlotAvailability{}.OccupancyRate())
}
