package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/KUL-Services/bookly-sub001/pkg/types"
)

var (
	// ErrBreakOutsideShift is returned when a break range leaves its parent shift
	ErrBreakOutsideShift = errors.New("break range is outside its shift")

	// ErrShiftsOverlap is returned when two shifts within one day overlap
	ErrShiftsOverlap = errors.New("shifts within a day overlap")

	// ErrEmptyTimeRange is returned when a shift or break has start >= end
	ErrEmptyTimeRange = errors.New("time range start must be before end")
)

// Break is a non-working interval inside a shift.
// Breaks are a rendering overlay only: they do not subtract from bookable time.
type Break struct {
	ID    string
	Start types.TimeString
	End   types.TimeString
}

// Shift is a working interval within a day
type Shift struct {
	ID     string
	Start  types.TimeString
	End    types.TimeString
	Breaks []Break
}

// Contains reports whether [start, end) lies fully inside the shift
func (s *Shift) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(s.Start) && !end.IsAfter(s.End)
}

// Validate checks the shift range and that every break lies inside it
func (s *Shift) Validate() error {
	if !s.Start.IsBefore(s.End) {
		return fmt.Errorf("%w: shift %s-%s", ErrEmptyTimeRange, s.Start, s.End)
	}
	for _, b := range s.Breaks {
		if !b.Start.IsBefore(b.End) {
			return fmt.Errorf("%w: break %s-%s", ErrEmptyTimeRange, b.Start, b.End)
		}
		if b.Start.IsBefore(s.Start) || b.End.IsAfter(s.End) {
			return fmt.Errorf("%w: break %s-%s in shift %s-%s", ErrBreakOutsideShift, b.Start, b.End, s.Start, s.End)
		}
	}
	return nil
}

// DayHours is the working schedule of a staff member for one weekday
type DayHours struct {
	Weekday   time.Weekday
	IsWorking bool
	Shifts    []Shift
}

// HasBookableTime returns true if the day is working and has at least one
// shift with a non-empty time range
func (d *DayHours) HasBookableTime() bool {
	if !d.IsWorking {
		return false
	}
	for _, s := range d.Shifts {
		if s.Start.IsBefore(s.End) {
			return true
		}
	}
	return false
}

// Validate checks every shift and rejects overlapping shifts within the day
func (d *DayHours) Validate() error {
	for i := range d.Shifts {
		if err := d.Shifts[i].Validate(); err != nil {
			return err
		}
	}
	for i := range d.Shifts {
		for j := i + 1; j < len(d.Shifts); j++ {
			a, b := d.Shifts[i], d.Shifts[j]
			if Overlaps(a.Start, a.End, b.Start, b.End) {
				return fmt.Errorf("%w: %s-%s and %s-%s", ErrShiftsOverlap, a.Start, a.End, b.Start, b.End)
			}
		}
	}
	return nil
}

// WeeklyStaffHours is the full weekly schedule of one staff member
type WeeklyStaffHours struct {
	StaffID string
	Days    map[time.Weekday]DayHours
}

// ForDate resolves the day record for a date's weekday.
// A missing weekday entry is a non-working day.
func (w *WeeklyStaffHours) ForDate(date time.Time) DayHours {
	if day, ok := w.Days[date.Weekday()]; ok {
		return day
	}
	return DayHours{Weekday: date.Weekday(), IsWorking: false}
}
