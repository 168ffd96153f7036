package domain

import (
	"time"

	"github.com/KUL-Services/bookly-sub001/pkg/types"
)

// EventKind discriminates calendar event variants
type EventKind string

const (
	KindBooking     EventKind = "booking"
	KindTimeOff     EventKind = "timeOff"
	KindReservation EventKind = "reservation"
)

// BookingStatus represents the status of a booking event
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusNoShow      BookingStatus = "no_show"
	StatusAttended    BookingStatus = "attended"
	StatusNeedConfirm BookingStatus = "need_confirm"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

// SelectionMethod represents how the staff member was chosen for a booking
type SelectionMethod string

const (
	SelectionByClient      SelectionMethod = "by_client"
	SelectionAutomatically SelectionMethod = "automatically"
)

// CalendarEvent is a scheduled item on the calendar.
// Exactly one of Booking, TimeOff or Reservation is set, matching Kind.
type CalendarEvent struct {
	ID        string
	Kind      EventKind
	Title     string
	Date      time.Time        // calendar day, time part zeroed
	StartTime types.TimeString // wall-clock start within Date
	EndTime   types.TimeString // wall-clock end within Date
	AllDay    bool             // timeOff/reservation may block the whole day

	Booking     *BookingDetails
	TimeOff     *BlockDetails
	Reservation *BlockDetails

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingDetails carries booking-only fields.
// StaffID is set in dynamic scheduling, RoomID/SlotID in static scheduling.
type BookingDetails struct {
	StaffID         *string
	RoomID          *string
	SlotID          *string
	ServiceName     string
	CustomerName    string
	Price           float64
	Status          BookingStatus
	PaymentStatus   PaymentStatus
	SelectionMethod SelectionMethod
	Starred         bool
	PartySize       int
	Notes           *string
	BookingRef      string
}

// BlockDetails carries fields shared by timeOff and reservation events.
// These are background/blocking entries, not bookable capacity consumers.
type BlockDetails struct {
	StaffID *string
	RoomID  *string
	Reason  *string
}

// StaffID returns the staff id referenced by the event regardless of kind
func (e *CalendarEvent) StaffID() *string {
	switch e.Kind {
	case KindBooking:
		if e.Booking != nil {
			return e.Booking.StaffID
		}
	case KindTimeOff:
		if e.TimeOff != nil {
			return e.TimeOff.StaffID
		}
	case KindReservation:
		if e.Reservation != nil {
			return e.Reservation.StaffID
		}
	}
	return nil
}

// RoomID returns the room id referenced by the event regardless of kind
func (e *CalendarEvent) RoomID() *string {
	switch e.Kind {
	case KindBooking:
		if e.Booking != nil {
			return e.Booking.RoomID
		}
	case KindTimeOff:
		if e.TimeOff != nil {
			return e.TimeOff.RoomID
		}
	case KindReservation:
		if e.Reservation != nil {
			return e.Reservation.RoomID
		}
	}
	return nil
}

// IsCancelled returns true if the event is a cancelled booking
func (e *CalendarEvent) IsCancelled() bool {
	return e.Kind == KindBooking && e.Booking != nil && e.Booking.Status == StatusCancelled
}

// IsActiveBooking returns true for booking events that consume capacity
func (e *CalendarEvent) IsActiveBooking() bool {
	return e.Kind == KindBooking && e.Booking != nil && e.Booking.Status != StatusCancelled
}

// IsBlocking returns true for timeOff and reservation events
func (e *CalendarEvent) IsBlocking() bool {
	return e.Kind == KindTimeOff || e.Kind == KindReservation
}

// OverlapsWindow reports whether the event overlaps [start, end) on its own date.
// Strict interval overlap: touching boundaries do not count. All-day blocking
// events overlap any non-empty window.
func (e *CalendarEvent) OverlapsWindow(start, end types.TimeString) bool {
	if e.AllDay {
		return start.IsBefore(end)
	}
	return Overlaps(e.StartTime, e.EndTime, start, end)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Uses strict inequalities so adjacent intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// SameDay reports whether two dates fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates a time to its calendar day, preserving location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
