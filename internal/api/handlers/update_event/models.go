package update_event

import (
	"fmt"
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	"github.com/KUL-Services/bookly-sub001/pkg/types"
)

// UpdateEventRequest HTTP модель запроса на полную замену события
// ID берется из пути, а не из тела
type UpdateEventRequest struct {
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	AllDay    bool   `json:"allDay,omitempty"`

	Booking     *BookingPayload `json:"booking,omitempty"`
	TimeOff     *BlockPayload   `json:"timeOff,omitempty"`
	Reservation *BlockPayload   `json:"reservation,omitempty"`
}

// BookingPayload поля бронирования
type BookingPayload struct {
	StaffID         *string `json:"staffId,omitempty"`
	RoomID          *string `json:"roomId,omitempty"`
	SlotID          *string `json:"slotId,omitempty"`
	ServiceName     string  `json:"serviceName"`
	CustomerName    string  `json:"customerName"`
	Price           float64 `json:"price,omitempty"`
	Status          string  `json:"status,omitempty"`
	PaymentStatus   string  `json:"paymentStatus,omitempty"`
	SelectionMethod string  `json:"selectionMethod,omitempty"`
	Starred         bool    `json:"starred,omitempty"`
	PartySize       int     `json:"partySize,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	BookingRef      string  `json:"bookingRef,omitempty"`
}

// BlockPayload поля отгула и резерва зала
type BlockPayload struct {
	StaffID *string `json:"staffId,omitempty"`
	RoomID  *string `json:"roomId,omitempty"`
	Reason  *string `json:"reason,omitempty"`
}

// ToDomain конвертирует HTTP запрос в доменное событие с указанным id
func (r *UpdateEventRequest) ToDomain(eventID string) (*domain.CalendarEvent, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	event := &domain.CalendarEvent{
		ID:        eventID,
		Kind:      domain.EventKind(r.Kind),
		Title:     r.Title,
		Date:      date,
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),
		AllDay:    r.AllDay,
	}

	if r.Booking != nil {
		b := r.Booking
		event.Booking = &domain.BookingDetails{
			StaffID:         b.StaffID,
			RoomID:          b.RoomID,
			SlotID:          b.SlotID,
			ServiceName:     b.ServiceName,
			CustomerName:    b.CustomerName,
			Price:           b.Price,
			Status:          domain.BookingStatus(b.Status),
			PaymentStatus:   domain.PaymentStatus(b.PaymentStatus),
			SelectionMethod: domain.SelectionMethod(b.SelectionMethod),
			Starred:         b.Starred,
			PartySize:       b.PartySize,
			Notes:           b.Notes,
			BookingRef:      b.BookingRef,
		}
	}
	if r.TimeOff != nil {
		event.TimeOff = &domain.BlockDetails{
			StaffID: r.TimeOff.StaffID,
			RoomID:  r.TimeOff.RoomID,
			Reason:  r.TimeOff.Reason,
		}
	}
	if r.Reservation != nil {
		event.Reservation = &domain.BlockDetails{
			StaffID: r.Reservation.StaffID,
			RoomID:  r.Reservation.RoomID,
			Reason:  r.Reservation.Reason,
		}
	}

	return event, nil
}

// UpdateEventResponse HTTP модель обновленного события
type UpdateEventResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	AllDay    bool   `json:"allDay,omitempty"`

	Booking     *BookingPayload `json:"booking,omitempty"`
	TimeOff     *BlockPayload   `json:"timeOff,omitempty"`
	Reservation *BlockPayload   `json:"reservation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomain конвертирует доменное событие в HTTP ответ
func FromDomain(event *domain.CalendarEvent) *UpdateEventResponse {
	resp := &UpdateEventResponse{
		ID:        event.ID,
		Kind:      string(event.Kind),
		Title:     event.Title,
		Date:      event.Date.Format(domain.DateFormat),
		StartTime: event.StartTime.String(),
		EndTime:   event.EndTime.String(),
		AllDay:    event.AllDay,
		CreatedAt: event.CreatedAt,
		UpdatedAt: event.UpdatedAt,
	}

	if event.Booking != nil {
		b := event.Booking
		resp.Booking = &BookingPayload{
			StaffID:         b.StaffID,
			RoomID:          b.RoomID,
			SlotID:          b.SlotID,
			ServiceName:     b.ServiceName,
			CustomerName:    b.CustomerName,
			Price:           b.Price,
			Status:          string(b.Status),
			PaymentStatus:   string(b.PaymentStatus),
			SelectionMethod: string(b.SelectionMethod),
			Starred:         b.Starred,
			PartySize:       b.PartySize,
			Notes:           b.Notes,
			BookingRef:      b.BookingRef,
		}
	}
	if event.TimeOff != nil {
		resp.TimeOff = &BlockPayload{
			StaffID: event.TimeOff.StaffID,
			RoomID:  event.TimeOff.RoomID,
			Reason:  event.TimeOff.Reason,
		}
	}
	if event.Reservation != nil {
		resp.Reservation = &BlockPayload{
			StaffID: event.Reservation.StaffID,
			RoomID:  event.Reservation.RoomID,
			Reason:  event.Reservation.Reason,
		}
	}

	return resp
}
