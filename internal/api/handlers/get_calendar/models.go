package get_calendar

import (
	getCalendarUC "github.com/KUL-Services/bookly-sub001/internal/usecase/get_calendar"
)

// CalendarResponse HTTP модель составленного календаря
type CalendarResponse struct {
	Resources   []ResourceView    `json:"resources"`
	Events      []EventView       `json:"events"`
	Backgrounds []BackgroundView  `json:"backgrounds,omitempty"`
	Cells       []CellView        `json:"cells,omitempty"`
}

// ResourceView строка календаря
type ResourceView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// EventView аннотированное событие
type EventView struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	AllDay    bool   `json:"allDay,omitempty"`

	StaffID   *string `json:"staffId,omitempty"`
	StaffName *string `json:"staffName,omitempty"`
	RoomID    *string `json:"roomId,omitempty"`
	SlotID    *string `json:"slotId,omitempty"`

	ServiceName     string  `json:"serviceName,omitempty"`
	CustomerName    string  `json:"customerName,omitempty"`
	Price           float64 `json:"price,omitempty"`
	Status          string  `json:"status,omitempty"`
	PaymentStatus   string  `json:"paymentStatus,omitempty"`
	SelectionMethod string  `json:"selectionMethod,omitempty"`
	Starred         bool    `json:"starred,omitempty"`
	PartySize       int     `json:"partySize,omitempty"`
	BookingRef      string  `json:"bookingRef,omitempty"`
	Reason          *string `json:"reason,omitempty"`

	Highlighted bool `json:"highlighted"`
	SearchMatch bool `json:"searchMatch"`
}

// BackgroundView производная фоновая запись слота
type BackgroundView struct {
	RoomID      string `json:"roomId"`
	Date        string `json:"date"`
	SlotID      string `json:"slotId"`
	ServiceName string `json:"serviceName"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Total       int    `json:"total"`
	Remaining   int    `json:"remaining"`
	Cancelled   bool   `json:"cancelled,omitempty"`
}

// CellView консолидированная ячейка зал/день
type CellView struct {
	RoomID        string          `json:"roomId"`
	Date          string          `json:"date"`
	Entries       []CellEntryView `json:"entries"`
	OverflowCount int             `json:"overflowCount,omitempty"`
	TotalBookings int             `json:"totalBookings"`
}

// CellEntryView запись ячейки
type CellEntryView struct {
	Key           string `json:"key"`
	ServiceName   string `json:"serviceName"`
	StartTime     string `json:"startTime"`
	BookingCount  int    `json:"bookingCount"`
	TotalCapacity int    `json:"totalCapacity"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *getCalendarUC.Response) *CalendarResponse {
	resp := &CalendarResponse{
		Resources: make([]ResourceView, 0, len(result.Resources)),
		Events:    make([]EventView, 0, len(result.Events)),
	}

	for _, r := range result.Resources {
		resp.Resources = append(resp.Resources, ResourceView{ID: r.ID, Name: r.Name, Color: r.Color})
	}

	for _, e := range result.Events {
		resp.Events = append(resp.Events, EventView{
			ID:              e.ID,
			Kind:            string(e.Kind),
			Title:           e.Title,
			Date:            e.Date,
			StartTime:       e.StartTime,
			EndTime:         e.EndTime,
			AllDay:          e.AllDay,
			StaffID:         e.StaffID,
			StaffName:       e.StaffName,
			RoomID:          e.RoomID,
			SlotID:          e.SlotID,
			ServiceName:     e.ServiceName,
			CustomerName:    e.CustomerName,
			Price:           e.Price,
			Status:          string(e.Status),
			PaymentStatus:   string(e.PaymentStatus),
			SelectionMethod: string(e.SelectionMethod),
			Starred:         e.Starred,
			PartySize:       e.PartySize,
			BookingRef:      e.BookingRef,
			Reason:          e.Reason,
			Highlighted:     e.Highlighted,
			SearchMatch:     e.SearchMatch,
		})
	}

	for _, b := range result.Backgrounds {
		resp.Backgrounds = append(resp.Backgrounds, BackgroundView{
			RoomID:      b.RoomID,
			Date:        b.Date,
			SlotID:      b.SlotID,
			ServiceName: b.ServiceName,
			StartTime:   b.StartTime,
			EndTime:     b.EndTime,
			Total:       b.Total,
			Remaining:   b.Remaining,
			Cancelled:   b.Cancelled,
		})
	}

	for _, c := range result.Cells {
		cell := CellView{
			RoomID:        c.RoomID,
			Date:          c.Date,
			OverflowCount: c.OverflowCount,
			TotalBookings: c.TotalBookings,
			Entries:       make([]CellEntryView, 0, len(c.Entries)),
		}
		for _, entry := range c.Entries {
			cell.Entries = append(cell.Entries, CellEntryView{
				Key:           entry.Key,
				ServiceName:   entry.ServiceName,
				StartTime:     entry.StartTime,
				BookingCount:  entry.BookingCount,
				TotalCapacity: entry.TotalCapacity,
			})
		}
		resp.Cells = append(resp.Cells, cell)
	}

	return resp
}
