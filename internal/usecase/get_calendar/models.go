package get_calendar

import (
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// Request модель запроса составленного представления календаря
type Request struct {
	UserID string // текущий пользователь (для фильтра "только я")
	From   time.Time
	To     time.Time
	Mode   domain.SchedulingMode
	Filter domain.FilterState
	Search string // поисковая строка; подсвечивает, но не убирает события
}

// Response составленное представление календаря
// Чистая функция от (снимок хранилища, фильтры, поиск) - без побочных эффектов
type Response struct {
	Resources   []Resource        // строки календаря: сотрудники или залы
	Events      []EventView       // аннотированные события видимых ресурсов
	Backgrounds []BackgroundEntry // производные фоновые записи слотов (static)
	Cells       []Cell            // консолидированные ячейки (static)
}

// Resource строка календаря
type Resource struct {
	ID    string
	Name  string
	Color string
}

// EventView событие с аннотациями подсветки и поиска
type EventView struct {
	ID        string
	Kind      domain.EventKind
	Title     string
	Date      string // YYYY-MM-DD
	StartTime string
	EndTime   string
	AllDay    bool

	StaffID   *string
	StaffName *string // имя из каталога, placeholder для удаленных
	RoomID    *string
	SlotID    *string

	ServiceName     string
	CustomerName    string
	Price           float64
	Status          domain.BookingStatus
	PaymentStatus   domain.PaymentStatus
	SelectionMethod domain.SelectionMethod
	Starred         bool
	PartySize       int
	BookingRef      string
	Reason          *string

	Highlighted bool // попадание в активные фильтры подсветки
	SearchMatch bool // попадание в поисковую строку
}

// BackgroundEntry производная фоновая запись статичного слота на дату
// Никогда не персистится - вычисляется из слотов и переопределений
type BackgroundEntry struct {
	RoomID      string
	Date        string // YYYY-MM-DD
	SlotID      string
	ServiceName string
	StartTime   string
	EndTime     string
	Total       int
	Remaining   int
	Cancelled   bool
}

// Cell консолидированная ячейка зал/день (static)
// Видимых записей не больше domain.MaxVisibleCellEntries,
// остальные сворачиваются в OverflowCount
type Cell struct {
	RoomID        string
	Date          string // YYYY-MM-DD
	Entries       []CellEntry
	OverflowCount int // число скрытых групп ("+N еще")
	TotalBookings int // активные бронирования всех групп, включая скрытые
}

// CellEntry запись ячейки - группа бронирований одного слота
type CellEntry struct {
	Key           string // id слота, для событий без слота - время начала
	ServiceName   string
	StartTime     string
	BookingCount  int // активные бронирования группы
	TotalCapacity int // вместимость слота; без слота - число бронирований
}

func buildEventView(event *domain.CalendarEvent, staffName func(string) string) EventView {
	view := EventView{
		ID:        event.ID,
		Kind:      event.Kind,
		Title:     event.Title,
		Date:      event.Date.Format(domain.DateFormat),
		StartTime: event.StartTime.String(),
		EndTime:   event.EndTime.String(),
		AllDay:    event.AllDay,
		StaffID:   event.StaffID(),
		RoomID:    event.RoomID(),
	}

	if staffID := event.StaffID(); staffID != nil {
		name := staffName(*staffID)
		view.StaffName = &name
	}

	switch event.Kind {
	case domain.KindBooking:
		b := event.Booking
		view.SlotID = b.SlotID
		view.ServiceName = b.ServiceName
		view.CustomerName = b.CustomerName
		view.Price = b.Price
		view.Status = b.Status
		view.PaymentStatus = b.PaymentStatus
		view.SelectionMethod = b.SelectionMethod
		view.Starred = b.Starred
		view.PartySize = b.PartySize
		view.BookingRef = b.BookingRef
	case domain.KindTimeOff:
		view.Reason = event.TimeOff.Reason
	case domain.KindReservation:
		view.Reason = event.Reservation.Reason
	}

	return view
}
