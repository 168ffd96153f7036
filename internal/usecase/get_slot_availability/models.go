package get_slot_availability

import "time"

// Request модель запроса доступности слота
type Request struct {
	SlotID string
	Date   time.Time
}

// Response состояние вместимости слота на дату
type Response struct {
	SlotID    string
	Date      time.Time
	Total     int
	Remaining int
	Full      bool
}
