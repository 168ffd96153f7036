package get_calendar

import (
	"strings"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// matchesHighlight проверяет попадание события в фильтры подсветки
// Значения внутри одного измерения объединяются через OR, измерения - через AND
// Подсветка аннотирует события, но никогда не убирает их из выдачи
func matchesHighlight(event *domain.CalendarEvent, filters domain.HighlightFilters) bool {
	if filters.Empty() {
		return false
	}
	if event.Kind != domain.KindBooking || event.Booking == nil {
		return false
	}
	b := event.Booking

	if len(filters.Payments) > 0 && !containsPayment(filters.Payments, b.PaymentStatus) {
		return false
	}
	if len(filters.Statuses) > 0 && !containsStatus(filters.Statuses, b.Status) {
		return false
	}
	if len(filters.Selection) > 0 && !containsSelection(filters.Selection, b.SelectionMethod) {
		return false
	}
	if len(filters.Details) > 0 {
		matched := false
		for _, d := range filters.Details {
			if d == domain.DetailStarred && b.Starred {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// matchesSearch проверяет попадание события в поисковую строку
// Поиск регистронезависимый, по подстроке: имя клиента, услуга, имя
// сотрудника, номер бронирования и заголовок события
func matchesSearch(event *domain.CalendarEvent, staffName string, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return false
	}

	haystacks := []string{event.Title, staffName}
	if event.Kind == domain.KindBooking && event.Booking != nil {
		haystacks = append(haystacks,
			event.Booking.CustomerName,
			event.Booking.ServiceName,
			event.Booking.BookingRef,
		)
	}

	for _, h := range haystacks {
		if h != "" && strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func containsPayment(list []domain.PaymentStatus, v domain.PaymentStatus) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsStatus(list []domain.BookingStatus, v domain.BookingStatus) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsSelection(list []domain.SelectionMethod, v domain.SelectionMethod) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
