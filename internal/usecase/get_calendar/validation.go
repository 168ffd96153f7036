package get_calendar

import (
	"fmt"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
)

// maxWindowDays предельная ширина окна календаря
const maxWindowDays = 62

func validateRequest(req *Request) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: empty bounds", ErrInvalidDateRange)
	}
	if req.From.After(req.To) {
		return fmt.Errorf("%w: from %s after to %s",
			ErrInvalidDateRange, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.To.Sub(req.From).Hours() > float64(maxWindowDays)*24 {
		return fmt.Errorf("%w: window wider than %d days", ErrInvalidDateRange, maxWindowDays)
	}
	if !req.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
	return nil
}
