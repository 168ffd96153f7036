package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// View constants
const (
	// MaxVisibleCellEntries is the maximum number of entries a resource/day
	// cell shows before collapsing the remainder into a "+N more" affordance
	MaxVisibleCellEntries = 2

	// RemovedStaffLabel is shown for events whose staff member no longer
	// exists in the catalog
	RemovedStaffLabel = "Removed staff"
)

// ValidStatuses lists every accepted booking status
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusAttended,
	StatusNeedConfirm,
}

// ValidStatus returns true for a known booking status
func ValidStatus(s BookingStatus) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidPaymentStatus returns true for a known payment status
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPaid || s == PaymentUnpaid
}

// ValidSelectionMethod returns true for a known selection method
func ValidSelectionMethod(s SelectionMethod) bool {
	return s == SelectionByClient || s == SelectionAutomatically
}

// ValidEventKind returns true for a known event kind
func ValidEventKind(k EventKind) bool {
	return k == KindBooking || k == KindTimeOff || k == KindReservation
}
