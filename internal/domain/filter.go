package domain

import "time"

// HighlightDetail is an extra highlight dimension beyond payment/status/selection
type HighlightDetail string

const (
	DetailStarred HighlightDetail = "starred"
)

// BranchFilter narrows the calendar to selected branches
type BranchFilter struct {
	AllBranches bool
	BranchIDs   []string
}

// StaffFilter narrows the calendar to selected staff members
type StaffFilter struct {
	OnlyMe           bool
	StaffIDs         []string
	SelectedStaffID  *string // single-staff drill-down
	WorkingStaffOnly bool
}

// RoomFilter narrows the calendar to selected rooms (static mode)
type RoomFilter struct {
	AllRooms bool
	RoomIDs  []string
}

// HighlightFilters annotate events without removing them from the result.
// Values within one dimension are OR-composed; dimensions are AND-composed.
type HighlightFilters struct {
	Payments  []PaymentStatus
	Statuses  []BookingStatus
	Selection []SelectionMethod
	Details   []HighlightDetail
}

// Empty returns true if no highlight dimension is set
func (h HighlightFilters) Empty() bool {
	return len(h.Payments) == 0 && len(h.Statuses) == 0 &&
		len(h.Selection) == 0 && len(h.Details) == 0
}

// FilterState is the complete filter configuration of a calendar view
type FilterState struct {
	Branch    BranchFilter
	Staff     StaffFilter
	Room      RoomFilter
	Highlight HighlightFilters
}

// EventsFilter is the repository-level query shape for calendar events
type EventsFilter struct {
	From             *time.Time // inclusive date lower bound
	To               *time.Time // inclusive date upper bound
	StaffID          *string
	RoomID           *string
	SlotID           *string
	Kind             *EventKind
	IncludeCancelled bool
}
