package domain

import "github.com/KUL-Services/bookly-sub001/pkg/types"

// StaffType distinguishes the two scheduling paradigms a staff member serves
type StaffType string

const (
	StaffDynamic StaffType = "dynamic"
	StaffStatic  StaffType = "static"
)

// RoomType mirrors StaffType for rooms
type RoomType string

const (
	RoomDynamic RoomType = "dynamic"
	RoomStatic  RoomType = "static"
)

// SchedulingMode selects the active scheduling paradigm for a calendar view
type SchedulingMode string

const (
	ModeDynamic SchedulingMode = "dynamic"
	ModeStatic  SchedulingMode = "static"
)

// Valid returns true for a known scheduling mode
func (m SchedulingMode) Valid() bool {
	return m == ModeDynamic || m == ModeStatic
}

// Branch is a business location
type Branch struct {
	ID   string
	Name string
}

// StaffMember is a bookable person
type StaffMember struct {
	ID        string
	Name      string
	BranchID  string   // primary branch
	BranchIDs []string // all branch assignments
	Type      StaffType
	Color     string
	Photo     string
	Phone     string
	Email     string

	// RoomAssignments maps weekday (0=Sunday) to a recurring room assignment
	// for static-type staff
	RoomAssignments map[int]RoomAssignment
}

// RoomAssignment is a recurring weekday room assignment for a staff member
type RoomAssignment struct {
	RoomID    string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// AssignedTo returns true if the staff member belongs to the branch
func (s *StaffMember) AssignedTo(branchID string) bool {
	if s.BranchID == branchID {
		return true
	}
	for _, id := range s.BranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}

// Room is a bookable space
type Room struct {
	ID       string
	Name     string
	BranchID string
	Type     RoomType
}

// Service is a bookable offering
type Service struct {
	ID              string
	Name            string
	BranchID        string
	Price           float64
	DurationMinutes int
}
