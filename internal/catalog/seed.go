package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	"github.com/KUL-Services/bookly-sub001/pkg/types"
)

// Seed JSON-схема seed-файла каталога
// Формы полей совпадают с REST-представлением ресурсов
type Seed struct {
	Branches []BranchSeed  `json:"branches"`
	Staff    []StaffSeed   `json:"staff"`
	Rooms    []RoomSeed    `json:"rooms"`
	Services []ServiceSeed `json:"services"`
}

// BranchSeed филиал в seed-файле
type BranchSeed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StaffSeed сотрудник в seed-файле
type StaffSeed struct {
	ID              string                    `json:"id"`
	Name            string                    `json:"name"`
	BranchID        string                    `json:"branchId"`
	BranchIDs       []string                  `json:"branchIds,omitempty"`
	StaffType       string                    `json:"staffType"` // dynamic | static
	Color           string                    `json:"color,omitempty"`
	Photo           string                    `json:"photo,omitempty"`
	Phone           string                    `json:"phone,omitempty"`
	Email           string                    `json:"email,omitempty"`
	RoomAssignments map[string]RoomAssignSeed `json:"roomAssignments,omitempty"` // ключ - weekday 0..6 (0=Sunday)
}

// RoomAssignSeed закрепление зала за сотрудником на день недели
type RoomAssignSeed struct {
	RoomID    string `json:"roomId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// RoomSeed зал в seed-файле
type RoomSeed struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BranchID string `json:"branchId"`
	RoomType string `json:"roomType"` // dynamic | static
}

// ServiceSeed услуга в seed-файле
type ServiceSeed struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	BranchID        string  `json:"branchId"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// LoadSeed читает и парсит seed-файл каталога
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadSeed, err)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrLoadSeed, path, err)
	}

	return &seed, nil
}

// Load читает seed-файл и строит из него каталог
func Load(path string) (*Catalog, error) {
	seed, err := LoadSeed(path)
	if err != nil {
		return nil, err
	}
	return New(seed)
}

func (b *BranchSeed) toDomain() *domain.Branch {
	return &domain.Branch{ID: b.ID, Name: b.Name}
}

func (s *StaffSeed) toDomain() *domain.StaffMember {
	staff := &domain.StaffMember{
		ID:        s.ID,
		Name:      s.Name,
		BranchID:  s.BranchID,
		BranchIDs: s.BranchIDs,
		Type:      domain.StaffType(s.StaffType),
		Color:     s.Color,
		Photo:     s.Photo,
		Phone:     s.Phone,
		Email:     s.Email,
	}

	if len(s.RoomAssignments) > 0 {
		staff.RoomAssignments = make(map[int]domain.RoomAssignment, len(s.RoomAssignments))
		for day, ra := range s.RoomAssignments {
			weekday := parseWeekday(day)
			if weekday < 0 {
				continue
			}
			staff.RoomAssignments[weekday] = domain.RoomAssignment{
				RoomID:    ra.RoomID,
				StartTime: types.TimeString(ra.StartTime),
				EndTime:   types.TimeString(ra.EndTime),
			}
		}
	}

	return staff
}

func (r *RoomSeed) toDomain() *domain.Room {
	return &domain.Room{
		ID:       r.ID,
		Name:     r.Name,
		BranchID: r.BranchID,
		Type:     domain.RoomType(r.RoomType),
	}
}

func (s *ServiceSeed) toDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		BranchID:        s.BranchID,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
}

// parseWeekday конвертирует ключ "0".."6" в день недели, -1 для мусора
func parseWeekday(s string) int {
	if len(s) != 1 || s[0] < '0' || s[0] > '6' {
		return -1
	}
	return int(s[0] - '0')
}
