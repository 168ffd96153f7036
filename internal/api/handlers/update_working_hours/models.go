package update_working_hours

import (
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/domain"
	"github.com/KUL-Services/bookly-sub001/pkg/types"
)

// UpdateWorkingHoursRequest тело запроса замены расписания на день недели
type UpdateWorkingHoursRequest struct {
	IsWorking bool       `json:"isWorking"`
	Shifts    []ShiftDTO `json:"shifts"`
}

// ShiftDTO смена с перерывами
type ShiftDTO struct {
	ID     string     `json:"id"`
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Breaks []BreakDTO `json:"breaks,omitempty"`
}

// BreakDTO перерыв внутри смены
type BreakDTO struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToDomain конвертирует запрос в доменную модель дня
func (r *UpdateWorkingHoursRequest) ToDomain(weekday time.Weekday) domain.DayHours {
	day := domain.DayHours{
		Weekday:   weekday,
		IsWorking: r.IsWorking,
		Shifts:    make([]domain.Shift, 0, len(r.Shifts)),
	}

	for _, s := range r.Shifts {
		shift := domain.Shift{
			ID:     s.ID,
			Start:  types.TimeString(s.Start),
			End:    types.TimeString(s.End),
			Breaks: make([]domain.Break, 0, len(s.Breaks)),
		}
		for _, b := range s.Breaks {
			shift.Breaks = append(shift.Breaks, domain.Break{
				ID:    b.ID,
				Start: types.TimeString(b.Start),
				End:   types.TimeString(b.End),
			})
		}
		day.Shifts = append(day.Shifts, shift)
	}

	return day
}

// WeeklyHoursResponse недельное расписание сотрудника после замены
type WeeklyHoursResponse struct {
	StaffID string   `json:"staffId"`
	Days    []DayDTO `json:"days"`
}

// DayDTO расписание одного дня недели
type DayDTO struct {
	Weekday   int        `json:"weekday"`
	IsWorking bool       `json:"isWorking"`
	Shifts    []ShiftDTO `json:"shifts"`
}

// FromDomainWeek конвертирует недельное расписание в HTTP модель
// Дни идут по порядку воскресенье..суббота, отсутствующие - нерабочие
func FromDomainWeek(weekly *domain.WeeklyStaffHours) *WeeklyHoursResponse {
	resp := &WeeklyHoursResponse{
		StaffID: weekly.StaffID,
		Days:    make([]DayDTO, 0, 7),
	}

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day, ok := weekly.Days[weekday]
		if !ok {
			resp.Days = append(resp.Days, DayDTO{Weekday: int(weekday), Shifts: []ShiftDTO{}})
			continue
		}

		dto := DayDTO{
			Weekday:   int(weekday),
			IsWorking: day.IsWorking,
			Shifts:    make([]ShiftDTO, 0, len(day.Shifts)),
		}
		for _, s := range day.Shifts {
			shift := ShiftDTO{
				ID:    s.ID,
				Start: s.Start.String(),
				End:   s.End.String(),
			}
			for _, b := range s.Breaks {
				shift.Breaks = append(shift.Breaks, BreakDTO{
					ID:    b.ID,
					Start: b.Start.String(),
					End:   b.End.String(),
				})
			}
			dto.Shifts = append(dto.Shifts, shift)
		}
		resp.Days = append(resp.Days, dto)
	}

	return resp
}
