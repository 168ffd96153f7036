package update_working_hours

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/KUL-Services/bookly-sub001/internal/api/handlers"
	scheduleService "github.com/KUL-Services/bookly-sub001/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeekday     = "некорректный день недели, ожидается 0-6"
	msgInvalidSchedule    = "некорректное расписание"
	msgStaffNotFound      = "сотрудник не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/staff/{staffId}/working-hours/{weekday}
// Полная замена расписания дня; при провале валидации расписание не меняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID := vars["staffId"]

	weekdayNum, err := strconv.Atoi(vars["weekday"])
	if err != nil || weekdayNum < 0 || weekdayNum > 6 {
		h.logger.Warn("PUT /staff/%s/working-hours - Invalid weekday %q", staffID, vars["weekday"])
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/%s/working-hours/%d - Invalid request body: %v", staffID, weekdayNum, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	day := req.ToDomain(time.Weekday(weekdayNum))

	if err := h.service.UpdateDay(r.Context(), staffID, day); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/%s/working-hours/%d - Staff not found", staffID, weekdayNum)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /staff/%s/working-hours/%d - Invalid schedule: %v", staffID, weekdayNum, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /staff/%s/working-hours/%d - Failed to update schedule: %v", staffID, weekdayNum, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	weekly, err := h.service.GetWeek(r.Context(), staffID)
	if err != nil {
		h.logger.Error("PUT /staff/%s/working-hours/%d - Failed to load updated week: %v", staffID, weekdayNum, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /staff/%s/working-hours/%d - Schedule updated", staffID, weekdayNum)
	handlers.RespondJSON(w, http.StatusOK, FromDomainWeek(weekly))
}
