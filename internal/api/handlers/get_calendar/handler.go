package get_calendar

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/KUL-Services/bookly-sub001/internal/api/handlers"
	"github.com/KUL-Services/bookly-sub001/internal/api/middleware"
	"github.com/KUL-Services/bookly-sub001/internal/domain"
	getCalendarUC "github.com/KUL-Services/bookly-sub001/internal/usecase/get_calendar"
)

const (
	msgMissingDateRange = "параметры from и to обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "некорректный диапазон дат"
	msgInvalidMode      = "некорректный режим календаря"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar
// Фильтры подсветки и поиск аннотируют события, но не убирают их из ответа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	query := r.URL.Query()

	fromStr := query.Get("from")
	toStr := query.Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /calendar - Missing date range")
		handlers.RespondBadRequest(w, msgMissingDateRange)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid from date %q: %v", fromStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid to date %q: %v", toStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	mode := domain.SchedulingMode(query.Get("mode"))
	if mode == "" {
		mode = domain.ModeDynamic
	}

	req := &getCalendarUC.Request{
		UserID: userID,
		From:   from,
		To:     to,
		Mode:   mode,
		Filter: parseFilterState(query),
		Search: query.Get("search"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getCalendarUC.ErrInvalidDateRange):
			h.logger.Warn("GET /calendar - Invalid date range %s..%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getCalendarUC.ErrInvalidMode):
			h.logger.Warn("GET /calendar - Invalid mode %q", mode)
			handlers.RespondBadRequest(w, msgInvalidMode)

		default:
			h.logger.Error("GET /calendar - Failed to compose calendar: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar - Composed %s view %s..%s: %d resources, %d events",
		mode, fromStr, toStr, len(result.Resources), len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseFilterState(query map[string][]string) domain.FilterState {
	get := func(key string) string {
		if vals := query[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	filter := domain.FilterState{
		Branch: domain.BranchFilter{
			AllBranches: get("allBranches") == "true",
			BranchIDs:   splitIDs(get("branchIds")),
		},
		Staff: domain.StaffFilter{
			OnlyMe:           get("onlyMe") == "true",
			StaffIDs:         splitIDs(get("staffIds")),
			WorkingStaffOnly: get("workingStaffOnly") == "true",
		},
		Room: domain.RoomFilter{
			AllRooms: get("allRooms") == "true",
			RoomIDs:  splitIDs(get("roomIds")),
		},
	}

	if selected := get("selectedStaffId"); selected != "" {
		filter.Staff.SelectedStaffID = &selected
	}

	for _, v := range splitIDs(get("highlightPayments")) {
		filter.Highlight.Payments = append(filter.Highlight.Payments, domain.PaymentStatus(v))
	}
	for _, v := range splitIDs(get("highlightStatuses")) {
		filter.Highlight.Statuses = append(filter.Highlight.Statuses, domain.BookingStatus(v))
	}
	for _, v := range splitIDs(get("highlightSelection")) {
		filter.Highlight.Selection = append(filter.Highlight.Selection, domain.SelectionMethod(v))
	}
	for _, v := range splitIDs(get("highlightDetails")) {
		filter.Highlight.Details = append(filter.Highlight.Details, domain.HighlightDetail(v))
	}

	return filter
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}
