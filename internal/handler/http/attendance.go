package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/attendance"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/handler/http/middleware"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	// Employee
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	LogHomeOffice(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)

	// Admin
	List(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	LogLeave(w http.ResponseWriter, r *http.Request)
	RegisterHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// decodeJSON decodes the request body into dst. An empty body is accepted
// when allowEmpty is set.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// pagination reads page and limit, falling back to page 1 and 20 rows.
func pagination(r *http.Request) (int, int) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}

	return page, limit
}

func optionalQuery(r *http.Request, key string) *string {
	if value := r.URL.Query().Get(key); value != "" {
		return &value
	}
	return nil
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), attendance.CheckInRequest{EmployeeID: employeeID})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), attendance.CheckOutRequest{EmployeeID: employeeID})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// LogHomeOffice implements AttendanceHandler.
func (h *attendanceHandlerImpl) LogHomeOffice(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.HomeOfficeRequest
	if err := decodeJSON(r, &req, true); err != nil {
		slog.Warn("Failed to decode home office request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.attendanceService.LogHomeOffice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Home office registered", result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.MyAttendanceFilter{
		EmployeeID: employeeID,
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
	}
	filter.Page, filter.Limit = pagination(r)

	results, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Date:       optionalQuery(r, "date"),
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
		DayType:    optionalQuery(r, "day_type"),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}
	filter.Page, filter.Limit = pagination(r)

	h.list(w, r, filter)
}

// ListByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	filter := attendance.AttendanceFilter{
		Date:      &date,
		SortBy:    "employee_name",
		SortOrder: "asc",
	}
	filter.Page, filter.Limit = pagination(r)

	h.list(w, r, filter)
}

// ListByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	filter := attendance.AttendanceFilter{
		EmployeeID: &employeeID,
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
	}
	filter.Page, filter.Limit = pagination(r)

	h.list(w, r, filter)
}

func (h *attendanceHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter attendance.AttendanceFilter) {
	results, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req attendance.UpdateAttendanceRequest
	if err := decodeJSON(r, &req, false); err != nil {
		slog.Warn("Failed to decode attendance update", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := attendance.ExportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.attendanceService.ExportAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LogLeave implements AttendanceHandler.
func (h *attendanceHandlerImpl) LogLeave(w http.ResponseWriter, r *http.Request) {
	var req attendance.LeaveRequest
	if err := decodeJSON(r, &req, false); err != nil {
		slog.Warn("Failed to decode leave request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.LogLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave registered", result)
}

// RegisterHoliday implements AttendanceHandler.
func (h *attendanceHandlerImpl) RegisterHoliday(w http.ResponseWriter, r *http.Request) {
	var req attendance.RegisterHolidayRequest
	if err := decodeJSON(r, &req, false); err != nil {
		slog.Warn("Failed to decode holiday request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RegisterHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday registered", result)
}

// DeleteHoliday implements AttendanceHandler.
func (h *attendanceHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	result, err := h.attendanceService.DeleteHoliday(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", result)
}
