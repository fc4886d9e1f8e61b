package http

import (
	"net/http"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/dashboard"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	// GetSystemStats returns the admin header counters
	GetSystemStats(w http.ResponseWriter, r *http.Request)
	// GetWeeklySummary returns per-employee totals for start_date..end_date
	GetWeeklySummary(w http.ResponseWriter, r *http.Request)
	// GetWeeklySummaryByWeek returns per-employee totals for an ISO week
	GetWeeklySummaryByWeek(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetSystemStats handles GET /dashboard/stats
func (h *dashboardHandlerImpl) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetSystemStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeeklySummary handles GET /dashboard/weekly
func (h *dashboardHandlerImpl) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	req := dashboard.WeeklySummaryRequest{
		StartDate: r.URL.Query().Get("start_date"), // format: YYYY-MM-DD
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.dashboardService.GetWeeklySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeeklySummaryByWeek handles GET /dashboard/weekly/{week}
func (h *dashboardHandlerImpl) GetWeeklySummaryByWeek(w http.ResponseWriter, r *http.Request) {
	week := chi.URLParam(r, "week") // format: YYYY-Www

	result, err := h.dashboardService.GetWeeklySummaryByWeek(r.Context(), week)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
