package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetSystemStats returns the dashboard header using goroutines
	GetSystemStats(ctx context.Context) (*SystemStatsResponse, error)

	// GetWeeklySummary returns per-employee totals for a date range
	GetWeeklySummary(ctx context.Context, req WeeklySummaryRequest) (*WeeklySummaryResponse, error)

	// GetWeeklySummaryByWeek returns per-employee totals for an ISO week ("YYYY-Www")
	GetWeeklySummaryByWeek(ctx context.Context, week string) (*WeeklySummaryResponse, error)
}
