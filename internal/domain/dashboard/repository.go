package dashboard

import (
	"context"
	"time"
)

// DailyCounts holds today's record counts
type DailyCounts struct {
	Total     int64
	Completed int64 // records with a check-out
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetDailyCounts returns total and checked-out record counts for a date in single query
	GetDailyCounts(ctx context.Context, date time.Time) (*DailyCounts, error)
}
