package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/dashboard"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetDailyCounts returns total and checked-out record counts for a date in single query
func (r *dashboardRepositoryImpl) GetDailyCounts(ctx context.Context, date time.Time) (*dashboard.DailyCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN check_out IS NOT NULL THEN 1 ELSE 0 END), 0) as completed
		FROM attendances
		WHERE date = $1
	`

	var counts dashboard.DailyCounts
	if err := q.QueryRow(ctx, query, date).Scan(&counts.Total, &counts.Completed); err != nil {
		return nil, fmt.Errorf("failed to get daily counts: %w", err)
	}
	return &counts, nil
}
