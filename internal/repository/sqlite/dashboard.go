package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/dashboard"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewDashboardRepository(db *database.SQLiteDB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetDailyCounts implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetDailyCounts(ctx context.Context, date time.Time) (*dashboard.DailyCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN check_out IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM attendances
		WHERE date = ?
	`

	var counts dashboard.DailyCounts
	if err := q.QueryRowContext(ctx, query, formatDate(date)).Scan(&counts.Total, &counts.Completed); err != nil {
		return nil, fmt.Errorf("failed to get daily counts: %w", err)
	}
	return &counts, nil
}
