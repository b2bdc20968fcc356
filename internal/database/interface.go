package database

import (
	"context"

	"github.com/akyairhashvil/vrtimer/internal/models"
)

// HistoryRepository defines session history operations.
type HistoryRepository interface {
	RecordSession(ctx context.Context, rec models.SessionRecord) error
	RecentSessions(ctx context.Context, limit int) ([]models.SessionRecord, error)
	SessionStats(ctx context.Context) (Stats, error)
	ClearHistory(ctx context.Context) error
}

// PlanRepository defines the remembered plan operations.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan models.Plan) error
	LoadPlan(ctx context.Context) (models.Plan, bool, error)
}

// Repository combines all repository interfaces.
type Repository interface {
	HistoryRepository
	PlanRepository
	Close() error
}

var _ Repository = (*Database)(nil)
