package repository

import (
	"context"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

type discardStats struct{}

// NewDiscardStatsRepository forgets every outcome. Reads always come back empty.
func NewDiscardStatsRepository() StatsRepository {
	return discardStats{}
}

func (discardStats) RecordOutcome(context.Context, string, entity.GameRecord) error {
	return nil
}

func (discardStats) GetStats(context.Context, string) (*entity.Stats, error) {
	return nil, ErrStatsNotFound
}

func (discardStats) GetHistory(context.Context, string, int) ([]entity.GameRecord, error) {
	return []entity.GameRecord{}, nil
}
