package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

type postgresStats struct {
	db *pgxpool.Pool
}

// NewPostgresStatsRepository expects the game_results table created by storage.InitPostgres.
func NewPostgresStatsRepository(db *pgxpool.Pool) StatsRepository {
	return &postgresStats{
		db: db,
	}
}

func (that *postgresStats) RecordOutcome(ctx context.Context, identityID string, record entity.GameRecord) error {
	if _, err := outcomeField(record.Result); err != nil {
		return err
	}

	_, err := that.db.Exec(ctx,
		`INSERT INTO game_results (identity_id, game_type, result, created_at) VALUES ($1, $2, $3, $4)`,
		identityID, string(record.GameKind), string(record.Result), record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *postgresStats) GetStats(ctx context.Context, identityID string) (*entity.Stats, error) {
	var stats entity.Stats

	err := that.db.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE result = 'win'),
			COUNT(*) FILTER (WHERE result = 'loss'),
			COUNT(*) FILTER (WHERE result = 'draw'),
			COUNT(*)
		 FROM game_results WHERE identity_id = $1`,
		identityID,
	).Scan(&stats.Wins, &stats.Losses, &stats.Draws, &stats.GamesPlayed)
	if err != nil {
		return nil, fmt.Errorf("can't get stats: %w", err)
	}

	if stats.GamesPlayed == 0 {
		return nil, ErrStatsNotFound
	}

	return &stats, nil
}

func (that *postgresStats) GetHistory(ctx context.Context, identityID string, limit int) ([]entity.GameRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := that.db.Query(ctx,
		`SELECT game_type, result, created_at FROM game_results
		 WHERE identity_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		identityID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("can't get history: %w", err)
	}
	defer rows.Close()

	history := []entity.GameRecord{}
	for rows.Next() {
		var (
			record  entity.GameRecord
			kind    string
			outcome string
		)

		if err = rows.Scan(&kind, &outcome, &record.Timestamp); err != nil {
			return nil, fmt.Errorf("can't scan history: %w", err)
		}

		record.GameKind = entity.GameKind(kind)
		record.Result = entity.Outcome(outcome)
		record.Timestamp = record.Timestamp.UTC()
		history = append(history, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read history: %w", err)
	}

	return history, nil
}
