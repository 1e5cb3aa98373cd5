package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

type sqliteStats struct {
	conn *sql.DB
}

// NewSQLiteStatsRepository expects the game_results table created by storage.Storage.Init.
func NewSQLiteStatsRepository(conn *sql.DB) StatsRepository {
	return &sqliteStats{
		conn: conn,
	}
}

func (that *sqliteStats) RecordOutcome(ctx context.Context, identityID string, record entity.GameRecord) error {
	if _, err := outcomeField(record.Result); err != nil {
		return err
	}

	query := `INSERT INTO game_results (identity_id, game_type, result, created_at) VALUES (?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, identityID, string(record.GameKind), string(record.Result), record.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *sqliteStats) GetStats(ctx context.Context, identityID string) (*entity.Stats, error) {
	query := `SELECT
		COALESCE(SUM(CASE WHEN result = 'win' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN result = 'loss' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN result = 'draw' THEN 1 ELSE 0 END), 0),
		COUNT(*)
	FROM game_results WHERE identity_id = ?`

	var stats entity.Stats

	err := that.conn.QueryRowContext(ctx, query, identityID).Scan(&stats.Wins, &stats.Losses, &stats.Draws, &stats.GamesPlayed)
	if err != nil {
		return nil, fmt.Errorf("can't get stats: %w", err)
	}

	if stats.GamesPlayed == 0 {
		return nil, ErrStatsNotFound
	}

	return &stats, nil
}

func (that *sqliteStats) GetHistory(ctx context.Context, identityID string, limit int) ([]entity.GameRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query := `SELECT game_type, result, created_at FROM game_results
		WHERE identity_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, identityID, limit)
	if err != nil {
		return nil, fmt.Errorf("can't get history: %w", err)
	}
	defer rows.Close()

	history := []entity.GameRecord{}
	for rows.Next() {
		var (
			record    entity.GameRecord
			createdAt int64
		)

		if err = rows.Scan(&record.GameKind, &record.Result, &createdAt); err != nil {
			return nil, fmt.Errorf("can't scan history: %w", err)
		}

		record.Timestamp = time.UnixMilli(createdAt).UTC()
		history = append(history, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read history: %w", err)
	}

	return history, nil
}
