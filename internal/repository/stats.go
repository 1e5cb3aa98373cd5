package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const defaultHistoryLimit = 100

var ErrStatsNotFound = fmt.Errorf("stats %w", apperror.ErrNotFound)

type StatsRepository interface {
	RecordOutcome(ctx context.Context, identityID string, record entity.GameRecord) error
	GetStats(ctx context.Context, identityID string) (*entity.Stats, error)
	GetHistory(ctx context.Context, identityID string, limit int) ([]entity.GameRecord, error)
}

type redisStats struct {
	client       *redis.Client
	historyLimit int
}

// NewRedisStatsRepository keeps counters in a hash and the latest historyLimit games in a list.
func NewRedisStatsRepository(client *redis.Client, historyLimit int) StatsRepository {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}

	return &redisStats{
		client:       client,
		historyLimit: historyLimit,
	}
}

func statsKey(identityID string) string {
	return "stats:" + identityID
}

func historyKey(identityID string) string {
	return "history:" + identityID
}

func outcomeField(outcome entity.Outcome) (string, error) {
	switch outcome {
	case entity.OutcomeWin:
		return "wins", nil
	case entity.OutcomeLoss:
		return "losses", nil
	case entity.OutcomeDraw:
		return "draws", nil
	default:
		return "", fmt.Errorf("unknown outcome %q", outcome)
	}
}

func (that *redisStats) RecordOutcome(ctx context.Context, identityID string, record entity.GameRecord) error {
	field, err := outcomeField(record.Result)
	if err != nil {
		return err
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal record: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, statsKey(identityID), field, 1)
		pipe.HIncrBy(ctx, statsKey(identityID), "gamesPlayed", 1)
		pipe.LPush(ctx, historyKey(identityID), recordJSON)
		pipe.LTrim(ctx, historyKey(identityID), 0, int64(that.historyLimit-1))

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}

	return nil
}

func (that *redisStats) GetStats(ctx context.Context, identityID string) (*entity.Stats, error) {
	values, err := that.client.HGetAll(ctx, statsKey(identityID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if len(values) == 0 {
		return nil, ErrStatsNotFound
	}

	var stats entity.Stats
	for field, target := range map[string]*int{
		"wins":        &stats.Wins,
		"losses":      &stats.Losses,
		"draws":       &stats.Draws,
		"gamesPlayed": &stats.GamesPlayed,
	} {
		raw, ok := values[field]
		if !ok {
			continue
		}

		if *target, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("corrupted %s counter: %w", field, err)
		}
	}

	return &stats, nil
}

func (that *redisStats) GetHistory(ctx context.Context, identityID string, limit int) ([]entity.GameRecord, error) {
	if limit <= 0 || limit > that.historyLimit {
		limit = that.historyLimit
	}

	items, err := that.client.LRange(ctx, historyKey(identityID), 0, int64(limit-1)).Result()
	if errors.Is(err, redis.Nil) {
		return []entity.GameRecord{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	history := make([]entity.GameRecord, 0, len(items))
	for _, item := range items {
		var record entity.GameRecord
		if err = json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}

		history = append(history, record)
	}

	return history, nil
}
