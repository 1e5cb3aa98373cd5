package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type statsReader interface {
	GetStats(ctx context.Context, identityID string) (*entity.Stats, error)
	GetHistory(ctx context.Context, identityID string, limit int) ([]entity.GameRecord, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type statsHandlers struct {
	logger *slog.Logger
	stats  statsReader
}

// GetStats - returns win/loss/draw counters of an identity.
func (that *statsHandlers) GetStats(ctx echo.Context) error {
	identityID := ctx.Param("identity")
	log := that.logger.With("method", "GetStats", "identity", identityID)

	stats, err := that.stats.GetStats(ctx.Request().Context(), identityID)
	if errors.Is(err, apperror.ErrNotFound) {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "no games played yet"})
	}

	if err != nil {
		log.Error("failed to get stats", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}

	return ctx.JSON(http.StatusOK, stats)
}

// GetHistory - returns the latest finished games of an identity, newest first.
func (that *statsHandlers) GetHistory(ctx echo.Context) error {
	identityID := ctx.Param("identity")
	log := that.logger.With("method", "GetHistory", "identity", identityID)

	limit := defaultHistoryLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive number"})
		}

		limit = min(parsed, maxHistoryLimit)
	}

	history, err := that.stats.GetHistory(ctx.Request().Context(), identityID, limit)
	if err != nil {
		log.Error("failed to get history", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}

	if history == nil {
		history = []entity.GameRecord{}
	}

	return ctx.JSON(http.StatusOK, history)
}
