package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	app "github.com/rocketscienceinc/gameroom-backend/internal"
	"github.com/rocketscienceinc/gameroom-backend/internal/auth"
	"github.com/rocketscienceinc/gameroom-backend/internal/config"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

var errMissingSecret = errors.New("auth.jwt-secret is not configured")

type ServeCmd struct {
	Config string `short:"c" help:"Path to the config file" default:"./config.yml" type:"path"`
}

func (that *ServeCmd) Run() error {
	conf := config.MustLoad(that.Config)
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

type TokenCmd struct {
	Config string        `short:"c" help:"Path to the config file" default:"./config.yml" type:"path"`
	ID     string        `arg:"" help:"Stable player id"`
	Name   string        `short:"n" help:"Display name, defaults to the id"`
	TTL    time.Duration `help:"Token lifetime" default:"24h"`
}

func (that *TokenCmd) Run() error {
	conf := config.MustLoad(that.Config)
	if conf.Auth.JWTSecret == "" {
		return errMissingSecret
	}

	name := that.Name
	if name == "" {
		name = that.ID
	}

	token, err := auth.NewVerifier(conf.Auth.JWTSecret, false).Issue(entity.Identity{ID: that.ID, Name: name}, that.TTL)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Fprintln(os.Stdout, token)

	return nil
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
