package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tempizhere/linkdesk/internal/auth"
	"github.com/tempizhere/linkdesk/internal/config"
	"github.com/tempizhere/linkdesk/internal/coordinator"
	"github.com/tempizhere/linkdesk/internal/log"
	"github.com/tempizhere/linkdesk/internal/session"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fail()
	}
}

// fail завершает процесс с ненулевым кодом
func fail() {
	os.Exit(1)
}

// newRootCmd собирает корневую команду и подкоманды
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "linkdesk",
		Short:         "Terminal client for the link-shortening service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newListCmd(),
		newCreateCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newStatsCmd(),
		newAnalyticsCmd(),
	)
	return root
}

// newSession создаёт сессию из конфигурации и окружения.
// Готовый bearer-токен из окружения имеет приоритет над локальной выпиской JWT.
func newSession(confirm coordinator.Confirmer) (*session.Session, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	logger := log.NewLoggerWithLevel(level)

	var tokens auth.TokenSource
	if cfg.Token != "" {
		tokens = auth.NewStaticSource(cfg.Token)
	} else {
		tokens = auth.NewJWTSource(cfg.JWTSecret, cfg.UserID, time.Minute)
	}

	return session.New(cfg, tokens, confirm, logger), nil
}

// formatCreated форматирует дату создания для вывода
func formatCreated(t time.Time) string {
	return t.Local().Format("02.01.2006 15:04")
}
