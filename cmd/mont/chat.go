package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/montlabs/mont-core/internal/chat"
	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/config"
	"github.com/montlabs/mont-core/internal/memory"
	"github.com/montlabs/mont-core/internal/nlp"
	"github.com/montlabs/mont-core/internal/notify"
	"github.com/montlabs/mont-core/internal/recovery"
	"github.com/montlabs/mont-core/internal/respond"
	"github.com/montlabs/mont-core/internal/storage"
	"github.com/montlabs/mont-core/internal/tui"
)

func chatCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive budgeting conversation",
		Long: `Start an interactive chat session with MonT.

Type expenses, budget changes, or questions in English, Filipino, or a
mix of both. Press esc or ctrl+c to leave.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			engine, cleanup, err := buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()

			common.LogInfo("starting chat session", common.Fields{"user_id": userID})
			return tui.Run(ctx, engine, userID)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user ID for the session")
	return cmd
}

// buildEngine wires storage, memory, recovery, and rendering into a chat
// engine. The returned cleanup stops the cache sweeps and closes the
// database.
func buildEngine() (*chat.Engine, func(), error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		return nil, nil, fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, common.NewUserError("couldn't open your budget database", err)
	}

	cache := memory.New(storage.NewBreakerStore(store), memoryConfig())
	cache.Start()

	dispatcher, err := recovery.NewDispatcher(
		recovery.WithNotifier(notify.NewLogNotifier(), viper.GetDuration("notify.cooldown")),
	)
	if err != nil {
		cache.Close()
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to build recovery dispatcher: %w", err)
	}

	engine := chat.NewEngine(nlp.NewProcessor(), cache, dispatcher, respond.NewResponder())
	cleanup := func() {
		cache.Close()
		if err := store.Close(); err != nil {
			common.LogError(err, "failed to close session store", nil)
		}
	}
	return engine, cleanup, nil
}

func memoryConfig() memory.Config {
	return memory.Config{
		MaxSessions:      viper.GetInt("memory.max_sessions"),
		MaxMessages:      viper.GetInt("memory.max_messages"),
		SessionTTL:       viper.GetDuration("memory.session_ttl"),
		CleanupInterval:  viper.GetDuration("memory.cleanup_interval"),
		PressureInterval: viper.GetDuration("memory.pressure_interval"),
		MemoryLimitBytes: viper.GetInt64("memory.memory_limit_bytes"),
	}
}
