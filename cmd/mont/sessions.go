package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/config"
	"github.com/montlabs/mont-core/internal/memory"
	"github.com/montlabs/mont-core/internal/storage"
	"github.com/montlabs/mont-core/internal/tui"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect stored conversation sessions",
	}

	cmd.AddCommand(sessionsShowCmd())
	cmd.AddCommand(sessionsStatsCmd())
	return cmd
}

func sessionsShowCmd() *cobra.Command {
	var (
		userID string
		page   int
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a page of a user's conversation history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, cleanup, err := openCache()
			if err != nil {
				return err
			}
			defer cleanup()

			result := cache.LoadMessages(cmd.Context(), userID, page, limit)
			if result.Degraded {
				fmt.Println(tui.WarnStyle.Render("storage unavailable, showing empty history"))
			}
			if len(result.Messages) == 0 {
				fmt.Println("No messages.")
				return nil
			}

			for _, msg := range result.Messages {
				speaker := tui.UserStyle.Render("you ")
				if msg.IsBot {
					speaker = tui.BotStyle.Render("mont")
				}
				fmt.Printf("%s %s  %s\n",
					tui.SubtleStyle.Render(msg.Timestamp.Format("Jan 2 15:04")), speaker, msg.Text)
			}
			fmt.Printf("\nPage %d of %d message(s)", page, result.TotalCount)
			if result.HasMore {
				fmt.Printf(", more available with --page %d", page+1)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user ID to inspect")
	cmd.Flags().IntVar(&page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&limit, "limit", 20, "messages per page")
	return cmd
}

func sessionsStatsCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show memory cache statistics after loading a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, cleanup, err := openCache()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cache.InitializeSession(cmd.Context(), userID); err != nil {
				common.LogError(err, "failed to warm session", common.Fields{"user_id": userID})
			}

			stats := cache.Stats()
			fmt.Printf("Cached sessions:  %d\n", stats.CachedSessions)
			fmt.Printf("Total messages:   %d\n", stats.TotalMessages)
			fmt.Printf("Estimated bytes:  %d\n", stats.EstimatedBytes)
			fmt.Printf("Evictions:        %d\n", stats.Evictions)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user ID to warm before reading stats")
	return cmd
}

// openCache builds a cache over the durable store without starting the
// background sweeps; these commands are one-shot reads.
func openCache() (*memory.Cache, func(), error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, common.NewUserError("couldn't open your budget database", err)
	}

	cache := memory.New(storage.NewBreakerStore(store), memoryConfig())
	cleanup := func() {
		cache.Close()
		if err := store.Close(); err != nil {
			common.LogError(err, "failed to close session store", nil)
		}
	}
	return cache, cleanup, nil
}
