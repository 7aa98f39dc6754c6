package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbuddy/internal/config"
	"github.com/abhisek/quizbuddy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizbuddy",
	Short: "Picture quiz content service for young children",
	Long: "quizbuddy serves two-option picture quiz questions. Each request is answered from\n" +
		"the local question pool, a freshly generated batch, or the built-in catalog.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZ_DB env var)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: dev or prod (overrides QUIZ_LOG_MODE env var)")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL for the shared response cache (overrides QUIZ_REDIS_URL env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(supplyCmd)
	rootCmd.AddCommand(poolCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}

// openStore opens the database for the read-only diagnostic commands, which
// skip the full config.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	return openStoreAt(cmd, config.DBPathFromEnv())
}

func openStoreAt(cmd *cobra.Command, configured string) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, configured)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
