package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbuddy/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := a.cfg.Addr
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			addr = v
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(a.orchestrator, a.pool, a.catalog, a.log)
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUIZ_ADDR env var, default :8080)")
}
