package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbuddy/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recent supply outcomes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		category, _ := cmd.Flags().GetString("category")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QuerySupplyEvents(context.Background(), store.QueryOpts{Limit: limit, Category: category})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No supply events recorded.")
			return nil
		}

		fmt.Printf("%-19s  %-8s  %-12s  %-8s  %-15s  %5s  %6s  %s\n",
			"Time", "Request", "Category", "Source", "State", "Count", "Ms", "Error")
		fmt.Println(strings.Repeat("─", 100))
		for _, e := range events {
			fmt.Printf("%-19s  %-8s  %-12s  %-8s  %-15s  %5d  %6d  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.RequestID, 8),
				truncate(e.Category, 12),
				e.Source,
				e.State,
				e.Count,
				e.LatencyMs,
				e.ErrorMessage,
			)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsCmd.Flags().StringP("category", "c", "", "Only show one category")
}
