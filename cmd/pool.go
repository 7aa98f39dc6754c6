package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbuddy/internal/pool"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Inspect the stored question pools",
}

var poolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with a stored pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		p := pool.New(pool.NewRepoStorage(s.PoolRepo()))
		cats, err := p.Categories(ctx)
		if err != nil {
			return fmt.Errorf("list pools: %w", err)
		}
		if len(cats) == 0 {
			fmt.Println("No question pools stored yet.")
			return nil
		}

		fmt.Printf("%-16s  %6s\n", "Category", "Size")
		fmt.Println(strings.Repeat("─", 24))
		for _, c := range cats {
			fmt.Printf("%-16s  %6d\n", c, p.Size(ctx, c))
		}
		return nil
	},
}

var poolShowCmd = &cobra.Command{
	Use:   "show <category>",
	Short: "Print the questions stored for a category, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		qs := pool.New(pool.NewRepoStorage(s.PoolRepo())).Read(context.Background(), args[0])
		if len(qs) == 0 {
			fmt.Printf("Pool %q is empty.\n", args[0])
			return nil
		}
		printQuestions(os.Stdout, qs)
		return nil
	},
}

func init() {
	poolCmd.AddCommand(poolListCmd)
	poolCmd.AddCommand(poolShowCmd)
}
