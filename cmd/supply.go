package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/supply"
)

var supplyCmd = &cobra.Command{
	Use:   "supply <category>",
	Short: "Fetch one batch of questions for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := buildApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.orchestrator.Supply(cmd.Context(), supply.Request{Category: args[0], Topic: topic})
		if err != nil {
			return fmt.Errorf("supply %q: %w", args[0], err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"questions": res.Questions, "source": res.Source})
		}

		fmt.Printf("Source: %s (%d questions)\n\n", res.Source, len(res.Questions))
		printQuestions(os.Stdout, res.Questions)
		return nil
	},
}

// printQuestions writes one numbered line per question, marking the correct
// option.
func printQuestions(w io.Writer, qs []quizgen.Question) {
	for i, q := range qs {
		a, b := optionLabel(q.A), optionLabel(q.B)
		if q.Correct == quizgen.AnswerA {
			a = "*" + a
		} else {
			b = "*" + b
		}
		line := fmt.Sprintf("%3d. %-32s  a) %-20s  b) %s", i+1, q.Q, a, b)
		if q.Display != "" {
			line += "  [" + q.Display + "]"
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func optionLabel(o quizgen.Option) string {
	return o.Icon + " " + o.Text
}

func init() {
	supplyCmd.Flags().StringP("topic", "t", "", "Narrow the batch to a topic within the category")
	supplyCmd.Flags().Bool("json", false, "Print the batch as JSON")
}
