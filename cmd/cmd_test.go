package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/store"
)

func TestPrintQuestionsMarksCorrectOption(t *testing.T) {
	var buf bytes.Buffer
	printQuestions(&buf, []quizgen.Question{
		{Q: "Which is TALL?", A: quizgen.Option{Text: "Giraffe", Icon: "🦒"}, B: quizgen.Option{Text: "Mouse", Icon: "🐭"}, Correct: quizgen.AnswerA},
		{Q: "How many?", A: quizgen.Option{Text: "2", Icon: "2️⃣"}, B: quizgen.Option{Text: "3", Icon: "3️⃣"}, Correct: quizgen.AnswerB, Display: "🍎🍎🍎"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "*🦒 Giraffe")
	assert.NotContains(t, lines[0], "*🐭")
	assert.Contains(t, lines[1], "*3️⃣ 3")
	assert.Contains(t, lines[1], "[🍎🍎🍎]")
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{0, "$0.0000"},
		{0.0012, "$0.0012"},
		{0.01, "$0.01"},
		{1.5, "$1.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCost(tt.usd))
	}
}

func TestEstimateCost(t *testing.T) {
	total, unpriced := estimateCost([]store.UsageStats{
		{Model: "gpt-4o-mini", InputTokens: 1_000_000, OutputTokens: 1_000_000},
		{Model: "mystery-model", InputTokens: 10, OutputTokens: 10},
	})
	assert.InDelta(t, 0.75, total, 1e-9)
	assert.Equal(t, []string{"mystery-model"}, unpriced)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
}

func TestResolveDBPathFlag(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().String("db", "", "")
	want := filepath.Join(t.TempDir(), "nested", "quiz.db")
	require.NoError(t, c.Flags().Set("db", want))

	got, err := resolveDBPath(c, filepath.Join(t.TempDir(), "configured.db"))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}

func TestResolveDBPathConfigured(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().String("db", "", "")
	want := filepath.Join(t.TempDir(), "from-config", "quiz.db")

	got, err := resolveDBPath(c, want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}

func TestResolveDBPathDefault(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().String("db", "", "")
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := resolveDBPath(c, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "quizbuddy", "quizbuddy.db"), got)
}
