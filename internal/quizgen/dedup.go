package quizgen

import (
	"fmt"
	"strings"
)

// buildAvoidList formats known prompts for the request, respecting the max
// limit. Returns "None" if there are no known prompts.
func buildAvoidList(prompts []string, max int) string {
	if len(prompts) == 0 {
		return "None"
	}

	// Keep only the most recent N prompts.
	if max > 0 && len(prompts) > max {
		prompts = prompts[len(prompts)-max:]
	}

	var b strings.Builder
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}

// dedupe drops every question whose prompt already appeared earlier in qs.
func dedupe(qs []Question) []Question {
	seen := make(map[string]struct{}, len(qs))
	out := qs[:0]
	for _, q := range qs {
		if _, dup := seen[q.Key()]; dup {
			continue
		}
		seen[q.Key()] = struct{}{}
		out = append(out, q)
	}
	return out
}
