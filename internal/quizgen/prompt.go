package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write picture quiz questions for a 3.5-year-old.

Rules:
- Each question has exactly 2 options, "a" and "b", and exactly one is correct.
- Questions MUST be 2-5 words MAX (e.g. "Which is RED?", "What number?", "Find APPLE", "Which FLIES?").
- NO long sentences, NO multiple clauses, NO explanations.
- Use ONLY simple words a toddler knows, and a fun emoji as the icon of every option.
- FOOD/ANIMALS: ONLY vegetarian items. NO meat, fish, chicken, eggs, or any non-vegetarian food.
- RELIGION/CULTURE: ONLY Hinduism. Only Hindu gods, temples, festivals, and traditions.
- Be culturally appropriate for a Hindu vegetarian family.
- Counting questions may add a "display" string of repeated emoji to count.
- Return ONLY a JSON array. No prose before or after it.`

// wireExample shows the expected reply shape.
const wireExample = `[{"q":"Question?","a":{"txt":"Option A","icon":"emoji"},"b":{"txt":"Option B","icon":"emoji"},"correct":"a"},...]`

// buildUserMessage constructs the user message for one batch request.
func buildUserMessage(req Request, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d VERY SHORT questions about %q.\n", cfg.BatchSize, req.Subject())
	fmt.Fprintf(&b, "Category: %s\n", req.Category)
	b.WriteString("Reply format:\n")
	b.WriteString(wireExample)

	b.WriteString("\n\nDo not repeat these questions:\n")
	b.WriteString(buildAvoidList(req.AvoidPrompts, cfg.MaxAvoidPrompts))

	return b.String()
}
