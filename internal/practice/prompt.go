package practice

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a senior chemistry teacher writing practice questions at national college entrance exam difficulty.

Rules:
- Generate exactly 3 multiple-choice questions targeting the given weak knowledge areas.
- Each question has exactly 4 options labeled A, B, C, D with exactly one correct answer.
- Questions must be rigorous. Distractors should reflect realistic misconceptions, not random values.
- Explanations must be thorough: state the principle, walk through the reasoning, and say why each distractor is wrong.
- Write the questions in the same language as the weak point names.`

// buildUserMessage lists the weak points the drill set should target.
func buildUserMessage(weakPoints []string) string {
	var b strings.Builder
	b.WriteString("Weak knowledge areas to target:\n")
	for i, wp := range weakPoints {
		fmt.Fprintf(&b, "%d. %s\n", i+1, wp)
	}
	b.WriteString("\nGenerate 3 high-difficulty practice questions covering these areas.")
	return b.String()
}
