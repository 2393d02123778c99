package practice

import "fmt"

// validateQuestions checks the structural invariants of a drill set:
// exactly three questions, four labeled options each, and a correct
// answer that names one of the labels.
func validateQuestions(questions []Question) error {
	if len(questions) != QuestionCount {
		return fmt.Errorf("expected %d questions, got %d", QuestionCount, len(questions))
	}

	for i, q := range questions {
		if q.Text == "" {
			return fmt.Errorf("question %d: empty text", i+1)
		}
		if q.Explanation == "" {
			return fmt.Errorf("question %d: empty explanation", i+1)
		}
		if len(q.Options) != len(OptionLabels) {
			return fmt.Errorf("question %d: expected %d options, got %d", i+1, len(OptionLabels), len(q.Options))
		}
		for _, label := range OptionLabels {
			text, ok := q.Options[label]
			if !ok {
				return fmt.Errorf("question %d: missing option %s", i+1, label)
			}
			if text == "" {
				return fmt.Errorf("question %d: option %s is empty", i+1, label)
			}
		}
		if _, ok := q.Options[q.CorrectAnswer]; !ok {
			return fmt.Errorf("question %d: correct answer %q is not an option label", i+1, q.CorrectAnswer)
		}
	}

	return nil
}
