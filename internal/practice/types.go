// Package practice generates targeted multiple-choice drill questions
// from the weak points found in an exam analysis.
package practice

// Question is a single generated multiple-choice question. Options are
// keyed by their labels (A through D).
type Question struct {
	ID            string            `json:"id"`
	Text          string            `json:"text"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanation   string            `json:"explanation"`
}

// QuestionCount is the fixed size of a generated drill set.
const QuestionCount = 3

// OptionLabels are the expected answer labels, in display order.
var OptionLabels = []string{"A", "B", "C", "D"}
