// Package analyze grades photographed chemistry exam papers with an LLM
// and produces a structured report of results and weak points.
package analyze

// Explanation is the four-part teaching breakdown for a question.
type Explanation struct {
	// Principle is the underlying chemistry concept.
	Principle string `json:"principle"`
	// Logic is the step-by-step reasoning to the correct answer.
	Logic string `json:"logic"`
	// Precautions are things to watch for when solving this kind of problem.
	Precautions string `json:"precautions"`
	// CommonMistakes describes the typical wrong turns students take.
	CommonMistakes string `json:"commonMistakes"`
}

// QuestionAnalysis is the grading result for a single exam question.
type QuestionAnalysis struct {
	ID            string      `json:"id"`
	OriginalText  string      `json:"originalText"`
	Topic         string      `json:"topic"`
	IsCorrect     bool        `json:"isCorrect"`
	StudentAnswer string      `json:"studentAnswer"`
	CorrectAnswer string      `json:"correctAnswer"`
	Explanation   Explanation `json:"explanation"`
}

// Report is the full analysis of an exam paper.
type Report struct {
	OverallScore      float64            `json:"overallScore"`
	WeakPoints        []string           `json:"weakPoints"`
	AnalyzedQuestions []QuestionAnalysis `json:"analyzedQuestions"`
}

// WrongQuestions returns the questions the student missed.
func (r *Report) WrongQuestions() []QuestionAnalysis {
	var out []QuestionAnalysis
	for _, q := range r.AnalyzedQuestions {
		if !q.IsCorrect {
			out = append(out, q)
		}
	}
	return out
}

// CorrectCount returns how many questions the student got right.
func (r *Report) CorrectCount() int {
	n := 0
	for _, q := range r.AnalyzedQuestions {
		if q.IsCorrect {
			n++
		}
	}
	return n
}
