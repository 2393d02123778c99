package practice

import (
	"strings"
	"testing"
)

func validQuestions() []Question {
	qs := make([]Question, QuestionCount)
	for i := range qs {
		qs[i] = Question{
			ID:   "q" + string(rune('1'+i)),
			Text: "下列说法正确的是？",
			Options: map[string]string{
				"A": "甲", "B": "乙", "C": "丙", "D": "丁",
			},
			CorrectAnswer: "B",
			Explanation:   "因为……",
		}
	}
	return qs
}

func TestValidateQuestions_Valid(t *testing.T) {
	if err := validateQuestions(validQuestions()); err != nil {
		t.Fatalf("expected valid set, got: %v", err)
	}
}

func TestValidateQuestions_WrongCount(t *testing.T) {
	qs := validQuestions()[:2]
	if err := validateQuestions(qs); err == nil {
		t.Fatal("expected error for wrong count")
	}
}

func TestValidateQuestions_MissingLabel(t *testing.T) {
	qs := validQuestions()
	delete(qs[1].Options, "D")
	qs[1].Options["E"] = "戊"
	err := validateQuestions(qs)
	if err == nil {
		t.Fatal("expected error for missing label")
	}
	if !strings.Contains(err.Error(), "missing option D") {
		t.Errorf("error should name the missing label, got: %v", err)
	}
}

func TestValidateQuestions_EmptyOption(t *testing.T) {
	qs := validQuestions()
	qs[0].Options["C"] = ""
	if err := validateQuestions(qs); err == nil {
		t.Fatal("expected error for empty option text")
	}
}

func TestValidateQuestions_CorrectAnswerNotALabel(t *testing.T) {
	qs := validQuestions()
	qs[2].CorrectAnswer = "E"
	err := validateQuestions(qs)
	if err == nil {
		t.Fatal("expected error for out-of-range correct answer")
	}
	if !strings.Contains(err.Error(), `"E"`) {
		t.Errorf("error should name the bad label, got: %v", err)
	}
}

func TestValidateQuestions_EmptyText(t *testing.T) {
	qs := validQuestions()
	qs[0].Text = ""
	if err := validateQuestions(qs); err == nil {
		t.Fatal("expected error for empty question text")
	}
}

func TestValidateQuestions_EmptyExplanation(t *testing.T) {
	qs := validQuestions()
	qs[1].Explanation = ""
	if err := validateQuestions(qs); err == nil {
		t.Fatal("expected error for empty explanation")
	}
}
