package quiz

import (
	"strings"
	"testing"

	"livequiz-backend/api"
)

func TestLoadBank(t *testing.T) {
	bank, err := LoadBank(strings.NewReader(`
questions:
  - id: 1
    prompt: "How many continents are there?"
    choices: ["5", "6", "7", "8"]
    correct: 2
    timeLimitSeconds: 15
  - prompt: "Largest ocean?"
    choices: ["Atlantic", "Pacific"]
    correct: 1
`))
	if err != nil {
		t.Fatalf("%v", err)
	}

	if bank.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", bank.Len())
	}
	if got := bank.Question(0).TimeLimitSeconds; got != 15 {
		t.Errorf("expected explicit time limit 15, got %d", got)
	}
	if got := bank.Question(1).TimeLimitSeconds; got != defaultTimeLimitSeconds {
		t.Errorf("expected default time limit, got %d", got)
	}
	if got := bank.Question(1).ID; got != 2 {
		t.Errorf("expected assigned id 2, got %d", got)
	}
}

func TestNewBankValidation(t *testing.T) {
	tests := []struct {
		name      string
		questions []api.Question
	}{
		{
			name:      "empty bank",
			questions: nil,
		},
		{
			name: "missing prompt",
			questions: []api.Question{
				{Choices: []string{"a", "b"}},
			},
		},
		{
			name: "single choice",
			questions: []api.Question{
				{Prompt: "?", Choices: []string{"a"}},
			},
		},
		{
			name: "correct index out of range",
			questions: []api.Question{
				{Prompt: "?", Choices: []string{"a", "b"}, Correct: 2},
			},
		},
		{
			name: "negative correct index",
			questions: []api.Question{
				{Prompt: "?", Choices: []string{"a", "b"}, Correct: -1},
			},
		},
		{
			name: "negative time limit",
			questions: []api.Question{
				{Prompt: "?", Choices: []string{"a", "b"}, TimeLimitSeconds: -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBank(tt.questions); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadBankMalformedYAML(t *testing.T) {
	if _, err := LoadBank(strings.NewReader("questions: [")); err == nil {
		t.Error("expected decode error, got nil")
	}
}
