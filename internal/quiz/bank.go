package quiz

import (
	"errors"
	"fmt"
	"io"

	"livequiz-backend/api"

	"gopkg.in/yaml.v3"
)

const defaultTimeLimitSeconds = 20

// Bank is the ordered, immutable question list a session runs on.
// It is read-only after LoadBank and safe for concurrent use.
type Bank struct {
	questions []api.Question
}

type bankFile struct {
	Questions []api.Question `yaml:"questions"`
}

// LoadBank reads a YAML question bank. A bank that cannot be loaded or
// validated is fatal to startup: the caller must not serve without one.
func LoadBank(r io.Reader) (*Bank, error) {
	var file bankFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return NewBank(file.Questions)
}

// NewBank validates questions and returns an immutable bank.
func NewBank(questions []api.Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, errors.New("question bank is empty")
	}

	for i, q := range questions {
		if q.Prompt == "" {
			return nil, fmt.Errorf("question %d: missing prompt", i)
		}
		if len(q.Choices) < 2 {
			return nil, fmt.Errorf("question %d: needs at least 2 choices", i)
		}
		if q.Correct < 0 || q.Correct >= len(q.Choices) {
			return nil, fmt.Errorf("question %d: correct index %d out of range", i, q.Correct)
		}
		if q.TimeLimitSeconds < 0 {
			return nil, fmt.Errorf("question %d: negative time limit", i)
		}
		if q.TimeLimitSeconds == 0 {
			questions[i].TimeLimitSeconds = defaultTimeLimitSeconds
		}
		if q.ID == 0 {
			questions[i].ID = i + 1
		}
	}

	return &Bank{questions: append([]api.Question(nil), questions...)}, nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Question returns the question at index i.
func (b *Bank) Question(i int) api.Question {
	return b.questions[i]
}
