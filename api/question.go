package api

// Question is a question bank entry. The Correct index never leaves
// the server through QuestionData; it is only revealed in the final
// per-question breakdown.
type Question struct {
	ID               int      `json:"id"               yaml:"id"`
	Prompt           string   `json:"prompt"           yaml:"prompt"`
	Choices          []string `json:"choices"          yaml:"choices"`
	Correct          int      `json:"correct"          yaml:"correct"`
	TimeLimitSeconds int      `json:"timeLimitSeconds" yaml:"timeLimitSeconds"`
}
