package quiz

import "time"

// Answer is one recorded answer slot. A slot holding a recorded answer
// is write-once: it is never mutated again.
type Answer struct {
	ChoiceIndex  int
	Correct      bool
	ResponseTime time.Duration
	RecordedAt   time.Time
	Recorded     bool
}

// Participant tracks one registered connection's quiz bookkeeping.
// It holds exactly one answer slot per bank question and is mutated
// only by the owning Session under its lock.
type Participant struct {
	connID            string
	displayName       string
	score             int
	answers           []Answer
	correctCount      int
	totalResponseTime time.Duration
	joinedAt          time.Time
}

func newParticipant(connID, displayName string, totalQuestions int, joinedAt time.Time) *Participant {
	return &Participant{
		connID:      connID,
		displayName: displayName,
		answers:     make([]Answer, totalQuestions),
		joinedAt:    joinedAt,
	}
}

func (p *Participant) DisplayName() string {
	return p.displayName
}

func (p *Participant) Score() int {
	return p.score
}

func (p *Participant) CorrectCount() int {
	return p.correctCount
}

func (p *Participant) TotalResponseTime() time.Duration {
	return p.totalResponseTime
}

// Answered reports whether the slot for question index i is filled.
func (p *Participant) Answered(i int) bool {
	return i >= 0 && i < len(p.answers) && p.answers[i].Recorded
}

// Answer returns the recorded answer for question index i.
func (p *Participant) Answer(i int) (Answer, bool) {
	if !p.Answered(i) {
		return Answer{}, false
	}
	return p.answers[i], true
}

// record fills the answer slot for question index i and updates the
// participant's aggregates. The slot must be unfilled.
func (p *Participant) record(i int, a Answer) {
	p.answers[i] = a
	p.totalResponseTime += a.ResponseTime
	if a.Correct {
		p.correctCount++
	}
}
