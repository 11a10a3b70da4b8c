package quiz

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"livequiz-backend/api"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"
)

type Phase int

const (
	PhaseLobby Phase = iota
	PhaseActive
	PhaseFinished
)

var phaseToString = map[Phase]string{
	PhaseLobby:    "lobby",
	PhaseActive:   "active",
	PhaseFinished: "finished",
}

func (p Phase) String() string {
	if s, ok := phaseToString[p]; ok {
		return s
	}
	return "unknown"
}

// Sender delivers one outbound event to a single connection.
// Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, v any) error
}

const broadcastTimeout = 5 * time.Second

// Session is the server-authoritative quiz state machine. It owns the
// participant registry, the current question cursor and the advance
// timer, and it is the single writer of all of them.
//
// Multiple goroutines may invoke methods on a Session simultaneously;
// the mutex serializes every inbound event and the timer callback, so
// each event is processed fully before the next.
type Session struct {
	bank  *Bank
	clock clock.Clock

	mu                sync.Mutex
	phase             Phase
	current           int
	questionStartedAt time.Time
	adminConnID       string
	conns             map[string]Sender
	participants      map[string]*Participant
	advanceTimer      *clock.Timer
}

// NewSession creates a session in the lobby phase on the given bank.
func NewSession(bank *Bank) *Session {
	return NewSessionWithClock(bank, clock.New())
}

// NewSessionWithClock allows a mock clock for deterministic timer and
// response time behavior in tests.
func NewSessionWithClock(bank *Bank, clk clock.Clock) *Session {
	return &Session{
		bank:         bank,
		clock:        clk,
		phase:        PhaseLobby,
		conns:        map[string]Sender{},
		participants: map[string]*Participant{},
	}
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentIndex returns the current question index.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// NumParticipants returns the number of registered participants.
func (s *Session) NumParticipants() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.participants)
}

// Participant finds a registered participant by display name.
func (s *Session) Participant(displayName string) (*Participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants {
		if p.displayName == displayName {
			return p, true
		}
	}
	return nil, false
}

// Leaderboard returns the current ranked leaderboard projection.
func (s *Session) Leaderboard() []api.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildLeaderboard(s.participants, s.bank.Len())
}

// AddConn registers a connection and unicasts the session-state banner.
// The connection is not a participant until it joins.
func (s *Session) AddConn(ctx context.Context, connID string, sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conns[connID] = sender
	s.sendLocked(ctx, connID, api.Response[api.SessionStateData]{
		Type: api.ResponseTypeSessionState,
		Data: s.stateLocked(),
	})
}

func (s *Session) stateLocked() api.SessionStateData {
	state := api.SessionStateData{
		Phase:            s.phase.String(),
		ParticipantCount: len(s.participants),
		TotalQuestions:   s.bank.Len(),
	}
	if s.phase == PhaseActive {
		state.Position = s.current + 1
	}
	return state
}

// Join registers a participant for the connection. Valid only in the
// lobby phase with a display name that does not collide
// case-insensitively with a connected participant's.
func (s *Session) Join(ctx context.Context, connID, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLobby {
		return ErrInvalidPhase
	}
	if _, ok := s.participants[connID]; ok {
		return ErrAlreadyJoined
	}
	for _, p := range s.participants {
		if strings.EqualFold(p.displayName, displayName) {
			return ErrNameTaken
		}
	}

	s.participants[connID] = newParticipant(connID, displayName, s.bank.Len(), s.clock.Now())

	first := len(s.participants) == 1
	if first {
		s.adminConnID = connID
	}

	s.sendLocked(ctx, connID, api.Response[api.JoinAcceptedData]{
		Type: api.ResponseTypeJoinAccepted,
		Data: api.JoinAcceptedData{DisplayName: displayName},
	})
	s.broadcastParticipantCountLocked(ctx)
	s.broadcastLeaderboardLocked(ctx)

	// First joiner gets to start the quiz.
	if first {
		s.sendLocked(ctx, connID, api.Response[api.EmptyResponseData]{
			Type: api.ResponseTypeAdminEligible,
		})
	}

	return nil
}

// Start transitions the session from lobby to active, broadcasts the
// first question and arms the advance timer. Only the admin-eligible
// connection may start, and only with at least one participant.
func (s *Session) Start(ctx context.Context, connID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLobby {
		return ErrInvalidPhase
	}
	if len(s.participants) == 0 {
		return ErrNoParticipants
	}
	if connID != s.adminConnID {
		return ErrNotAdmin
	}

	s.phase = PhaseActive
	s.current = 0
	s.questionStartedAt = s.clock.Now()
	s.broadcastQuestionLocked(ctx, api.ResponseTypeQuestionStarted)
	s.armTimerLocked()

	return nil
}

// SubmitAnswer records an answer for the connection's participant
// against the server's current question. The client never picks the
// question index: a lagging or malicious client cannot score against
// a question other than the live one. A slot already holding an
// answer stays untouched.
func (s *Session) SubmitAnswer(ctx context.Context, connID string, choiceIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return ErrInvalidPhase
	}
	p, ok := s.participants[connID]
	if !ok {
		return ErrUnknownParticipant
	}
	question := s.bank.Question(s.current)
	if choiceIndex < 0 || choiceIndex >= len(question.Choices) {
		return ErrInvalidChoice
	}
	if p.Answered(s.current) {
		return ErrDuplicateAnswer
	}

	now := s.clock.Now()
	responseTime := now.Sub(s.questionStartedAt)
	correct := choiceIndex == question.Correct

	p.record(s.current, Answer{
		ChoiceIndex:  choiceIndex,
		Correct:      correct,
		ResponseTime: responseTime,
		RecordedAt:   now,
		Recorded:     true,
	})
	p.score += scorePoints(correct, responseTime)

	s.broadcastLeaderboardLocked(ctx)
	s.sendLocked(ctx, connID, api.Response[api.ScoreUpdateData]{
		Type: api.ResponseTypeScoreUpdate,
		Data: api.ScoreUpdateData{Score: p.score, CorrectCount: p.correctCount},
	})

	return nil
}

// Advance moves the session to the next question, or finishes the
// quiz when the bank is exhausted. Any registered participant may
// advance; the pending timer is cancelled before acting so manual and
// automatic advance share one path.
func (s *Session) Advance(ctx context.Context, connID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return ErrInvalidPhase
	}
	if _, ok := s.participants[connID]; !ok {
		return ErrUnknownParticipant
	}

	s.advanceLocked(ctx)

	return nil
}

// RemoveConn drops a connection and, if it had joined, its participant
// record. Historic answers are discarded with it.
func (s *Session) RemoveConn(ctx context.Context, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conns, connID)

	if _, ok := s.participants[connID]; !ok {
		return
	}
	delete(s.participants, connID)

	// Admin rights do not transfer when the first joiner leaves; the
	// session keeps running but cannot be started or reset anymore.
	if connID == s.adminConnID {
		slog.Warn("admin-eligible participant disconnected")
	}

	s.broadcastParticipantCountLocked(ctx)
	s.broadcastLeaderboardLocked(ctx)
}

// Reset returns a finished session to a fresh lobby. The session never
// resets on its own: it stays finished, rejecting joins and starts,
// until the admin asks for a reset.
func (s *Session) Reset(ctx context.Context, connID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseFinished {
		return ErrInvalidPhase
	}
	if connID != s.adminConnID {
		return ErrNotAdmin
	}

	s.phase = PhaseLobby
	s.current = 0
	s.questionStartedAt = time.Time{}
	s.adminConnID = ""
	s.participants = map[string]*Participant{}

	s.broadcastLocked(ctx, api.Response[api.SessionStateData]{
		Type: api.ResponseTypeSessionState,
		Data: s.stateLocked(),
	})

	return nil
}

// advanceLocked is the single advance path shared by manual requests
// and timer fires. The caller must hold the lock.
func (s *Session) advanceLocked(ctx context.Context) {
	s.stopTimerLocked()
	s.current++

	if s.current < s.bank.Len() {
		s.questionStartedAt = s.clock.Now()
		s.broadcastQuestionLocked(ctx, api.ResponseTypeNextQuestion)
		s.armTimerLocked()
		return
	}

	s.phase = PhaseFinished
	s.questionStartedAt = time.Time{}

	s.broadcastLocked(ctx, api.Response[api.QuizFinishedData]{
		Type: api.ResponseTypeQuizFinished,
		Data: api.QuizFinishedData{
			Leaderboard:          buildLeaderboard(s.participants, s.bank.Len()),
			PerQuestionBreakdown: s.breakdownLocked(),
			TotalQuestions:       s.bank.Len(),
		},
	})
}

// armTimerLocked schedules the auto-advance for the current question.
// The timer captures the index it was armed against: a fire for a
// question that has since advanced is a no-op.
func (s *Session) armTimerLocked() {
	index := s.current
	limit := time.Duration(s.bank.Question(index).TimeLimitSeconds) * time.Second
	s.advanceTimer = s.clock.AfterFunc(limit, func() {
		s.timerFire(index)
	})
}

func (s *Session) timerFire(index int) {
	ctx, cancel := context.WithTimeout(context.Background(), broadcastTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || index != s.current {
		return // stale timer
	}
	s.advanceLocked(ctx)
}

func (s *Session) stopTimerLocked() {
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}
}

func (s *Session) breakdownLocked() []api.QuestionBreakdown {
	breakdown := make([]api.QuestionBreakdown, s.bank.Len())
	for i := range breakdown {
		q := s.bank.Question(i)
		breakdown[i] = api.QuestionBreakdown{
			ID:                 q.ID,
			Prompt:             q.Prompt,
			Choices:            q.Choices,
			CorrectChoiceIndex: q.Correct,
			AnswerCounts:       make([]int, len(q.Choices)),
		}
		for _, p := range s.participants {
			answer, ok := p.Answer(i)
			if !ok {
				continue
			}
			breakdown[i].AnswerCounts[answer.ChoiceIndex]++
			if answer.Correct {
				breakdown[i].CorrectCount++
			}
		}
	}
	return breakdown
}

func (s *Session) broadcastQuestionLocked(ctx context.Context, resType api.ResponseType) {
	question := s.bank.Question(s.current)
	s.broadcastLocked(ctx, api.Response[api.QuestionStartedData]{
		Type: resType,
		Data: api.QuestionStartedData{
			Question: api.QuestionData{
				Prompt:           question.Prompt,
				Choices:          question.Choices,
				TimeLimitSeconds: question.TimeLimitSeconds,
			},
			Position: s.current + 1,
			Total:    s.bank.Len(),
		},
	})
}

func (s *Session) broadcastParticipantCountLocked(ctx context.Context) {
	s.broadcastLocked(ctx, api.Response[api.ParticipantCountData]{
		Type: api.ResponseTypeParticipantCount,
		Data: api.ParticipantCountData{Count: len(s.participants)},
	})
}

func (s *Session) broadcastLeaderboardLocked(ctx context.Context) {
	s.broadcastLocked(ctx, api.Response[api.LeaderboardData]{
		Type: api.ResponseTypeLeaderboard,
		Data: api.LeaderboardData{Entries: buildLeaderboard(s.participants, s.bank.Len())},
	})
}

// broadcastLocked fans an event out to every connection. Delivery is
// per recipient: one failed write never aborts the others.
func (s *Session) broadcastLocked(ctx context.Context, v any) {
	errs := errgroup.Group{}
	for connID, sender := range s.conns {
		connID, sender := connID, sender
		errs.Go(func() error {
			if err := sender.Send(ctx, v); err != nil {
				slog.Error("broadcast send",
					slog.String("conn_id", connID),
					slog.Any("error", err))
			}
			return nil
		})
	}
	_ = errs.Wait()
}

func (s *Session) sendLocked(ctx context.Context, connID string, v any) {
	sender, ok := s.conns[connID]
	if !ok {
		return
	}
	if err := sender.Send(ctx, v); err != nil {
		slog.Error("unicast send",
			slog.String("conn_id", connID),
			slog.Any("error", err))
	}
}
