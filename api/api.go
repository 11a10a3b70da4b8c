// Package api defines the websocket wire contract between the quiz
// server and its clients.
package api

import "encoding/json"

type RequestType string

const (
	RequestTypeUnknown RequestType = ""
	RequestTypeJoin    RequestType = "join"
	RequestTypeStart   RequestType = "start"
	RequestTypeAnswer  RequestType = "answer"
	RequestTypeAdvance RequestType = "advance"
	RequestTypeReset   RequestType = "reset"
)

type Request[T any] struct {
	Type RequestType `json:"type"`
	Data T           `json:"data,omitempty"`
}

type ResponseType string

const (
	ResponseTypeError            ResponseType = "error"
	ResponseTypeSessionState     ResponseType = "session-state"
	ResponseTypeJoinAccepted     ResponseType = "join-accepted"
	ResponseTypeNameTaken        ResponseType = "name-taken"
	ResponseTypeParticipantCount ResponseType = "participant-count"
	ResponseTypeAdminEligible    ResponseType = "admin-eligible"
	ResponseTypeQuestionStarted  ResponseType = "question-started"
	ResponseTypeNextQuestion     ResponseType = "next-question"
	ResponseTypeLeaderboard      ResponseType = "leaderboard"
	ResponseTypeScoreUpdate      ResponseType = "score-update"
	ResponseTypeQuizFinished     ResponseType = "quiz-finished"
)

type Response[T any] struct {
	Type    ResponseType `json:"type"`
	Message string       `json:"message,omitempty"`
	Data    T            `json:"data,omitempty"`
}

type EmptyRequestData struct{}

type EmptyResponseData struct{}

type JoinRequestData struct {
	DisplayName string `json:"displayName"`
}

type AnswerRequestData struct {
	ChoiceIndex int `json:"choiceIndex"`
}

// SessionStateData is the banner unicast to every websocket on accept.
type SessionStateData struct {
	Phase            string `json:"phase"`
	ParticipantCount int    `json:"participantCount"`
	Position         int    `json:"position,omitempty"`
	TotalQuestions   int    `json:"totalQuestions"`
}

type JoinAcceptedData struct {
	DisplayName string `json:"displayName"`
}

type NameTakenData struct {
	DisplayName string `json:"displayName"`
}

type ParticipantCountData struct {
	Count int `json:"count"`
}

// QuestionData is a question as broadcast to clients. It deliberately
// carries no correct choice index.
type QuestionData struct {
	Prompt           string   `json:"prompt"`
	Choices          []string `json:"choices"`
	TimeLimitSeconds int      `json:"timeLimitSeconds"`
}

type QuestionStartedData struct {
	Question QuestionData `json:"question"`
	Position int          `json:"position"`
	Total    int          `json:"total"`
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	DisplayName    string `json:"displayName"`
	Score          int    `json:"score"`
	CorrectCount   int    `json:"correctCount"`
	TotalQuestions int    `json:"totalQuestions"`
}

type LeaderboardData struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type ScoreUpdateData struct {
	Score        int `json:"score"`
	CorrectCount int `json:"correctCount"`
}

// QuestionBreakdown aggregates the recorded answers for one question.
// It is the only payload revealing a correct choice index.
type QuestionBreakdown struct {
	ID                 int      `json:"id"`
	Prompt             string   `json:"prompt"`
	Choices            []string `json:"choices"`
	CorrectChoiceIndex int      `json:"correctChoiceIndex"`
	AnswerCounts       []int    `json:"answerCounts"`
	CorrectCount       int      `json:"correctCount"`
}

type QuizFinishedData struct {
	Leaderboard          []LeaderboardEntry  `json:"leaderboard"`
	PerQuestionBreakdown []QuestionBreakdown `json:"perQuestionBreakdown"`
	TotalQuestions       int                 `json:"totalQuestions"`
}

// DecodeJSON decodes a request's raw data payload into a typed one.
// An absent payload decodes to the zero value.
func DecodeJSON[T any](data json.RawMessage) (res T, err error) {
	if len(data) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, err
	}
	return res, nil
}
