package quiz

import "errors"

// Sentinel errors for rejected session events. None of them are fatal:
// the transport layer either reports them to the sender or drops the
// event silently, per the session's desync-tolerance policy.
var (
	ErrNameTaken          = errors.New("display name already taken")
	ErrAlreadyJoined      = errors.New("connection already joined")
	ErrInvalidPhase       = errors.New("invalid session phase")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrDuplicateAnswer    = errors.New("answer already recorded")
	ErrInvalidChoice      = errors.New("choice index out of range")
	ErrNotAdmin           = errors.New("not admin-eligible")
	ErrNoParticipants     = errors.New("no participants")
)
