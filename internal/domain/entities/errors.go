package entities

import "errors"

// Domain errors
var (
	// Interview session errors
	ErrInvalidState         = errors.New("operation not allowed in current session state")
	ErrEmptyAnswer          = errors.New("answer is empty")
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrDuplicateQuestion    = errors.New("duplicate question id")
	ErrAlreadyAnswered      = errors.New("question already answered")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionBusy          = errors.New("session is busy")
	ErrInvalidCandidate     = errors.New("invalid candidate profile")

	// Realtime errors
	ErrUnknownConnection = errors.New("unknown connection")
	ErrConnectionClosed  = errors.New("connection closed")
	ErrSendBufferFull    = errors.New("send buffer full")
)
