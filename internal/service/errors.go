package service

import "errors"

// Error taxonomy for the questionnaire engine. Question-generation
// degradation is deliberately absent: a failed generation falls back to
// the static bank and is logged, never surfaced.
var (
	// ErrProfileUnavailable means the subject profile could not be
	// fetched or does not exist. Fatal, no retry.
	ErrProfileUnavailable = errors.New("profile unavailable")

	// ErrReportGenerationFailed means report synthesis failed. Fatal to
	// the current attempt, retryable by the caller. No synthetic report
	// is fabricated in its place.
	ErrReportGenerationFailed = errors.New("report generation failed")

	// ErrInputRejected means an empty or whitespace-only answer was
	// submitted. The session stays in its current state.
	ErrInputRejected = errors.New("answer must not be empty")

	// ErrSessionNotFound means the session ID is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionBusy means a generation call is already in flight for
	// the session. At most one request per session may be outstanding.
	ErrSessionBusy = errors.New("a generation request is already in flight for this session")

	// ErrSessionComplete means the session is terminal and accepts no
	// further answers.
	ErrSessionComplete = errors.New("session already complete")
)
