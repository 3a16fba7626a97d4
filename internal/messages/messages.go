package messages

import "hr-tui/internal/hrclient"

// Stream lifecycle for the in-flight turn.
type StreamStartMsg struct{}

// StreamEventMsg wraps one decoded chat event for the update loop. Events
// arrive in exact wire order; the app folds them into the transcript one at
// a time.
type StreamEventMsg struct {
	Event hrclient.Event
}

// StreamEndMsg signals the stream closed, normally or not.
type StreamEndMsg struct{}

// StreamErrMsg carries a transport failure for the current turn. The app
// turns it into an error step so the turn still reaches a terminal state.
type StreamErrMsg struct {
	Err error
}

// LoginResultMsg reports the outcome of a login attempt.
type LoginResultMsg struct {
	Session *hrclient.Session
	Err     error
}

// StatsMsg delivers the dashboard aggregates, or the failure to get them.
type StatsMsg struct {
	Stats *hrclient.DashboardStats
	Err   error
}
