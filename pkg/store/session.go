package store

// Session represents the in-flight state of an analysis conversation.
// It guards the single-question-at-a-time rule: while a question is out
// with the language model the session sits in AWAITING_RESPONSE and any
// further Ask on the same session is rejected.
type Session struct {
	ID    string `json:"id"` // ChatSessionID
	State string `json:"state"`

	// Metadata for last interaction
	LastQuery string `json:"last_query"`
}

const (
	StateIdle     = "IDLE"
	StateAwaiting = "AWAITING_RESPONSE"
)
