package calls

import "time"

// Record represents one logged phone interaction, fetched read-only from the
// external call data source and scoped to the session's model_id. Records are
// never persisted or mutated locally; a reload or identity change re-fetches.
//
// StartTime is a resolved calendar timestamp. The upstream wire format carries
// an integer whose unit is explicit client configuration (internal/synthflow);
// nothing downstream guesses units from digit counts.
type Record struct {
	CallID          string    `json:"call_id"`
	PhoneNumberFrom string    `json:"phone_number_from"`
	StartTime       time.Time `json:"start_time"`
	DurationSeconds int       `json:"duration"`
	Status          Status    `json:"status"`
	Transcript      string    `json:"transcript,omitempty"`
	RecordingURL    string    `json:"recording_url,omitempty"`
}

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusNoAnswer   Status = "no_answer"
	StatusBusy       Status = "busy"
	StatusInProgress Status = "in_progress"

	// StatusUnknown covers absent or unrecognized upstream statuses.
	// Records without a status are still valid; metrics degrade gracefully.
	StatusUnknown Status = ""
)

// ParseStatus maps an upstream status string onto the closed enum.
// Unrecognized values become StatusUnknown rather than an error.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusCompleted, StatusFailed, StatusNoAnswer, StatusBusy, StatusInProgress:
		return Status(s)
	default:
		return StatusUnknown
	}
}
