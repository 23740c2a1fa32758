package conversations

import "time"

// Conversation is a locally persisted conversation record, scoped by model_id.
//
// Tenancy invariant: ModelID is required on every row; the admin API only ever
// returns rows matching the caller's own model_id.
type Conversation struct {
	ID              string    `json:"id" db:"id"`
	ModelID         string    `json:"model_id" db:"model_id"`
	CallID          string    `json:"call_id,omitempty" db:"call_id"`
	PhoneNumberFrom string    `json:"phone_number_from" db:"phone_number_from"`
	Transcript      string    `json:"transcript,omitempty" db:"transcript"`
	StartedAt       time.Time `json:"started_at" db:"started_at"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
