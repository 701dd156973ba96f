package types

import "time"

// Feedback is a single stored feedback record. The id is assigned by the
// store at creation time, strictly increasing and never reused; the
// timestamp is likewise store-assigned.
type Feedback struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedbackCreate is the raw create payload as received from the wire.
// Rating is deliberately untyped: the payload is untrusted and a
// non-numeric rating must produce a validation rejection, not a JSON
// binding failure.
type FeedbackCreate struct {
	Name    string      `json:"name"`
	Rating  interface{} `json:"rating"`
	Message string      `json:"message"`
}
