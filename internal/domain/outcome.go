package domain

// Status is the tag of an Outcome: every service result is either a success
// or an error, nothing in between.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Outcome is the uniform result record the service layer hands to the API
// boundary: a status tag, a human-readable message, and on success a payload.
// It replaces ad hoc string-keyed status maps with a typed variant, so callers
// branch on Status instead of probing map keys.
type Outcome[T any] struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Payload T      `json:"payload,omitempty"`
}

// Success builds a success Outcome carrying payload.
func Success[T any](message string, payload T) Outcome[T] {
	return Outcome[T]{Status: StatusSuccess, Message: message, Payload: payload}
}

// Failure builds an error Outcome. The payload is left at its zero value.
func Failure[T any](message string) Outcome[T] {
	return Outcome[T]{Status: StatusError, Message: message}
}

// IsSuccess reports whether the outcome carries the success tag.
func (o Outcome[T]) IsSuccess() bool {
	return o.Status == StatusSuccess
}
