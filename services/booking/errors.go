package booking

import "fmt"

// Error codes carried by FlowError. Handlers map these onto conversational
// replies instead of HTTP status codes.
const (
	CodeNotFound          = "notFound"
	CodeAlreadyBooked     = "alreadyBooked"
	CodePreconditionUnmet = "preconditionUnmet"
	CodeInvalidInput      = "invalidInput"
)

// FlowError is a user-facing failure inside a booking flow.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(format string, args ...any) error {
	return &FlowError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewAlreadyBookedError(format string, args ...any) error {
	return &FlowError{Code: CodeAlreadyBooked, Message: fmt.Sprintf(format, args...)}
}

func NewPreconditionError(format string, args ...any) error {
	return &FlowError{Code: CodePreconditionUnmet, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidInputError(format string, args ...any) error {
	return &FlowError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}
