package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrWindowClosed          = errors.New("prediction window closed")
	ErrIncompleteSubmission  = errors.New("incomplete submission")
	ErrInvalidPick           = errors.New("invalid pick")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrPushEndpointGone marks a push delivery failure the transport
	// reported as permanent (HTTP 404/410). The fan-out engine prunes the
	// subscription when it sees this.
	ErrPushEndpointGone = errors.New("push endpoint gone")
)
