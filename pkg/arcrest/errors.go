package arcrest

import "errors"

// Sentinel errors for the failure cases the client distinguishes. Transport
// and decode failures are wrapped ad hoc with their URL and are not
// represented here; they propagate unmodified in meaning.
var (
	// ErrNotFound is returned when a named child (folder, service, layer,
	// table, task, result) is absent from its parent's document.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedServiceType is returned when a catalog reports a service
	// type that has no registered handle. Falling back to a generic handle
	// would silently hide that the service's operations are unavailable, so
	// this is a hard stop.
	ErrUnsupportedServiceType = errors.New("service type not supported")

	// ErrNoResults is returned when job results are accessed before the job
	// has produced output.
	ErrNoResults = errors.New("results not available")

	// ErrJobConsumed is returned when WaitForResults is invoked on a job that
	// is already in a terminal state. Re-waiting would otherwise report the
	// stale outcome as a fresh one; submit a new job instead.
	ErrJobConsumed = errors.New("job has run before, submit a new job")
)
