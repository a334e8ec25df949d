package orchestrator

// unknownBackendError signals a backend id outside the closed enumeration.
type unknownBackendError struct{ id string }

func (e unknownBackendError) Error() string { return "unknown backend: " + e.id }

// IsUnknownBackend reports whether err indicates an unrecognized backend id.
func IsUnknownBackend(err error) bool {
	_, ok := err.(unknownBackendError)
	return ok
}

// initFailedError wraps an adapter initialization failure. The slot lands in
// the error state and the caller must retry EnsureLoaded explicitly; there is
// no automatic retry inside the core.
type initFailedError struct {
	id  string
	err error
}

func (e initFailedError) Error() string { return "backend " + e.id + " failed to load: " + e.err.Error() }
func (e initFailedError) Unwrap() error { return e.err }

// IsInitFailed reports whether err indicates a failed backend load.
func IsInitFailed(err error) bool {
	_, ok := err.(initFailedError)
	return ok
}
