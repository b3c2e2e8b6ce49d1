package manager

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ modelID string }

func (e tooBusyError) Error() string { return "too busy: " + e.modelID }

// ErrTooBusy constructs a tooBusyError.
func ErrTooBusy(id string) error { return tooBusyError{modelID: id} }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// modelNotFoundError indicates a requested model id is not in the registry.
type modelNotFoundError struct{ id string }

func (e modelNotFoundError) Error() string { return "model not found: " + e.id }

// ErrModelNotFound constructs a modelNotFoundError.
func ErrModelNotFound(id string) error { return modelNotFoundError{id: id} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	_, ok := err.(modelNotFoundError)
	return ok
}

// artifactUnavailableError signals that a registered artifact could not be
// loaded (absent, unreadable, or written by an incompatible format version)
// so the HTTP layer can return 503 instead of 500.
type artifactUnavailableError struct {
	id  string
	err error
}

func (e artifactUnavailableError) Error() string {
	return "artifact unavailable for " + e.id + ": " + e.err.Error()
}

func (e artifactUnavailableError) Unwrap() error { return e.err }

// ErrArtifactUnavailable constructs an artifactUnavailableError.
func ErrArtifactUnavailable(id string, err error) error {
	return artifactUnavailableError{id: id, err: err}
}

// IsArtifactUnavailable reports whether err indicates a failed artifact load.
func IsArtifactUnavailable(err error) bool {
	_, ok := err.(artifactUnavailableError)
	return ok
}

// badInputError signals a malformed feature row (wrong width, empty) for
// 400 mapping.
type badInputError struct{ msg string }

func (e badInputError) Error() string { return "bad input: " + e.msg }

// ErrBadInput constructs a badInputError.
func ErrBadInput(msg string) error { return badInputError{msg: msg} }

// IsBadInput reports whether err indicates malformed request input.
func IsBadInput(err error) bool {
	_, ok := err.(badInputError)
	return ok
}
