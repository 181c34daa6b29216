package backup

import "errors"

// Error kinds. Every error returned by Planner wraps exactly one of these, so
// callers can branch with errors.Is while the message keeps the detail.
var (
	// ErrArgument: missing or unusable input, including a source whose
	// build type cannot be determined.
	ErrArgument = errors.New("invalid argument")

	// ErrPermissionDenied: the process runs with administrator rights.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrOperationDisabled: configuration turns off backups for the
	// source's build type.
	ErrOperationDisabled = errors.New("backup disabled")

	// ErrNotFound: the source file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIO: directory creation, copy or metadata lookup failed. An existing
	// destination file also wraps fs.ErrExist.
	ErrIO = errors.New("i/o error")
)
