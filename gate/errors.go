package gate

import "errors"

// Sentinel errors returned by Gate.Authorize and the role guard.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRoleDenied   = errors.New("role not allowed for this route")
)
