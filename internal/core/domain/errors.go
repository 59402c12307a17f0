package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDatasetNotFound is returned when the upstream has no record for the
	// requested dataset id.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrUpstreamUnavailable wraps transport-level failures reaching the
	// upstream platform. Distinguishable from an empty result by design.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrInvalidCredentials is returned on a failed operator login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when a protected route is reached
	// without a valid session token.
	ErrUnauthenticated = errors.New("not authenticated")
)

// ValidationError carries per-field messages for a rejected form submission.
// It is raised before any network call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
