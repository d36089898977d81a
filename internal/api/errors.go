package api

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is returned for any non-2xx gateway response. Callers
// distinguish 401 from everything else; all other statuses propagate
// verbatim.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("remote error: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Unauthorized reports whether the error is a 401.
func (e *RemoteError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsUnauthorized reports whether err wraps a 401 RemoteError.
func IsUnauthorized(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Unauthorized()
}
