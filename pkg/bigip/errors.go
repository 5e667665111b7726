package bigip

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrConfig marks missing or malformed settings. It is fatal at startup.
	ErrConfig = errors.New("bigip: configuration error")

	// ErrAuth marks a failure to obtain a session token.
	ErrAuth = errors.New("bigip: authentication error")

	// ErrValidation marks caller input rejected before any request is sent.
	ErrValidation = errors.New("bigip: validation error")
)

// HTTPError is returned when the device answers with a non-2xx status.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	detail := strings.TrimSpace(e.Body)
	if detail == "" {
		detail = "no body"
	}
	return fmt.Sprintf("BIG-IP returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), detail)
}

// IsStatus reports whether err wraps an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var herr *HTTPError
	return errors.As(err, &herr) && herr.StatusCode == code
}

func validationErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

func configErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrConfig)
}

func authErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrAuth)
}
