package tracker

import (
	"errors"
	"fmt"
)

// UpstreamError reports a failed Tracker API read: a transport failure,
// a non-2xx status, or a malformed payload. The relay treats these as
// per-reference failures, never fatal.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("tracker %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("tracker %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("tracker %s: status %d", e.Op, e.StatusCode)
	}
}

func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// IsUpstream reports whether err originated from a Tracker API read.
func IsUpstream(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream)
}
