package cms

import (
	"errors"
	"fmt"
)

// FetchError reports that a content API exchange could not complete:
// transport failure, non-2xx status, malformed body, or a document
// missing required fields. It is propagated to callers unmodified; no
// retry or partial recovery happens at this layer.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cms: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that no document exists for the requested
// identity. No fallback content is synthesized.
type NotFoundError struct {
	Type string
	UID  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cms: no %s document with uid %q", e.Type, e.UID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsFetchError reports whether err is (or wraps) a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
