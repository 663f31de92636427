// Package diag defines the structured error kinds shared by the namespace
// provisioning engine, so callers can use errors.Is/errors.As instead of
// string-matching error messages.
package diag

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the subsystem that produced it.
type Kind string

const (
	KindBadInput  Kind = "bad_input"
	KindFilesystem Kind = "filesystem"
	KindNetlink   Kind = "netlink"
	KindNamespace Kind = "namespace"
	KindMount     Kind = "mount"
	KindProc      Kind = "proc"
)

// Error wraps an underlying error with a Kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error

	// Idempotent is set on Netlink errors that correspond to EEXIST, where a
	// caller may choose to treat the failure as success on a re-provision.
	Idempotent bool
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Netlink(op string, err error, idempotent bool) *Error {
	return &Error{Kind: KindNetlink, Op: op, Err: err, Idempotent: idempotent}
}

// AsKind reports whether err (or any error in its chain) is a *Error of the
// given Kind.
func AsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
