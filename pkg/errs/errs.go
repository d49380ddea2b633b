package errs

import (
	"github.com/pkg/errors"
)

// Kind classifies a business error. Every failure surfaced by the engine is one
// of these; none of them is retryable.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound means a referenced entity is absent.
	KindNotFound
	// KindForbidden means a policy check denied the operation.
	KindForbidden
	// KindConflict means a user-correctable business-rule violation
	// (duplicate pending action, duplicate name, below-minimum counts, ...).
	KindConflict
)

type kindedError struct {
	kind Kind
	err  error
}

func (e *kindedError) Error() string { return e.err.Error() }

func (e *kindedError) Unwrap() error { return e.err }

// NotFound creates a not-found error with the given message.
func NotFound(msg string) error {
	return &kindedError{kind: KindNotFound, err: errors.New(msg)}
}

// NotFoundf creates a formatted not-found error.
func NotFoundf(format string, args ...interface{}) error {
	return &kindedError{kind: KindNotFound, err: errors.Errorf(format, args...)}
}

// Forbidden creates a permission-denied error with the given message.
func Forbidden(msg string) error {
	return &kindedError{kind: KindForbidden, err: errors.New(msg)}
}

// Conflict creates a conflict error with the given message.
func Conflict(msg string) error {
	return &kindedError{kind: KindConflict, err: errors.New(msg)}
}

// Conflictf creates a formatted conflict error.
func Conflictf(format string, args ...interface{}) error {
	return &kindedError{kind: KindConflict, err: errors.Errorf(format, args...)}
}

// Wrap annotates err with msg, preserving its kind.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	var k *kindedError
	if errors.As(err, &k) {
		return &kindedError{kind: k.kind, err: errors.Wrap(err, msg)}
	}
	return errors.Wrap(err, msg)
}

// KindOf reports the kind of err, KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	var k *kindedError
	if errors.As(err, &k) {
		return k.kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsForbidden reports whether err is a permission-denied error.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
