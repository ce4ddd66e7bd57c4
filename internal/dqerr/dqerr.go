// Package dqerr defines the error taxonomy shared by every dqcheck package.
//
// There are exactly three kinds, mirroring spec section 7: a
// ConfigurationError raised at construction time, an ExecutionError raised
// while a constraint runs, and "no data" which is not an error at all — it
// is encoded as ConstraintStatus Skipped by the caller, never returned here.
package dqerr

import (
	"errors"
	"fmt"
)

// Kind tags a dqcheck error; callers branch on it with IsConfiguration and
// IsExecution, which unwrap through errors.As.
type Kind int

const (
	// Configuration marks an error raised at construction time: invalid
	// identifier, invalid threshold, unregistered source, mismatched
	// column arity, or a rejected SQL injection attempt.
	Configuration Kind = iota
	// Execution marks an error raised while a constraint evaluates: a
	// session query failure, a decoder type mismatch, or (multi-source
	// only) a timeout.
	Execution
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Execution:
		return "execution"
	default:
		return "unknown"
	}
}

// Error is the concrete error type raised by dqcheck packages.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Config builds a Configuration-kind error.
func Config(op, msg string) error {
	return &Error{Kind: Configuration, Op: op, Msg: msg}
}

// Configf builds a Configuration-kind error with formatting.
func Configf(op, format string, args ...any) error {
	return &Error{Kind: Configuration, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Exec builds an Execution-kind error wrapping the cause.
func Exec(op, msg string, cause error) error {
	return &Error{Kind: Execution, Op: op, Msg: msg, Err: cause}
}

// IsConfiguration reports whether err is (or wraps) a Configuration error.
func IsConfiguration(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == Configuration
}

// IsExecution reports whether err is (or wraps) an Execution error.
func IsExecution(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == Execution
}

// ErrTimeout is a sentinel for constraint-evaluation timeouts. Nothing in
// this module wraps it: the multi-source validator reports a timed-out
// constraint as a Failure issue whose message says it timed out.
var ErrTimeout = errors.New("constraint evaluation timed out")
