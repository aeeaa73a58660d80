// Package errors wraps errors with the location they were raised at.
//
//	wrapped := xe.Wrap(err)
//
// The message of wrapped holds the function, file and line of the Wrap
// call, followed by the message of err. Wrapping again at each layer
// chains locations with "<-", so replacing "<-" with newlines in a log
// line reads as a stack of marks.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrWithCaller is an error bound to the place it was created.
type ErrWithCaller struct {
	at   caller
	note string
	err  error
}

type caller struct {
	funcname string
	file     string
	line     int
}

func (e *ErrWithCaller) File() string {
	return e.at.file
}

func (e *ErrWithCaller) Line() int {
	return e.at.line
}

func (e *ErrWithCaller) Error() string {
	if e.note == "" {
		return fmt.Sprintf(`@ %s "%s" l%d <- %s`, e.at.funcname, e.at.file, e.at.line, e.err.Error())
	}
	return fmt.Sprintf(`@ %s "%s" l%d (%s) <- %s`, e.at.funcname, e.at.file, e.at.line, e.note, e.err.Error())
}

func (e *ErrWithCaller) Unwrap() error {
	return e.err
}

// New creates an error with the given message, bound to the caller.
func New(text string) error {
	return wrap("", errors.New(text), 1)
}

// Wrap binds err to the caller location.
func Wrap(err error) error {
	return wrap("", err, 1)
}

// WrapWithNote binds err to the caller location, with an extra note in
// the message.
func WrapWithNote(note string, err error) error {
	return wrap(note, err, 1)
}

func wrap(note string, err error, depth int) error {
	at := caller{funcname: "(unknown func)", file: "?", line: -1}

	pc, file, line, ok := runtime.Caller(depth + 1)
	if ok {
		at.file = file
		at.line = line
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		at.funcname = fn.Name()
	}

	return &ErrWithCaller{at: at, note: note, err: err}
}
