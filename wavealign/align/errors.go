// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package align

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the reason of a failed alignment run.
type Kind uint8

const (
	KindUnknown Kind = iota
	MissingInput
	MalformedRecord
	InvalidMode
	BackendBuildFailure
	BackendDispatchFailure
	IOFailure
)

func (k Kind) String() string {
	switch k {
	case MissingInput:
		return "missing input"
	case MalformedRecord:
		return "malformed record"
	case InvalidMode:
		return "invalid mode"
	case BackendBuildFailure:
		return "backend build failure"
	case BackendDispatchFailure:
		return "backend dispatch failure"
	case IOFailure:
		return "io failure"
	}
	return "unknown error"
}

// Error is an error tagged with a Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // the underlying error, could be nil
}

// NewError returns an error of the given kind.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError tags err with the given kind. It returns nil if err is nil.
func WrapError(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel errors for errors.Is.
var (
	ErrMissingInput           = &Error{Kind: MissingInput}
	ErrMalformedRecord        = &Error{Kind: MalformedRecord}
	ErrInvalidMode            = &Error{Kind: InvalidMode}
	ErrBackendBuildFailure    = &Error{Kind: BackendBuildFailure}
	ErrBackendDispatchFailure = &Error{Kind: BackendDispatchFailure}
	ErrIOFailure              = &Error{Kind: IOFailure}
)

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
