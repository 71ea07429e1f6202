/*
fixmsg — FIX protocol message construction library
Copyright (C) 2025 Steve Clarke <stephenlclarke@mac.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.

In accordance with section 13 of the AGPL, if you modify this program,
your modified version must prominently offer all users interacting with it
remotely through a computer network an opportunity to receive the source
code of your version.
*/

// Package fixerr carries the error-kind enumeration shared by every layer of
// this library (dictionary loading, message mutation, wire encoding) and the
// injected reporter interface used during dictionary load.
package fixerr

import "fmt"

// ErrorKind classifies a failure the way the original C interface's
// opaque-context callback did; Go callers recover it with errors.As instead
// of a (kind, context) callback pair.
type ErrorKind int

const (
	// LibraryXML indicates the dictionary XML failed to parse or to validate
	// against the expected element set.
	LibraryXML ErrorKind = iota
	// ProtocolXMLLoadFailed indicates a semantic problem with an otherwise
	// well-formed dictionary (unknown version, duplicate names, etc.).
	ProtocolXMLLoadFailed
	// UnknownField indicates a tag not reachable from the governing
	// MessageDescr or FieldDescr.
	UnknownField
	// UnknownMsg indicates a MsgType string with no MessageDescr.
	UnknownMsg
	// WrongType indicates a setter/getter kind mismatched the field's FieldKind.
	WrongType
	// NotGroup indicates a group operation against a field with no subfields.
	NotGroup
	// NotFound indicates a getter against an absent tag, or a group lookup
	// against an absent occurrence.
	NotFound
	// NoMoreSpace indicates the encoder's destination buffer was too small.
	NoMoreSpace
	// OutOfMemory is retained for parity with the source enumeration; Go's
	// allocator reports exhaustion by panicking, so this library never
	// constructs it, but callers porting code across languages can still
	// switch on it exhaustively.
	OutOfMemory
	// InvalidArgument covers caller misuse not covered by a more specific
	// kind — e.g. encoding a message with no BeginString or MsgType set.
	InvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case LibraryXML:
		return "LibraryXML"
	case ProtocolXMLLoadFailed:
		return "ProtocolXMLLoadFailed"
	case UnknownField:
		return "UnknownField"
	case UnknownMsg:
		return "UnknownMsg"
	case WrongType:
		return "WrongType"
	case NotGroup:
		return "NotGroup"
	case NotFound:
		return "NotFound"
	case NoMoreSpace:
		return "NoMoreSpace"
	case OutOfMemory:
		return "OutOfMemory"
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by runtime operations across
// dictionary, tagtable, message and wire. Callers recover the Kind with
// errors.As.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New constructs an *Error with a formatted message.
func New(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Reporter receives load-time diagnostics. It generalises the source's
// opaque-parser-context callback into a plain interface; a nil Reporter is
// legal everywhere one is accepted and means "stay silent".
type Reporter interface {
	Report(kind ErrorKind, format string, args ...any)
}

// NopReporter discards every report.
type NopReporter struct{}

// Report implements Reporter.
func (NopReporter) Report(ErrorKind, string, ...any) {}

type reporterFunc func(kind ErrorKind, format string, args ...any)

// Report implements Reporter.
func (f reporterFunc) Report(kind ErrorKind, format string, args ...any) { f(kind, format, args...) }

// Func adapts a plain function to the Reporter interface.
func Func(f func(kind ErrorKind, format string, args ...any)) Reporter {
	return reporterFunc(f)
}
