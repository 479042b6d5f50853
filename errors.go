package plist

import "errors"

// Code is the result code reported across the C boundary.
// Values match libplist's plist_err_t.
type Code int

const (
	CodeSuccess    Code = 0
	CodeInvalidArg Code = -1
	CodeFormat     Code = -2
	CodeParse      Code = -3
	CodeNoMem      Code = -4
	CodeIO         Code = -5
	CodeUnknown    Code = -255
)

func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeInvalidArg:
		return "invalid argument"
	case CodeFormat:
		return "format error"
	case CodeParse:
		return "parse error"
	case CodeNoMem:
		return "out of memory"
	case CodeIO:
		return "i/o error"
	default:
		return "unknown error"
	}
}

// Error classes. Every error returned by this module matches exactly one
// of these with errors.Is, which is how CodeOf picks a result code.
var (
	// ErrInvalidArgument covers caller mistakes and failed lookups.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFormat indicates a value cannot be represented in the requested format.
	ErrFormat = errors.New("format error")

	// ErrParse indicates malformed input bytes.
	ErrParse = errors.New("parse error")

	// ErrNoMemory is reserved for allocation failures reported by collaborators.
	ErrNoMemory = errors.New("out of memory")

	// ErrIO indicates a file or stream failure.
	ErrIO = errors.New("i/o error")
)

// Handle usage errors
var (
	// ErrNotOwning is returned when an alias is used where an owning
	// handle is required, e.g. Consume on an alias.
	ErrNotOwning = classed("handle does not own its value", ErrInvalidArgument)

	// ErrConsumed is returned by an owning handle whose value was moved out or freed.
	ErrConsumed = classed("value was moved out of this handle", ErrInvalidArgument)

	// ErrStale is returned by a handle whose node was freed, replaced or
	// moved into another container.
	ErrStale = classed("handle refers to released storage", ErrInvalidArgument)

	// ErrNilHandle is returned when a nil handle or cursor is passed.
	ErrNilHandle = classed("nil handle", ErrInvalidArgument)

	// ErrCycle is returned when a value would be moved into its own subtree.
	ErrCycle = classed("value cannot be moved into itself", ErrInvalidArgument)
)

// Lookup errors
var (
	// ErrWrongKind indicates the node has the wrong kind for the operation.
	ErrWrongKind = classed("wrong node kind", ErrInvalidArgument)

	// ErrNotFound indicates a missing key or an index out of bounds.
	ErrNotFound = classed("no such key or index", ErrInvalidArgument)

	// ErrNoCoercion indicates a value cannot be read as the requested scalar kind.
	ErrNoCoercion = classed("value cannot be coerced", ErrInvalidArgument)
)

type classedError struct {
	msg   string
	class error
}

func classed(msg string, class error) error {
	return &classedError{msg: msg, class: class}
}

func (e *classedError) Error() string { return e.msg }
func (e *classedError) Unwrap() error { return e.class }

// OpError records the operation that failed.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return "plist: " + e.Op + ": " + e.Err.Error() }
func (e *OpError) Unwrap() error { return e.Err }

func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// CodeOf maps an error to its result code.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArg
	case errors.Is(err, ErrFormat):
		return CodeFormat
	case errors.Is(err, ErrParse):
		return CodeParse
	case errors.Is(err, ErrNoMemory):
		return CodeNoMem
	case errors.Is(err, ErrIO):
		return CodeIO
	default:
		return CodeUnknown
	}
}
