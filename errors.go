package viewsql

import "fmt"

// Kind identifies the category of error a compiler operation can return.
//
// The current compiler never produces one itself (every operation
// succeeds for any well-typed input), but the variants are part of the
// public surface so validation can be layered on later without a
// breaking signature change.
type Kind int

const (
	// ColumnNotFound means a referenced column could not be resolved
	// against the schema or expression map.
	ColumnNotFound Kind = iota
	// InvalidConfig means the supplied configuration is structurally
	// malformed (e.g. a viewport with start_row > end_row).
	InvalidConfig
	// UnsupportedOperation means the requested feature combination is
	// not handled by this compiler.
	UnsupportedOperation
)

func (k Kind) String() string {
	switch k {
	case ColumnNotFound:
		return "ColumnNotFound"
	case InvalidConfig:
		return "InvalidConfig"
	case UnsupportedOperation:
		return "UnsupportedOperation"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by compiler operations.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewColumnNotFound returns a ColumnNotFound error for the named column.
func NewColumnNotFound(column string) *Error {
	return &Error{Kind: ColumnNotFound, Message: fmt.Sprintf("column not found: %s", column)}
}

// NewInvalidConfig returns an InvalidConfig error with the given detail.
func NewInvalidConfig(msg string) *Error {
	return &Error{Kind: InvalidConfig, Message: msg}
}

// NewUnsupportedOperation returns an UnsupportedOperation error with the
// given detail.
func NewUnsupportedOperation(msg string) *Error {
	return &Error{Kind: UnsupportedOperation, Message: msg}
}
