// Package messages defines the error taxonomy surfaced by the lexer, parser,
// and generator. Lexing is total and never raises a LexError; ParseError and
// GenError carry enough position information for a caller to print a single
// diagnostic line and stop.
package messages

import "fmt"

// Type names a distinct fault so callers can switch on a stable value
// instead of matching message strings.
type Type int

const (
	// ErrUnclosedFence: a delimited block's opening fence was never closed.
	ErrUnclosedFence Type = iota
	// ErrUnexpectedTableLine: a TABLE_LINE token appeared outside a table, or
	// a line other than a table row appeared inside one.
	ErrUnexpectedTableLine
	// ErrTableRowWidth: a table's total cell count is not a multiple of its
	// first row's width.
	ErrTableRowWidth
	// ErrOrphanMetadata: a metadata run was not followed by a block.
	ErrOrphanMetadata
	// ErrMalformedDirective: a line no block production accepts (a stray "+"
	// list-continuation marker or an unexpected token kind).
	ErrMalformedDirective
	// ErrRecursionDepth: the inline scanner exceeded its nesting guard.
	ErrRecursionDepth
	// ErrUnknownTemplate: the generator was asked for an unregistered template name.
	ErrUnknownTemplate
	// ErrSemanticPhaseRequired: the generator reached a construct (include::, ifdef)
	// that can only be resolved by an external semantic phase.
	ErrSemanticPhaseRequired
	// ErrRawPassthroughDisabled: a raw/passthrough construct was reached with
	// Options.AllowRawPassthrough set to false.
	ErrRawPassthroughDisabled
	// ErrUnsupportedMacro: an inline or block macro has no generation rule.
	ErrUnsupportedMacro
)

var typeNames = [...]string{
	"ErrUnclosedFence",
	"ErrUnexpectedTableLine",
	"ErrTableRowWidth",
	"ErrOrphanMetadata",
	"ErrMalformedDirective",
	"ErrRecursionDepth",
	"ErrUnknownTemplate",
	"ErrSemanticPhaseRequired",
	"ErrRawPassthroughDisabled",
	"ErrUnsupportedMacro",
}

// String implements Stringer, returning the Type's name, not its message.
func (t Type) String() string { return typeNames[t] }

// ParseError is raised by the parser on the first structural fault. The
// partial tree built before the fault is discarded by the caller.
type ParseError struct {
	Line    int
	Column  int
	Kind    Type
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// NewParseError builds a ParseError with a formatted message.
func NewParseError(line, column int, kind Type, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Column: column, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// GenError is raised by the generator for an unrepresentable construct.
// No partial output is guaranteed once a GenError is returned.
type GenError struct {
	Line    int
	Kind    Type
	Message string
}

func (e *GenError) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Message)
}

// NewGenError builds a GenError with a formatted message.
func NewGenError(line int, kind Type, format string, args ...interface{}) *GenError {
	return &GenError{Line: line, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
