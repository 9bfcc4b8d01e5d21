package take

import "fmt"

// Compiling a template can fail in four ways: the scanner rejects a line it
// cannot tokenize (ScanError), the parser meets a token the grammar forbids
// at that point (UnexpectedTokenError), a directive keyword names an
// operation the language does not define (InvalidDirectiveError), or the
// directive tree itself is malformed (TakeSyntaxError). Execution adds no
// further failure modes; a compiled template degrades to empty values when
// a document lacks the shapes it queries.

// CompileError is implemented by every error New can return for template
// source. Callers that only need the category can switch on Kind instead
// of type-asserting the four concrete errors.
type CompileError interface {
	error
	// Position reports the 1-based line and column where the error was
	// found. Column is 0 when only the line is known.
	Position() (line, col int)
	// Kind names the error category: "scan", "token", "directive" or
	// "syntax".
	Kind() string
}

// ScanError reports a line the scanner could not tokenize: an unrecognized
// statement opener, an accessor it could not classify, or indentation that
// matches no open block.
type ScanError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("take: scan error at line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

func (e *ScanError) Position() (int, int) { return e.Line, e.Col }

func (e *ScanError) Kind() string { return "scan" }

// UnexpectedTokenError reports a well-formed token in a position the
// grammar does not allow, such as an accessor after a terminal text or
// attribute step.
type UnexpectedTokenError struct {
	Line  int
	Col   int
	Token string
	Msg   string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("take: unexpected %s at line %d, col %d: %s", e.Token, e.Line, e.Col, e.Msg)
}

func (e *UnexpectedTokenError) Position() (int, int) { return e.Line, e.Col }

func (e *UnexpectedTokenError) Kind() string { return "token" }

// InvalidDirectiveError reports a directive keyword that is neither save
// nor save each.
type InvalidDirectiveError struct {
	Line      int
	Directive string
}

func (e *InvalidDirectiveError) Error() string {
	return fmt.Sprintf("take: invalid directive %q at line %d", e.Directive, e.Line)
}

func (e *InvalidDirectiveError) Position() (int, int) { return e.Line, 0 }

func (e *InvalidDirectiveError) Kind() string { return "directive" }

// TakeSyntaxError reports a structurally invalid directive tree, such as a
// save each with no branch block.
type TakeSyntaxError struct {
	Line int
	Msg  string
}

func (e *TakeSyntaxError) Error() string {
	return fmt.Sprintf("take: syntax error at line %d: %s", e.Line, e.Msg)
}

func (e *TakeSyntaxError) Position() (int, int) { return e.Line, 0 }

func (e *TakeSyntaxError) Kind() string { return "syntax" }

// Interface compliance
var (
	_ CompileError = (*ScanError)(nil)
	_ CompileError = (*UnexpectedTokenError)(nil)
	_ CompileError = (*InvalidDirectiveError)(nil)
	_ CompileError = (*TakeSyntaxError)(nil)
)
