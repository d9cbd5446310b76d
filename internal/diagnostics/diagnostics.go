// Package diagnostics gives the parser a single error type carrying a
// one-line, user-facing message plus the token that triggered it. Compile
// errors are not accumulated or recovered from: the first one raised aborts
// the parse, and the caller sees a single diagnostic rather than a list.
package diagnostics

import (
	"fmt"

	"github.com/camwell/cam/internal/token"
)

// ErrorCode discriminates diagnostics for tests and callers that want to
// branch on error kind without string-matching the message.
type ErrorCode string

const (
	// ErrUnexpectedToken marks a well-formed token appearing somewhere the
	// grammar doesn't allow it.
	ErrUnexpectedToken ErrorCode = "E_UNEXPECTED_TOKEN"
	// ErrUnexpectedEOF marks input that ended mid-expression.
	ErrUnexpectedEOF ErrorCode = "E_UNEXPECTED_EOF"
	// ErrUnboundVariable marks a variable reference with no enclosing binder.
	ErrUnboundVariable ErrorCode = "E_UNBOUND_VARIABLE"
	// ErrLexer marks a character sequence the lexer could not classify into
	// any token kind.
	ErrLexer ErrorCode = "E_LEXER"
	// ErrIntegerOverflow marks a numeric literal out of int64 range under
	// the "error" integer-overflow policy.
	ErrIntegerOverflow ErrorCode = "E_INTEGER_OVERFLOW"
	// ErrInternal marks a violated invariant or resource exhaustion — a
	// bug or a configured limit, not a malformed program.
	ErrInternal ErrorCode = "E_INTERNAL"
)

// DiagnosticError is the single error type raised across the parser call
// tree. Its Error() string is the one-line diagnostic shown to the caller
// ("Unexpected token: X.", "Unexpected end of input.", "Unbound variable:
// X.").
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
}

func (e *DiagnosticError) Error() string {
	return e.Message
}

// NewError builds a DiagnosticError from a code, the offending token, and a
// printf-style message.
func NewError(code ErrorCode, tok token.Token, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnexpectedToken reports a token that appeared somewhere the grammar
// doesn't allow it.
func UnexpectedToken(tok token.Token) *DiagnosticError {
	return NewError(ErrUnexpectedToken, tok, "Unexpected token: %s.", tok.String())
}

// UnexpectedEOF reports input that ended mid-expression.
func UnexpectedEOF(tok token.Token) *DiagnosticError {
	return NewError(ErrUnexpectedEOF, tok, "Unexpected end of input.")
}

// UnboundVariable reports a variable reference with no enclosing binder.
func UnboundVariable(tok token.Token, name string) *DiagnosticError {
	return NewError(ErrUnboundVariable, tok, "Unbound variable: %s.", name)
}

// IllegalToken reports a character sequence the lexer could not classify
// into any token kind — distinct from UnexpectedToken, which covers a
// well-formed token appearing somewhere the grammar doesn't allow it.
func IllegalToken(tok token.Token) *DiagnosticError {
	return NewError(ErrLexer, tok, "Illegal character: %s.", tok.Literal)
}
