package lexer

import "github.com/camwell/cam/internal/token"

// TokenStream is a lazy, finite stream of tokens. It wraps a Lexer with a
// one-token lookahead buffer so the parser can peek before consuming.
type TokenStream struct {
	lex     *Lexer
	peeked  *token.Token
}

// NewStream adapts a Lexer into a TokenStream.
func NewStream(l *Lexer) *TokenStream {
	return &TokenStream{lex: l}
}

// Next consumes and returns the next token.
func (s *TokenStream) Next() token.Token {
	if s.peeked != nil {
		t := *s.peeked
		s.peeked = nil
		return t
	}
	return s.lex.NextToken()
}

// Peek returns the next token without consuming it.
func (s *TokenStream) Peek() token.Token {
	if s.peeked == nil {
		t := s.lex.NextToken()
		s.peeked = &t
	}
	return *s.peeked
}
