package dsl

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenLBrace
	tokenRBrace
	tokenColon
	tokenComma
	tokenArrow
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenString:
		return "string"
	case tokenLBrace:
		return "{"
	case tokenRBrace:
		return "}"
	case tokenColon:
		return ":"
	case tokenComma:
		return ","
	case tokenArrow:
		return "=>"
	}
	return "unknown"
}

type token struct {
	kind tokenKind
	text string // identifier name or decoded string contents
	pos  Pos
}

// lexer produces tokens from DSL source. Line comments (//) are skipped.
type lexer struct {
	src  string
	off  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) pos() Pos {
	return Pos{Line: l.line, Col: l.col}
}

func (l *lexer) peek() byte {
	if l.off >= len(l.src) {
		return 0
	}
	return l.src[l.off]
}

func (l *lexer) advance() byte {
	c := l.src[l.off]
	l.off++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) skipSpaceAndComments() {
	for l.off < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.off+1 < len(l.src) && l.src[l.off+1] == '/':
			for l.off < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// next returns the next token, or a ParseError on an unrecognized byte or
// an unterminated string.
func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	pos := l.pos()
	if l.off >= len(l.src) {
		return token{kind: tokenEOF, pos: pos}, nil
	}

	c := l.peek()
	switch {
	case c == '{':
		l.advance()
		return token{kind: tokenLBrace, text: "{", pos: pos}, nil
	case c == '}':
		l.advance()
		return token{kind: tokenRBrace, text: "}", pos: pos}, nil
	case c == ':':
		l.advance()
		return token{kind: tokenColon, text: ":", pos: pos}, nil
	case c == ',':
		l.advance()
		return token{kind: tokenComma, text: ",", pos: pos}, nil
	case c == '=':
		l.advance()
		if l.peek() != '>' {
			return token{}, &ParseError{Pos: pos, Token: "=", Msg: "expected \"=>\""}
		}
		l.advance()
		return token{kind: tokenArrow, text: "=>", pos: pos}, nil
	case c == '"':
		return l.lexString(pos)
	case isIdentStart(rune(c)):
		return l.lexIdent(pos), nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	return token{}, &ParseError{Pos: pos, Token: string(r), Msg: "unrecognized character"}
}

func (l *lexer) lexIdent(pos Pos) token {
	start := l.off
	for l.off < len(l.src) && isIdentPart(rune(l.peek())) {
		l.advance()
	}
	return token{kind: tokenIdent, text: l.src[start:l.off], pos: pos}
}

func (l *lexer) lexString(pos Pos) (token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for l.off < len(l.src) {
		c := l.advance()
		switch c {
		case '"':
			return token{kind: tokenString, text: b.String(), pos: pos}, nil
		case '\\':
			if l.off >= len(l.src) {
				break
			}
			esc := l.advance()
			switch esc {
			case '"', '\\':
				b.WriteByte(esc)
			default:
				return token{}, &ParseError{Pos: pos, Token: "\\" + string(esc), Msg: "unsupported escape sequence"}
			}
		case '\n':
			return token{}, &ParseError{Pos: pos, Token: "\"", Msg: "unterminated string"}
		default:
			b.WriteByte(c)
		}
	}
	return token{}, &ParseError{Pos: pos, Token: "\"", Msg: "unterminated string"}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
