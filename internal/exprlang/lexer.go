// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package exprlang

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokUInt
	tokFloat
	tokString
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer tokenizes a CEL-like expression string. It is hand-written rather
// than generated: the grammar is small and fixed, and a generated lexer
// would add a build-time dependency for no benefit here.
type lexer struct {
	src  string
	pos  int
	toks []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			l.toks = append(l.toks, token{kind: tokEOF, pos: l.pos})
			return l.toks, nil
		}
		start := l.pos
		c := l.src[l.pos]
		switch {
		case c == '"' || c == '\'':
			s, err := l.readString(c)
			if err != nil {
				return nil, err
			}
			l.toks = append(l.toks, token{kind: tokString, text: s, pos: start})
		case isDigit(c):
			if err := l.readNumber(start); err != nil {
				return nil, err
			}
		case isIdentStart(c):
			for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
				l.pos++
			}
			l.toks = append(l.toks, token{kind: tokIdent, text: l.src[start:l.pos], pos: start})
		default:
			punct, ok := l.readPunct()
			if !ok {
				return nil, fmt.Errorf("exprlang: unexpected character %q at position %d", c, l.pos)
			}
			l.toks = append(l.toks, token{kind: tokPunct, text: punct, pos: start})
		}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func (l *lexer) readString(quote byte) (string, error) {
	l.pos++ // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return "", fmt.Errorf("exprlang: unterminated string literal")
		}
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			return b.String(), nil
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos++
			esc := l.src[l.pos]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"', '\'':
				b.WriteByte(esc)
			default:
				b.WriteByte(esc)
			}
			l.pos++
			continue
		}
		b.WriteByte(c)
		l.pos++
	}
}

func (l *lexer) readNumber(start int) error {
	isFloat := false
	isUint := false
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'u' || l.src[l.pos] == 'U') {
		isUint = true
		l.pos++
	}
	text := l.src[start:l.pos]
	kind := tokInt
	switch {
	case isFloat:
		kind = tokFloat
	case isUint:
		kind = tokUInt
	}
	_ = text
	l.toks = append(l.toks, token{kind: kind, text: l.src[start:l.pos], pos: start})
	return nil
}

var multiCharPuncts = []string{"&&", "||", "==", "!=", "<=", ">=", "?", ":"}

func (l *lexer) readPunct() (string, bool) {
	for _, p := range multiCharPuncts {
		if strings.HasPrefix(l.src[l.pos:], p) {
			l.pos += len(p)
			return p, true
		}
	}
	c := l.src[l.pos]
	switch c {
	case '+', '-', '*', '/', '%', '!', '<', '>', '(', ')', '[', ']', '{', '}', '.', ',':
		l.pos++
		return string(c), true
	}
	return "", false
}

// parseIntLiteral parses an integer token's text (which may carry a
// trailing u/U unsigned suffix) into its numeric value.
func parseIntLiteral(text string) (int64, error) {
	return strconv.ParseInt(strings.TrimRight(text, "uU"), 10, 64)
}

func parseUIntLiteral(text string) (uint64, error) {
	return strconv.ParseUint(strings.TrimRight(text, "uU"), 10, 64)
}
