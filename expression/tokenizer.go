// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expression

import (
	"unicode"

	"github.com/spf13/cast"
)

// TokenKind identifies the role of a token in an expression
type TokenKind int

const (
	ScalarToken TokenKind = iota
	VectorToken
	OperatorToken
	BracketToken
)

func (k TokenKind) String() string {
	switch k {
	case ScalarToken:
		return "scalar"
	case VectorToken:
		return "vector"
	case OperatorToken:
		return "operator"
	case BracketToken:
		return "bracket"
	default:
		return "unknown"
	}
}

// Token is a single lexical element of an expression. Scalar is only set for
// ScalarToken; Position is the 1-based index of the token's first character.
type Token struct {
	Kind     TokenKind
	Text     string
	Scalar   float64
	Position int
}

// ID returns the vector id referenced by a vector token, i.e. the token text
// without its leading marker
func (t Token) ID() string {
	if t.Kind != VectorToken || len(t.Text) == 0 {
		return ""
	}
	return t.Text[1:]
}

type state int

const (
	stateStart state = iota
	stateScalar
	stateDecimal
	stateVector
	stateOperator
	stateBracket
	stateEnd
)

// char is a significant (non-whitespace) character and its 1-based position in the
// original expression
type char struct {
	r   rune
	pos int
}

// noChar marks the absence of a following character
const noChar rune = -1

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isVectorMarker(r rune) bool {
	return r == 'v' || r == 'V'
}

func isOperator(r rune) bool {
	return r == '+' || r == '-' || r == '*' || r == '/'
}

func isBracket(r rune) bool {
	return r == '(' || r == ')'
}

// transition returns the state reached by consuming c while in curr. next is the
// character following c and decides whether a minus sign is a unary lead-in.
func transition(curr state, c, next rune) (state, bool) {
	unary := c == '-' && (curr == stateStart || curr == stateOperator) && isDigit(next)
	numeric := isDigit(c) || unary

	switch curr {
	case stateStart:
		switch {
		case numeric:
			return stateScalar, true
		case isVectorMarker(c):
			return stateVector, true
		case isBracket(c):
			return stateBracket, true
		}
	case stateScalar:
		switch {
		case isDigit(c):
			return stateScalar, true
		case c == '.':
			return stateDecimal, true
		case isOperator(c):
			return stateOperator, true
		case isBracket(c):
			return stateBracket, true
		}
	case stateDecimal:
		switch {
		case isDigit(c):
			return stateDecimal, true
		case isOperator(c):
			return stateOperator, true
		case isBracket(c):
			return stateBracket, true
		}
	case stateVector:
		switch {
		case isDigit(c):
			return stateVector, true
		case isOperator(c):
			return stateOperator, true
		case isBracket(c):
			return stateBracket, true
		}
	case stateOperator:
		switch {
		case numeric:
			return stateScalar, true
		case isVectorMarker(c):
			return stateVector, true
		case isBracket(c):
			return stateBracket, true
		}
	case stateBracket:
		switch {
		case numeric:
			return stateScalar, true
		case isVectorMarker(c):
			return stateVector, true
		case isOperator(c):
			return stateOperator, true
		case isBracket(c):
			return stateBracket, true
		}
	case stateEnd:
	}

	return curr, false
}

// acceptsEnd reports whether the expression may finish while in s
func acceptsEnd(s state) bool {
	switch s {
	case stateScalar, stateDecimal, stateVector, stateBracket:
		return true
	case stateStart, stateOperator, stateEnd:
		return false
	}
	return false
}

func tokenKind(s state) TokenKind {
	switch s {
	case stateVector:
		return VectorToken
	case stateOperator:
		return OperatorToken
	case stateBracket:
		return BracketToken
	default:
		return ScalarToken
	}
}

// Tokenize splits expr into tokens. Whitespace is ignored but still counts towards
// the positions reported in errors. The returned error is a *SyntaxError.
func Tokenize(expr string) ([]Token, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func tokenize(expr string) ([]Token, *SyntaxError) {
	src := []rune(expr)
	if err := validateBrackets(src); err != nil {
		return nil, err
	}

	chars := make([]char, 0, len(src))
	for idx, r := range src {
		if unicode.IsSpace(r) {
			continue
		}
		chars = append(chars, char{r: r, pos: idx + 1})
	}

	if len(chars) == 0 {
		return nil, tokenError(0)
	}

	type rawToken struct {
		state state
		text  []rune
		pos   int
	}

	raw := make([]rawToken, 0, len(chars))
	curr := stateStart
	for idx, c := range chars {
		next := noChar
		if idx+1 < len(chars) {
			next = chars[idx+1].r
		}

		to, ok := transition(curr, c.r, next)
		if !ok {
			return nil, tokenError(c.pos)
		}

		if to != curr || to == stateBracket {
			raw = append(raw, rawToken{state: to, text: []rune{c.r}, pos: c.pos})
		} else {
			last := &raw[len(raw)-1]
			last.text = append(last.text, c.r)
		}
		curr = to
	}

	if !acceptsEnd(curr) {
		return nil, tokenError(len(src) + 1)
	}

	// merge decimal parts into the preceding integer part
	merged := make([]rawToken, 0, len(raw))
	for _, t := range raw {
		if t.state == stateDecimal && len(merged) > 0 && merged[len(merged)-1].state == stateScalar {
			last := &merged[len(merged)-1]
			last.text = append(last.text, t.text...)
			continue
		}
		merged = append(merged, t)
	}

	tokens := make([]Token, 0, len(merged))
	for _, t := range merged {
		token := Token{
			Kind:     tokenKind(t.state),
			Text:     string(t.text),
			Position: t.pos,
		}

		if token.Kind == ScalarToken {
			val, err := cast.ToFloat64E(token.Text)
			if err != nil {
				return nil, tokenError(t.pos)
			}
			token.Scalar = val
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

// validateBrackets checks that brackets are balanced. An unmatched closing bracket
// is reported at its own position; unclosed brackets at the end of the expression.
func validateBrackets(src []rune) *SyntaxError {
	depth := 0
	for idx, r := range src {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return bracketError(idx + 1)
			}
		}
	}

	if depth > 0 {
		return bracketError(len(src))
	}

	return nil
}
