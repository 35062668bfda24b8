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
	"errors"
	"fmt"
)

var (
	ErrUnresolvedVector     = errors.New("expression references a vector that was not supplied")
	ErrUnsupportedOperands  = errors.New("unsupported operand types")
	ErrIncompleteEvaluation = errors.New("operator is missing an operand")
	ErrStackEmpty           = errors.New("expression stack is empty")
	ErrScalarResult         = errors.New("expression does not reference any vectors")
)

// ErrorType classifies a syntax error
type ErrorType string

const (
	TokenError   ErrorType = "token"
	BracketError ErrorType = "bracket"
)

// SyntaxError is returned when an expression cannot be tokenized. Position is the
// 1-based index of the offending character in the original expression; an empty
// expression is reported at position 0.
type SyntaxError struct {
	Type     ErrorType `json:"type"`
	Position int       `json:"position"`
}

// Error returns the human readable message for the syntax error
func (e *SyntaxError) Error() string {
	switch e.Type {
	case BracketError:
		return fmt.Sprintf("Invalid bracket at position %d", e.Position)
	case TokenError:
		return fmt.Sprintf("Error parsing character at position %d", e.Position)
	default:
		return fmt.Sprintf("Unknown error at position %d", e.Position)
	}
}

func tokenError(position int) *SyntaxError {
	return &SyntaxError{Type: TokenError, Position: position}
}

func bracketError(position int) *SyntaxError {
	return &SyntaxError{Type: BracketError, Position: position}
}
