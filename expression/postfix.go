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

// priority orders operators for the postfix conversion; anything that is not an
// operator (i.e., a bracket on the stack) has the lowest priority
func priority(t Token) int {
	if t.Kind != OperatorToken {
		return 0
	}

	switch t.Text {
	case "*", "/":
		return 2
	case "+", "-":
		return 1
	default:
		return 0
	}
}

func isOpenBracket(t Token) bool {
	return t.Kind == BracketToken && t.Text == "("
}

// Postfix converts infix tokens to postfix order with the shunting-yard algorithm.
// Operators of equal priority are applied left to right. Tokens are expected to
// have balanced brackets, which Tokenize guarantees.
func Postfix(tokens []Token) []Token {
	input := make([]Token, 0, len(tokens)+1)
	input = append(input, tokens...)
	input = append(input, Token{Kind: BracketToken, Text: ")"})

	stack := []Token{{Kind: BracketToken, Text: "("}}
	output := make([]Token, 0, len(tokens))

	for _, t := range input {
		switch t.Kind {
		case ScalarToken, VectorToken:
			output = append(output, t)
		case BracketToken:
			if isOpenBracket(t) {
				stack = append(stack, t)
				continue
			}

			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if isOpenBracket(top) {
					break
				}
				output = append(output, top)
			}
		case OperatorToken:
			for len(stack) > 0 && priority(stack[len(stack)-1]) >= priority(t) {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		}
	}

	return output
}
