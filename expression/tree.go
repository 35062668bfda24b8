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
	"fmt"

	"github.com/penny-vault/pv-vector/vector"
)

// Node is an element of an expression tree. It is either a leaf holding a vector or
// a scalar, or an operator with two children.
type Node interface {
	node()
}

type vectorLeaf struct {
	id  string
	vec *vector.Vector
}

type scalarLeaf struct {
	value float64
}

type operatorNode struct {
	op    operator
	left  Node
	right Node
}

func (vectorLeaf) node() {}
func (scalarLeaf) node() {}
func (operatorNode) node() {}

type operator rune

func (op operator) apply(a, b float64) float64 {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	}
	panic(fmt.Sprintf("unknown operator %q", rune(op)))
}

// buildTree assembles postfix tokens into an expression tree. Vector tokens are
// resolved against vectors; ids that are missing produce a leaf without a vector
// which fails when evaluated.
func buildTree(postfix []Token, vectors map[string]*vector.Vector) (Node, error) {
	stack := make([]Node, 0, len(postfix))

	pop := func() (Node, error) {
		if len(stack) == 0 {
			return nil, ErrStackEmpty
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n, nil
	}

	for _, t := range postfix {
		switch t.Kind {
		case ScalarToken:
			stack = append(stack, scalarLeaf{value: t.Scalar})
		case VectorToken:
			id := t.ID()
			stack = append(stack, vectorLeaf{id: id, vec: vectors[id]})
		case OperatorToken:
			// operands come off the stack in reverse order
			right, err := pop()
			if err != nil {
				return nil, fmt.Errorf("%w: operator %q at position %d", err, t.Text, t.Position)
			}
			left, err := pop()
			if err != nil {
				return nil, fmt.Errorf("%w: operator %q at position %d", err, t.Text, t.Position)
			}
			stack = append(stack, operatorNode{op: operator(t.Text[0]), left: left, right: right})
		case BracketToken:
			return nil, fmt.Errorf("%w: bracket in postfix expression", ErrUnsupportedOperands)
		}
	}

	switch len(stack) {
	case 0:
		return nil, ErrStackEmpty
	case 1:
		return stack[0], nil
	default:
		return nil, fmt.Errorf("%w: %d operands are not joined by an operator", ErrIncompleteEvaluation, len(stack))
	}
}

// evaluate reduces a tree to a single vector or scalar leaf
func evaluate(n Node) (Node, error) {
	switch n := n.(type) {
	case vectorLeaf:
		if n.vec == nil {
			return nil, fmt.Errorf("%w: v%s", ErrUnresolvedVector, n.id)
		}
		return n, nil
	case scalarLeaf:
		return n, nil
	case operatorNode:
		if n.left == nil || n.right == nil {
			return nil, ErrIncompleteEvaluation
		}

		left, err := evaluate(n.left)
		if err != nil {
			return nil, err
		}

		right, err := evaluate(n.right)
		if err != nil {
			return nil, err
		}

		return n.op.combine(left, right)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedOperands, n)
	}
}

// combine applies the operator to two evaluated operands. Vectors are aligned on
// their shared reference periods; scalars are broadcast over every point.
func (op operator) combine(left, right Node) (Node, error) {
	switch l := left.(type) {
	case vectorLeaf:
		switch r := right.(type) {
		case vectorLeaf:
			return vectorLeaf{vec: l.vec.Operate(r.vec, op.apply)}, nil
		case scalarLeaf:
			return vectorLeaf{vec: l.vec.Broadcast(r.value, op.apply)}, nil
		}
	case scalarLeaf:
		switch r := right.(type) {
		case vectorLeaf:
			return vectorLeaf{vec: r.vec.Broadcast(l.value, func(val, scalar float64) float64 {
				return op.apply(scalar, val)
			})}, nil
		case scalarLeaf:
			return scalarLeaf{value: op.apply(l.value, r.value)}, nil
		}
	}

	return nil, fmt.Errorf("%w: %T %c %T", ErrUnsupportedOperands, left, rune(op), right)
}
