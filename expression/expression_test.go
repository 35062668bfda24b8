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

package expression_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-vector/expression"
	"github.com/penny-vault/pv-vector/vector"
)

func monthly(vals ...float64) *vector.Vector {
	v := vector.New()
	for idx, val := range vals {
		v.Push(vector.Point{Refper: vector.Date(2018, time.Month(idx+1), 1), Value: vector.Float(val)})
	}
	return v
}

func values(v *vector.Vector) []*float64 {
	res := make([]*float64, 0, v.Len())
	for _, p := range v.Points() {
		res = append(res, p.Value)
	}
	return res
}

var _ = Describe("Expression", func() {
	Context("when validating", func() {
		DescribeTable("reports the first syntax error", func(expr string, expected *expression.SyntaxError) {
			Expect(expression.Validate(expr)).To(Equal(expected))
		},
			Entry("empty expression", "", &expression.SyntaxError{Type: expression.TokenError, Position: 0}),
			Entry("only whitespace", "   ", &expression.SyntaxError{Type: expression.TokenError, Position: 0}),
			Entry("unclosed bracket", "((v1)", &expression.SyntaxError{Type: expression.BracketError, Position: 5}),
			Entry("unopened bracket", "v1)", &expression.SyntaxError{Type: expression.BracketError, Position: 3}),
			Entry("bracket closed before opened", ")v1(", &expression.SyntaxError{Type: expression.BracketError, Position: 1}),
			Entry("two operators at the end", "v1 +-", &expression.SyntaxError{Type: expression.TokenError, Position: 5}),
			Entry("trailing operator", "v1 +", &expression.SyntaxError{Type: expression.TokenError, Position: 5}),
			Entry("repeated operator", "v1 ++ v2", &expression.SyntaxError{Type: expression.TokenError, Position: 5}),
			Entry("negated vector", "2 * -v1", &expression.SyntaxError{Type: expression.TokenError, Position: 5}),
			Entry("second decimal point", "1.2.3", &expression.SyntaxError{Type: expression.TokenError, Position: 4}),
			Entry("decimal vector id", "v1.5", &expression.SyntaxError{Type: expression.TokenError, Position: 3}),
			Entry("unknown character", "x + v1", &expression.SyntaxError{Type: expression.TokenError, Position: 1}),
		)

		DescribeTable("accepts well formed expressions", func(expr string) {
			Expect(expression.Validate(expr)).To(BeNil())
		},
			Entry("single vector", "v1"),
			Entry("brackets and operators", "(v1 + v2) * (2*v3)"),
			Entry("leading negative number", "-1 + v1"),
			Entry("negative number after an operator", "v1 * -2.5"),
			Entry("no whitespace", "v1*(2+v2)"),
			Entry("upper case marker", "V1 / V2"),
		)

		It("formats messages with the position", func() {
			Expect(expression.Validate("((v1)").Error()).To(Equal("Invalid bracket at position 5"))
			Expect(expression.Validate("v1 +-").Error()).To(Equal("Error parsing character at position 5"))
		})
	})

	Context("when evaluating", func() {
		var (
			vectors map[string]*vector.Vector
		)

		BeforeEach(func() {
			vectors = map[string]*vector.Vector{
				"1": monthly(1, 2),
				"2": monthly(3, 4),
				"3": monthly(2, 2),
			}
		})

		It("combines vectors and scalars", func() {
			res, err := expression.Evaluate("(v1 + v2) * (2*v3)", vectors)
			Expect(err).To(BeNil())
			Expect(res.Len()).To(Equal(2))

			p, err := res.Get(0)
			Expect(err).To(BeNil())
			Expect(p.Refper).To(Equal(vector.Date(2018, 1, 1)))
			Expect(*p.Value).To(Equal(16.0))

			p, err = res.Get(1)
			Expect(err).To(BeNil())
			Expect(p.Refper).To(Equal(vector.Date(2018, 2, 1)))
			Expect(*p.Value).To(Equal(24.0))
		})

		It("respects operator priority", func() {
			res, err := expression.Evaluate("v1 + v2 * v3", vectors)
			Expect(err).To(BeNil())
			Expect(values(res)).To(Equal([]*float64{vector.Float(7), vector.Float(10)}))
		})

		It("folds operators of the same priority left to right", func() {
			res, err := expression.Evaluate("v2 - 1 - 1", vectors)
			Expect(err).To(BeNil())
			Expect(values(res)).To(Equal([]*float64{vector.Float(1), vector.Float(2)}))
		})

		It("keeps the operand order when the scalar is on the left", func() {
			res, err := expression.Evaluate("10 - v1", vectors)
			Expect(err).To(BeNil())
			Expect(values(res)).To(Equal([]*float64{vector.Float(9), vector.Float(8)}))

			res, err = expression.Evaluate("v1 / 2", vectors)
			Expect(err).To(BeNil())
			Expect(values(res)).To(Equal([]*float64{vector.Float(0.5), vector.Float(1)}))
		})

		It("combines scalars before broadcasting them", func() {
			res, err := expression.Evaluate("v1 * (1 + 2)", vectors)
			Expect(err).To(BeNil())
			Expect(values(res)).To(Equal([]*float64{vector.Float(3), vector.Float(6)}))
		})

		It("handles negative and decimal literals", func() {
			res, err := expression.Evaluate("v1 * -2.5", vectors)
			Expect(err).To(BeNil())
			Expect(values(res)).To(Equal([]*float64{vector.Float(-2.5), vector.Float(-5)}))
		})

		It("aligns vectors with different date ranges", func() {
			vectors["4"] = vector.New(
				vector.Point{Refper: vector.Date(2018, 2, 1), Value: vector.Float(10)},
				vector.Point{Refper: vector.Date(2018, 3, 1), Value: vector.Float(20)},
			)
			res, err := expression.Evaluate("v1 + v4", vectors)
			Expect(err).To(BeNil())
			Expect(res.Len()).To(Equal(1))
			Expect(res.Start()).To(Equal(vector.Date(2018, 2, 1)))
			Expect(values(res)).To(Equal([]*float64{vector.Float(12)}))
		})

		It("propagates nulls and turns division by zero into nulls", func() {
			vectors["5"] = vector.New(
				vector.Point{Refper: vector.Date(2018, 1, 1)},
				vector.Point{Refper: vector.Date(2018, 2, 1), Value: vector.Float(0)},
			)
			res, err := expression.Evaluate("v1 / v5", vectors)
			Expect(err).To(BeNil())
			Expect(values(res)).To(Equal([]*float64{nil, nil}))
		})

		It("carries extra fields from the left operand", func() {
			vectors["6"] = vector.New(
				vector.Point{Refper: vector.Date(2018, 1, 1), Value: vector.Float(1), Extra: map[string]any{"status": "E"}},
			)
			res, err := expression.Evaluate("v6 * v1", vectors)
			Expect(err).To(BeNil())
			p, err := res.Get(0)
			Expect(err).To(BeNil())
			Expect(p.Extra).To(Equal(map[string]any{"status": "E"}))
		})

		It("accepts vector ids with the marker", func() {
			res, err := expression.Evaluate("V1 + v2", map[string]*vector.Vector{
				"v1": monthly(1, 2),
				"V2": monthly(3, 4),
			})
			Expect(err).To(BeNil())
			Expect(values(res)).To(Equal([]*float64{vector.Float(4), vector.Float(6)}))
		})

		It("does not modify its inputs", func() {
			original := vectors["1"].Copy()
			res, err := expression.Evaluate("v1", vectors)
			Expect(err).To(BeNil())
			res.Push(vector.Point{Refper: vector.Date(2018, 3, 1), Value: vector.Float(3)})

			_, err = expression.Evaluate("v1 * 2 + v2", vectors)
			Expect(err).To(BeNil())
			Expect(vectors["1"].Equals(original)).To(BeTrue())
		})

		It("fails with the syntax error message", func() {
			_, err := expression.Evaluate("v1 +", vectors)
			var syntaxErr *expression.SyntaxError
			Expect(errors.As(err, &syntaxErr)).To(BeTrue())
			Expect(syntaxErr.Type).To(Equal(expression.TokenError))
			Expect(err.Error()).To(Equal("Error parsing character at position 5"))

			_, err = expression.Evaluate("((v1)", vectors)
			Expect(err.Error()).To(Equal("Invalid bracket at position 5"))
		})

		It("fails when a vector is not supplied", func() {
			_, err := expression.Evaluate("v1 + v9", vectors)
			Expect(errors.Is(err, expression.ErrUnresolvedVector)).To(BeTrue())
		})

		It("fails when the result is a scalar", func() {
			_, err := expression.Evaluate("1 + 2", vectors)
			Expect(errors.Is(err, expression.ErrScalarResult)).To(BeTrue())
		})

		It("fails when an operator is missing an operand", func() {
			_, err := expression.Evaluate("(*v1)", vectors)
			Expect(errors.Is(err, expression.ErrStackEmpty)).To(BeTrue())
		})

		It("fails when operands are not joined by an operator", func() {
			_, err := expression.Evaluate("(v1)(v2)", vectors)
			Expect(errors.Is(err, expression.ErrIncompleteEvaluation)).To(BeTrue())
		})
	})

	Context("when listing vector ids", func() {
		DescribeTable("returns unique ids in order of appearance", func(expr string, expected []string) {
			Expect(expression.VectorIDs(expr)).To(Equal(expected))
		},
			Entry("nested expression", "(v1 + v22) * (2*v3)", []string{"1", "22", "3"}),
			Entry("no vectors", "0", []string{}),
			Entry("leading digits", "1v2", []string{"2"}),
			Entry("repeated ids in any case", "V1 + v1 + v2", []string{"1", "2"}),
			Entry("invalid expression", "v4 +* v5", []string{"4", "5"}),
		)
	})
})
