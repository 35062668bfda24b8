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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gmeasure"
	"github.com/penny-vault/pv-vector/expression"
	"github.com/penny-vault/pv-vector/vector"
)

var _ = Describe("When evaluating long vectors", func() {
	var (
		vectors map[string]*vector.Vector
	)

	BeforeEach(func() {
		v1 := vector.New()
		v2 := vector.New()
		start := vector.Date(1990, 1, 1)
		for idx := 0; idx < 10000; idx++ {
			v1.Push(vector.Point{Refper: start.AddDate(0, 0, idx), Value: vector.Float(float64(idx))})
			v2.Push(vector.Point{Refper: start.AddDate(0, 0, idx+5000), Value: vector.Float(2)})
		}
		vectors = map[string]*vector.Vector{"1": v1, "2": v2}
	})

	It("benchmarks performance", func() {
		experiment := gmeasure.NewExperiment("expression evaluate")
		AddReportEntry(experiment.Name, experiment)

		experiment.SampleDuration("tokenize", func(_ int) {
			_, err := expression.Tokenize("(v1 + v2) * 2.5 - v1 / (v2 + 1)")
			Expect(err).To(BeNil())
		}, gmeasure.SamplingConfig{N: 1000})

		experiment.SampleDuration("evaluate", func(_ int) {
			res, err := expression.Evaluate("(v1 + v2) * 2.5 - v1 / (v2 + 1)", vectors)
			Expect(err).To(BeNil())
			Expect(res.Len()).To(Equal(5000))
		}, gmeasure.SamplingConfig{N: 20})
	})
})
