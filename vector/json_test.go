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

package vector_test

import (
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-vector/vector"
)

var _ = Describe("When encoding vectors", func() {
	var (
		v *vector.Vector
	)

	BeforeEach(func() {
		v = vector.New(
			vector.Point{Refper: vector.Date(2018, 1, 1), Value: vector.Float(1.5), Extra: map[string]any{"status": "A"}},
			vector.Point{Refper: vector.Date(2018, 2, 1)},
			vector.Point{Refper: vector.Date(2018, 3, 1), Value: vector.Float(0)},
		)
	})

	It("round trips through JSON", func() {
		data, err := v.JSON()
		Expect(err).To(BeNil())

		parsed, err := vector.FromJSON(data)
		Expect(err).To(BeNil())
		Expect(parsed.Equals(v)).To(BeTrue())

		p, err := parsed.Get(0)
		Expect(err).To(BeNil())
		Expect(p.Extra).To(Equal(map[string]any{"status": "A"}))
	})

	It("renders refper as a date and null values as null", func() {
		data, err := v.JSON()
		Expect(err).To(BeNil())
		Expect(string(data)).To(Equal(`[{"refper":"2018-01-01","status":"A","value":1.5},{"refper":"2018-02-01","value":null},{"refper":"2018-03-01","value":0}]`))
	})

	It("parses raw records", func() {
		parsed, err := vector.FromRecords([]map[string]any{
			{"refper": "2018-01-01", "value": 1},
			{"refper": "2018-02-01T00:00:00", "value": "2.5"},
			{"refper": time.Date(2018, 3, 1, 12, 0, 0, 0, time.UTC), "value": nil, "symbol": "VFINX"},
		})
		Expect(err).To(BeNil())
		Expect(refpers(parsed)).To(Equal([]time.Time{vector.Date(2018, 1, 1), vector.Date(2018, 2, 1), vector.Date(2018, 3, 1)}))
		Expect(values(parsed)).To(Equal([]*float64{vector.Float(1), vector.Float(2.5), nil}))

		records := parsed.Records()
		Expect(records[2]["symbol"]).To(Equal("VFINX"))
	})

	DescribeTable("rejects invalid records", func(record map[string]any, expected error) {
		_, err := vector.FromRecords([]map[string]any{record})
		Expect(errors.Is(err, expected)).To(BeTrue())
	},
		Entry("missing refper", map[string]any{"value": 1}, vector.ErrMissingRefper),
		Entry("bad date", map[string]any{"refper": "2018-13-45", "value": 1}, vector.ErrInvalidDate),
		Entry("refper of the wrong type", map[string]any{"refper": 20180101, "value": 1}, vector.ErrInvalidDate),
		Entry("non numeric value", map[string]any{"refper": "2018-01-01", "value": "abc"}, vector.ErrInvalidValue),
	)

	It("fingerprints identical vectors the same", func() {
		a, err := v.Fingerprint()
		Expect(err).To(BeNil())
		b, err := v.Copy().Fingerprint()
		Expect(err).To(BeNil())
		Expect(a).To(Equal(b))
		Expect(a).To(HaveLen(64))

		c, err := v.Round(0).Fingerprint()
		Expect(err).To(BeNil())
		Expect(c).ToNot(Equal(a))
	})

	It("renders a table", func() {
		table := v.Table()
		Expect(table).To(ContainSubstring("2018-01-01"))
		Expect(table).To(ContainSubstring("1.5000"))
		Expect(table).To(ContainSubstring("null"))
		Expect(strings.ToUpper(table)).To(ContainSubstring("STATUS"))
		Expect(vector.New().Table()).To(Equal("<NO DATA>"))
	})
})
