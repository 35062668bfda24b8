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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-vector/vector"
)

var _ = Describe("Vector", func() {
	Context("with no points", func() {
		var (
			v *vector.Vector
		)

		BeforeEach(func() {
			v = vector.New()
		})

		It("has zero length", func() {
			Expect(v.Len()).To(Equal(0))
		})

		It("sums to 0", func() {
			Expect(v.Sum()).To(Equal(0.0))
		})

		It("has a null average", func() {
			Expect(v.Average()).To(BeNil())
		})

		It("has a null reduction", func() {
			Expect(v.Reduce(func(acc, val float64) float64 { return acc + val })).To(BeNil())
		})

		It("returns an error when accessing a point", func() {
			_, err := v.Get(0)
			Expect(errors.Is(err, vector.ErrIndexOutOfRange)).To(BeTrue())
		})

		It("has zero start and end", func() {
			Expect(v.Start().IsZero()).To(BeTrue())
			Expect(v.End().IsZero()).To(BeTrue())
		})

		It("intersects to an empty vector", func() {
			other := vector.New(pt(2018, 1, 1, 1))
			Expect(v.Intersection(other).Len()).To(Equal(0))
			Expect(other.Intersection(v).Len()).To(Equal(0))
		})
	})

	Context("with monthly values", func() {
		var (
			v *vector.Vector
		)

		BeforeEach(func() {
			v = vector.New(
				pt(2018, 1, 1, 1),
				pt(2018, 2, 1, 2),
				nullPt(2018, 3, 1),
				pt(2018, 4, 1, 4),
			)
			v2 := v.Copy()
			Expect(v2.Equals(v)).To(BeTrue())
		})

		It("has length", func() {
			Expect(v.Len()).To(Equal(4))
		})

		It("provides positional access", func() {
			refper, err := v.Refper(1)
			Expect(err).To(BeNil())
			Expect(refper).To(Equal(vector.Date(2018, 2, 1)))

			val, err := v.Value(1)
			Expect(err).To(BeNil())
			Expect(*val).To(Equal(2.0))

			val, err = v.Value(2)
			Expect(err).To(BeNil())
			Expect(val).To(BeNil())
		})

		It("rejects out of range indices", func() {
			_, err := v.Value(4)
			Expect(errors.Is(err, vector.ErrIndexOutOfRange)).To(BeTrue())
			_, err = v.Refper(-1)
			Expect(errors.Is(err, vector.ErrIndexOutOfRange)).To(BeTrue())
		})

		It("copies into a distinct instance", func() {
			cp := v.Copy()
			Expect(cp.Equals(v)).To(BeTrue())
			Expect(cp).ToNot(BeIdenticalTo(v))

			cp.Push(pt(2018, 5, 1, 5))
			Expect(cp.Len()).To(Equal(5))
			Expect(v.Len()).To(Equal(4))
			Expect(cp.Equals(v)).To(BeFalse())
		})

		It("does not share point values with its copy", func() {
			cp := v.Copy()
			p, err := cp.Get(0)
			Expect(err).To(BeNil())
			*p.Value = 100

			val, err := v.Value(0)
			Expect(err).To(BeNil())
			Expect(*val).To(Equal(1.0))
		})

		It("normalizes refpers to calendar days", func() {
			nyc, err := time.LoadLocation("America/New_York")
			Expect(err).To(BeNil())
			other := vector.New(vector.Point{Refper: time.Date(2018, 1, 1, 16, 30, 0, 0, nyc), Value: vector.Float(1)})
			Expect(other.Start()).To(Equal(vector.Date(2018, 1, 1)))
		})

		It("compares single positions", func() {
			other := vector.New(
				pt(2018, 1, 1, 1),
				pt(2018, 2, 1, 5),
			)
			Expect(v.EqualsAt(other, 0)).To(BeTrue())
			Expect(v.EqualsAt(other, 1)).To(BeFalse())
			Expect(v.EqualsAt(other, 2)).To(BeFalse())
			Expect(v.Equals(other)).To(BeFalse())
		})

		It("treats null values as equal", func() {
			other := v.Copy()
			Expect(v.EqualsAt(other, 2)).To(BeTrue())
		})

		It("filters points", func() {
			res := v.Filter(func(p vector.Point) bool {
				return p.Value != nil && *p.Value > 1
			})
			Expect(values(res)).To(Equal([]*float64{vector.Float(2), vector.Float(4)}))
			Expect(v.Len()).To(Equal(4))
		})

		DescribeTable("selects a date range", func(start, end time.Time, expected []time.Time) {
			Expect(refpers(v.Range(start, end))).To(Equal(expected))
		},
			Entry("unbounded", time.Time{}, time.Time{}, []time.Time{vector.Date(2018, 1, 1), vector.Date(2018, 2, 1), vector.Date(2018, 3, 1), vector.Date(2018, 4, 1)}),
			Entry("start only", vector.Date(2018, 2, 1), time.Time{}, []time.Time{vector.Date(2018, 2, 1), vector.Date(2018, 3, 1), vector.Date(2018, 4, 1)}),
			Entry("end only", time.Time{}, vector.Date(2018, 2, 1), []time.Time{vector.Date(2018, 1, 1), vector.Date(2018, 2, 1)}),
			Entry("inclusive on both sides", vector.Date(2018, 2, 1), vector.Date(2018, 3, 1), []time.Time{vector.Date(2018, 2, 1), vector.Date(2018, 3, 1)}),
			Entry("between points", vector.Date(2018, 2, 2), vector.Date(2018, 2, 28), []time.Time{}),
		)

		It("returns the latest n points", func() {
			res, err := v.LatestN(2)
			Expect(err).To(BeNil())
			Expect(refpers(res)).To(Equal([]time.Time{vector.Date(2018, 3, 1), vector.Date(2018, 4, 1)}))

			res, err = v.LatestN(0)
			Expect(err).To(BeNil())
			Expect(res.Len()).To(Equal(0))
		})

		It("fails when more points are requested than available", func() {
			res, err := v.LatestN(5)
			Expect(errors.Is(err, vector.ErrLength)).To(BeTrue())
			Expect(res).To(BeNil())
		})

		It("skips nulls when summing and averaging", func() {
			Expect(v.Sum()).To(Equal(7.0))
			Expect(*v.Average()).To(BeNumerically("~", 7.0/3.0))
		})

		It("reduces with the first value as the seed", func() {
			res := v.Reduce(func(acc, val float64) float64 { return acc*10 + val })
			Expect(*res).To(Equal(124.0))
		})

		It("is interoperable with vectors sharing its refpers", func() {
			other := v.PeriodTransformation(func(val float64) float64 { return val * 2 })
			Expect(v.Interoperable(other)).To(BeTrue())

			shorter, err := v.LatestN(3)
			Expect(err).To(BeNil())
			Expect(v.Interoperable(shorter)).To(BeFalse())

			shifted := vector.New(
				pt(2018, 1, 2, 1),
				pt(2018, 2, 1, 2),
				nullPt(2018, 3, 1),
				pt(2018, 4, 1, 4),
			)
			Expect(v.Interoperable(shifted)).To(BeFalse())
		})
	})

	Context("when intersecting vectors", func() {
		var (
			a *vector.Vector
			b *vector.Vector
			c *vector.Vector
		)

		BeforeEach(func() {
			a = vector.New(
				pt(2018, 1, 1, 1),
				pt(2018, 2, 1, 2),
				pt(2018, 3, 1, 3),
				pt(2018, 4, 1, 4),
			)
			b = vector.New(
				pt(2017, 12, 1, 10),
				pt(2018, 2, 1, 20),
				pt(2018, 3, 1, 30),
				pt(2018, 4, 1, 40),
				pt(2018, 5, 1, 50),
			)
			c = vector.New(
				pt(2018, 3, 1, 300),
				pt(2018, 4, 1, 400),
			)
		})

		It("keeps the receiver's values and order", func() {
			res := a.Intersection(b)
			Expect(refpers(res)).To(Equal([]time.Time{vector.Date(2018, 2, 1), vector.Date(2018, 3, 1), vector.Date(2018, 4, 1)}))
			Expect(values(res)).To(Equal([]*float64{vector.Float(2), vector.Float(3), vector.Float(4)}))

			res = b.Intersection(a)
			Expect(values(res)).To(Equal([]*float64{vector.Float(20), vector.Float(30), vector.Float(40)}))
		})

		It("is no longer than either input", func() {
			res := a.Intersection(b)
			Expect(res.Len()).To(BeNumerically("<=", a.Len()))
			Expect(res.Len()).To(BeNumerically("<=", b.Len()))
		})

		It("reduces multiple vectors pairwise", func() {
			res := a.Intersection(b, c)
			Expect(refpers(res)).To(Equal([]time.Time{vector.Date(2018, 3, 1), vector.Date(2018, 4, 1)}))
			Expect(values(res)).To(Equal([]*float64{vector.Float(3), vector.Float(4)}))
		})

		It("aligns a map of vectors to the common support", func() {
			res := vector.IntersectionMap(map[string]*vector.Vector{"1": a, "2": b, "3": c})
			Expect(res).To(HaveLen(3))
			for _, id := range []string{"1", "2", "3"} {
				Expect(refpers(res[id])).To(Equal([]time.Time{vector.Date(2018, 3, 1), vector.Date(2018, 4, 1)}))
			}
			Expect(values(res["2"])).To(Equal([]*float64{vector.Float(30), vector.Float(40)}))
		})

		It("does not modify its inputs", func() {
			a.Intersection(b, c)
			Expect(a.Len()).To(Equal(4))
			Expect(b.Len()).To(Equal(5))
		})
	})
})
