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

package vector

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// New creates a vector from the supplied points. Points are copied and their
// reference periods are normalized to calendar days.
func New(points ...Point) *Vector {
	v := &Vector{
		points: make([]Point, 0, len(points)),
	}

	for _, p := range points {
		v.Push(p)
	}

	return v
}

// Push appends a copy of p to the end of the vector and returns the vector
func (v *Vector) Push(p Point) *Vector {
	p = p.Copy()
	p.Refper = NormalizeDate(p.Refper)
	v.points = append(v.points, p)
	return v
}

// Len returns the number of points in the vector
func (v *Vector) Len() int {
	return len(v.points)
}

// Points returns a copy of the points in the vector
func (v *Vector) Points() []Point {
	res := make([]Point, len(v.points))
	for idx, p := range v.points {
		res[idx] = p.Copy()
	}
	return res
}

// Get returns a copy of the point at idx
func (v *Vector) Get(idx int) (Point, error) {
	if idx < 0 || idx >= len(v.points) {
		return Point{}, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, idx, len(v.points))
	}
	return v.points[idx].Copy(), nil
}

// Refper returns the reference period of the point at idx
func (v *Vector) Refper(idx int) (time.Time, error) {
	p, err := v.Get(idx)
	if err != nil {
		return time.Time{}, err
	}
	return p.Refper, nil
}

// Value returns the value of the point at idx; a nil value with a nil error means the
// point exists but has no datum
func (v *Vector) Value(idx int) (*float64, error) {
	p, err := v.Get(idx)
	if err != nil {
		return nil, err
	}
	return p.Value, nil
}

// Start returns the first reference period of the vector
func (v *Vector) Start() time.Time {
	if len(v.points) == 0 {
		return time.Time{}
	}
	return v.points[0].Refper
}

// End returns the last reference period of the vector
func (v *Vector) End() time.Time {
	if len(v.points) == 0 {
		return time.Time{}
	}
	return v.points[len(v.points)-1].Refper
}

// Copy creates a deep copy of the vector
func (v *Vector) Copy() *Vector {
	return &Vector{
		points: v.Points(),
	}
}

// Equals returns true if both vectors have the same length and every point is equal
func (v *Vector) Equals(other *Vector) bool {
	if other == nil || len(v.points) != len(other.points) {
		return false
	}

	for idx := range v.points {
		if !v.points[idx].Equal(other.points[idx]) {
			return false
		}
	}

	return true
}

// EqualsAt compares only the points stored at idx; out of range indices are never equal
func (v *Vector) EqualsAt(other *Vector, idx int) bool {
	if other == nil || idx < 0 || idx >= len(v.points) || idx >= len(other.points) {
		return false
	}
	return v.points[idx].Equal(other.points[idx])
}

// Filter returns a new vector with the points for which predicate returns true
func (v *Vector) Filter(predicate func(Point) bool) *Vector {
	res := &Vector{
		points: make([]Point, 0, len(v.points)),
	}

	for _, p := range v.points {
		if predicate(p) {
			res.points = append(res.points, p.Copy())
		}
	}

	return res
}

// Range returns the points between start and end (inclusive). A zero start or end
// leaves that side of the range unbounded.
func (v *Vector) Range(start, end time.Time) *Vector {
	if !start.IsZero() {
		start = NormalizeDate(start)
	}
	if !end.IsZero() {
		end = NormalizeDate(end)
	}

	return v.Filter(func(p Point) bool {
		if !start.IsZero() && p.Refper.Before(start) {
			return false
		}
		if !end.IsZero() && p.Refper.After(end) {
			return false
		}
		return true
	})
}

// LatestN returns a new vector with the last n points
func (v *Vector) LatestN(n int) (*Vector, error) {
	if n < 0 || n > len(v.points) {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrLength, n, len(v.points))
	}

	res := &Vector{
		points: make([]Point, 0, n),
	}
	for _, p := range v.points[len(v.points)-n:] {
		res.points = append(res.points, p.Copy())
	}

	return res, nil
}

// Interoperable returns true if both vectors have the same length and identical
// reference periods at every position
func (v *Vector) Interoperable(other *Vector) bool {
	if other == nil || len(v.points) != len(other.points) {
		return false
	}

	for idx := range v.points {
		if !v.points[idx].Refper.Equal(other.points[idx].Refper) {
			return false
		}
	}

	return true
}

// Intersection returns the points of v whose reference period is present in every
// one of others. The result keeps v's values, extras and order.
// NOTE: all vectors must be sorted by refper ascending
func (v *Vector) Intersection(others ...*Vector) *Vector {
	res := v.Copy()
	for _, other := range others {
		if other == nil {
			return &Vector{points: []Point{}}
		}
		res.points = intersect(res.points, other.points)
	}
	return res
}

// IntersectionMap aligns every vector in vectors to the set of reference periods
// shared by all of them
func IntersectionMap(vectors map[string]*Vector) map[string]*Vector {
	res := make(map[string]*Vector, len(vectors))
	for id, vec := range vectors {
		others := make([]*Vector, 0, len(vectors)-1)
		for otherID, other := range vectors {
			if otherID != id {
				others = append(others, other)
			}
		}
		res[id] = vec.Intersection(others...)
	}
	return res
}

// intersect returns the points of left that have a refper match in right
func intersect(left, right []Point) []Point {
	res := make([]Point, 0, len(left))
	align(left, right, func(lp, _ Point) {
		res = append(res, lp)
	})
	return res
}

// align walks left and advances a cursor into right while right is behind. match
// is called for every left point with the first right point on the same refper,
// so repeated refpers on either side never pair out of step.
func align(left, right []Point, match func(lp, rp Point)) {
	cursor := 0
	for _, lp := range left {
		for cursor < len(right) && right[cursor].Refper.Before(lp.Refper) {
			cursor++
		}

		if cursor == len(right) {
			return
		}

		if right[cursor].Refper.Equal(lp.Refper) {
			match(lp, right[cursor])
		}
	}
}

// Reduce left-folds reducer over the non-null values of the vector, seeding the
// accumulator with the first one. Returns nil when there is nothing to fold.
func (v *Vector) Reduce(reducer func(acc, val float64) float64) *float64 {
	var acc *float64
	for _, p := range v.points {
		if p.Value == nil {
			continue
		}
		if acc == nil {
			acc = Float(*p.Value)
			continue
		}
		*acc = reducer(*acc, *p.Value)
	}
	return acc
}

// Sum adds all non-null values; an empty vector sums to 0
func (v *Vector) Sum() float64 {
	return floats.Sum(v.values())
}

// Average returns the mean of all non-null values, or nil for an empty vector
func (v *Vector) Average() *float64 {
	vals := v.values()
	if len(vals) == 0 {
		return nil
	}
	return Float(stat.Mean(vals, nil))
}

// values returns the non-null values of the vector
func (v *Vector) values() []float64 {
	vals := make([]float64, 0, len(v.points))
	for _, p := range v.points {
		if p.Value != nil {
			vals = append(vals, *p.Value)
		}
	}
	return vals
}

// Copy creates a deep copy of the point
func (p Point) Copy() Point {
	res := Point{
		Refper: p.Refper,
	}

	if p.Value != nil {
		res.Value = Float(*p.Value)
	}

	if p.Extra != nil {
		res.Extra = make(map[string]any, len(p.Extra))
		for k, val := range p.Extra {
			res.Extra[k] = val
		}
	}

	return res
}

// Equal returns true if the reference periods and values match; extra fields are
// not compared
func (p Point) Equal(other Point) bool {
	if !p.Refper.Equal(other.Refper) {
		return false
	}

	switch {
	case p.Value == nil && other.Value == nil:
		return true
	case p.Value == nil || other.Value == nil:
		return false
	default:
		return *p.Value == *other.Value
	}
}

// derive creates a new point at p's reference period holding value. p's extra fields
// are copied forward.
func derive(p Point, value *float64) Point {
	res := Point{
		Refper: p.Refper,
		Value:  value,
	}
	res.Extra = mergeExtra(res.Extra, p.Extra)
	return res
}

// mergeExtra copies keys from src into dst that dst does not already define
func mergeExtra(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}

	if dst == nil {
		dst = make(map[string]any, len(src))
	}

	for k, val := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = val
		}
	}

	return dst
}
