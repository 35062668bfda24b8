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
	"time"
)

// Point is a single observation in a vector. A nil Value means there is no datum
// for the reference period, which is different from a value of 0.
//
// Extra holds user supplied attributes that travel with the point; the engine never
// interprets them but copies them forward on every derived point.
type Point struct {
	Refper time.Time
	Value  *float64
	Extra  map[string]any
}

// Vector stores an ordered sequence of points indexed by reference period, e.g.,
//
// REFPER      VALUE
// 2018-01-01  1
// 2018-02-01  2
// 2018-03-01  null
//
// Points are expected to be sorted by Refper ascending. Operations that merge two
// vectors (Intersection, Operate, resampling) rely on that ordering.
type Vector struct {
	points []Point
}

// Frequency is the reporting cycle of a vector
type Frequency string

const (
	Unknown      Frequency = "Unknown"
	Daily        Frequency = "Daily"
	Weekly       Frequency = "Weekly"
	Monthly      Frequency = "Monthly"
	Quarterly    Frequency = "Quarterly"
	SemiAnnual   Frequency = "SemiAnnual"
	Annual       Frequency = "Annual"
	BiAnnual     Frequency = "BiAnnual"
	TriAnnual    Frequency = "TriAnnual"
	Quadrennial  Frequency = "Quadrennial"
	Quinquennial Frequency = "Quinquennial"
)

// Aggregation names a function that collapses a run of points into a single value
type Aggregation string

const (
	Last    Aggregation = "last"
	Sum     Aggregation = "sum"
	Average Aggregation = "average"
	Max     Aggregation = "max"
	Min     Aggregation = "min"
)

// Float returns a pointer to f; convenience for building points
func Float(f float64) *float64 {
	return &f
}
