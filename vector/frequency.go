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
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// Aggregator collapses a run of points into a single value. The aggregated point
// takes its refper and extra fields from the last point of the run.
type Aggregator func(run *Vector) *float64

var aggregators = map[Aggregation]Aggregator{
	Last: func(run *Vector) *float64 {
		if run.Len() == 0 || run.points[run.Len()-1].Value == nil {
			return nil
		}
		return Float(*run.points[run.Len()-1].Value)
	},
	Sum: func(run *Vector) *float64 {
		vals := run.values()
		if len(vals) == 0 {
			return nil
		}
		return Float(floats.Sum(vals))
	},
	Average: func(run *Vector) *float64 {
		return run.Average()
	},
	Max: func(run *Vector) *float64 {
		vals := run.values()
		if len(vals) == 0 {
			return nil
		}
		return Float(floats.Max(vals))
	},
	Min: func(run *Vector) *float64 {
		vals := run.values()
		if len(vals) == 0 {
			return nil
		}
		return Float(floats.Min(vals))
	},
}

// AggregationByName returns the aggregator registered for name (case-insensitive)
func AggregationByName(name string) (Aggregator, error) {
	if agg, ok := aggregators[Aggregation(strings.ToLower(strings.TrimSpace(name)))]; ok {
		return agg, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAggregation, name)
}

// ParseFrequency converts a frequency name (case-insensitive) to a Frequency
func ParseFrequency(name string) (Frequency, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, frequency := range []Frequency{Daily, Weekly, Monthly, Quarterly, Annual, BiAnnual, TriAnnual, Quadrennial, Quinquennial} {
		if strings.ToLower(string(frequency)) == name {
			return frequency, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownFrequency, name)
}

// Split partitions the vector into consecutive runs. A new run starts whenever
// boundary returns true for the previous and current reference periods.
func (v *Vector) Split(boundary func(prev, curr time.Time) bool) []*Vector {
	runs := make([]*Vector, 0)
	var run *Vector

	for idx, p := range v.points {
		if idx == 0 || boundary(v.points[idx-1].Refper, p.Refper) {
			run = &Vector{points: make([]Point, 0)}
			runs = append(runs, run)
		}
		run.points = append(run.points, p.Copy())
	}

	return runs
}

// Join maps every run to a single point using agg
func Join(runs []*Vector, agg Aggregator) *Vector {
	res := &Vector{
		points: make([]Point, 0, len(runs)),
	}

	for _, run := range runs {
		if run.Len() == 0 {
			continue
		}
		res.points = append(res.points, derive(run.points[run.Len()-1], agg(run)))
	}

	return res
}

// DayBoundary is true when the calendar day changes
func DayBoundary(prev, curr time.Time) bool {
	return !sameDay(prev, curr)
}

// WeekBoundary is true when the day of the week wraps around
func WeekBoundary(prev, curr time.Time) bool {
	return curr.Weekday() < prev.Weekday()
}

// MonthBoundary is true when the month or the year changes
func MonthBoundary(prev, curr time.Time) bool {
	return curr.Month() != prev.Month() || curr.Year() != prev.Year()
}

// YearBoundary is true when the calendar year changes
func YearBoundary(prev, curr time.Time) bool {
	return curr.Year() != prev.Year()
}

// QuarterBoundary returns a predicate that is true when the quarter changes, with
// quarters shifted forward by offset months (offset 1 gives Feb-Apr, May-Jul, ...)
func QuarterBoundary(offset int) func(prev, curr time.Time) bool {
	return func(prev, curr time.Time) bool {
		return quarterSerial(prev, offset) != quarterSerial(curr, offset)
	}
}

// quarterSerial numbers quarters consecutively so quarters spanning a year end
// still compare equal
func quarterSerial(t time.Time, offset int) int {
	return (t.Year()*12 + int(t.Month()) - 1 - offset) / 3
}

// isQuarterEndMonth reports if t falls in the last month of a quarter for offset
func isQuarterEndMonth(t time.Time, offset int) bool {
	month := int(t.Month()) - 1
	return ((month-offset+12)%12)%3 == 2
}

// Daily joins points that share a calendar day
func (v *Vector) Daily(agg Aggregator) *Vector {
	return Join(v.Split(DayBoundary), agg)
}

// Weekly joins points into weeks; a week ends when the day of the week wraps
func (v *Vector) Weekly(agg Aggregator) *Vector {
	return Join(v.Split(WeekBoundary), agg)
}

// Monthly joins points into calendar months
func (v *Vector) Monthly(agg Aggregator) *Vector {
	return Join(v.Split(MonthBoundary), agg)
}

// Quarterly keeps the points that fall in the closing month of each quarter and
// joins them per quarter. offset shifts the quarters by 0, 1 or 2 months.
func (v *Vector) Quarterly(agg Aggregator, offset int) (*Vector, error) {
	if offset < 0 || offset > 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}

	boundaryMonths := v.Filter(func(p Point) bool {
		return isQuarterEndMonth(p.Refper, offset)
	})

	return Join(boundaryMonths.Split(QuarterBoundary(offset)), agg), nil
}

// Annual joins points into calendar years and keeps only the points whose month
// matches the first joined point, so every year is sampled at the same month
func (v *Vector) Annual(agg Aggregator) *Vector {
	joined := Join(v.Split(YearBoundary), agg)
	if joined.Len() == 0 {
		return joined
	}

	month := joined.points[0].Refper.Month()
	return joined.Filter(func(p Point) bool {
		return p.Refper.Month() == month
	})
}

// BiAnnual joins points into consecutive 2 year buckets
func (v *Vector) BiAnnual(agg Aggregator) *Vector {
	return v.MultiYear(agg, 2)
}

// TriAnnual joins points into consecutive 3 year buckets
func (v *Vector) TriAnnual(agg Aggregator) *Vector {
	return v.MultiYear(agg, 3)
}

// Quadrennial joins points into consecutive 4 year buckets
func (v *Vector) Quadrennial(agg Aggregator) *Vector {
	return v.MultiYear(agg, 4)
}

// Quinquennial joins points into consecutive 5 year buckets
func (v *Vector) Quinquennial(agg Aggregator) *Vector {
	return v.MultiYear(agg, 5)
}

// MultiYear resamples the vector to Annual with agg and then joins every years
// consecutive annual points into one, again with agg.
func (v *Vector) MultiYear(agg Aggregator, years int) *Vector {
	annual := v.Annual(agg)
	if years <= 1 {
		return annual
	}

	buckets := make([]*Vector, 0, annual.Len()/years+1)
	for idx := 0; idx < annual.Len(); idx += years {
		buckets = append(buckets, &Vector{points: annual.points[idx:minInt(idx+years, annual.Len())]})
	}

	return Join(buckets, agg)
}

// Resample converts the vector to frequency, aggregating each period with the named
// aggregation mode. offset is only used for Quarterly.
func (v *Vector) Resample(frequency Frequency, mode Aggregation, offset int) (*Vector, error) {
	agg, err := AggregationByName(string(mode))
	if err != nil {
		return nil, err
	}

	log.Debug().Str("Frequency", string(frequency)).Str("Mode", string(mode)).Int("Offset", offset).Int("NumPoints", v.Len()).Msg("resample vector")

	switch frequency {
	case Daily:
		return v.Daily(agg), nil
	case Weekly:
		return v.Weekly(agg), nil
	case Monthly:
		return v.Monthly(agg), nil
	case Quarterly:
		return v.Quarterly(agg, offset)
	case Annual:
		return v.Annual(agg), nil
	case BiAnnual:
		return v.BiAnnual(agg), nil
	case TriAnnual:
		return v.TriAnnual(agg), nil
	case Quadrennial:
		return v.Quadrennial(agg), nil
	case Quinquennial:
		return v.Quinquennial(agg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrequency, frequency)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
