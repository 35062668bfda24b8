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
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Operate applies op point-wise to v and other on the reference periods they share.
// When other repeats a refper, points of v on that refper pair with the first one.
// Null operands produce null results; so do results that are not finite
// (e.g., division by zero). Extra fields are taken from v.
func (v *Vector) Operate(other *Vector, op func(a, b float64) float64) *Vector {
	if other == nil {
		return &Vector{points: []Point{}}
	}

	res := &Vector{
		points: make([]Point, 0, minInt(len(v.points), len(other.points))),
	}

	align(v.points, other.points, func(lp, rp Point) {
		var val *float64
		if lp.Value != nil && rp.Value != nil {
			val = finite(op(*lp.Value, *rp.Value))
		}
		res.points = append(res.points, derive(lp, val))
	})

	return res
}

// Broadcast applies op(value, scalar) to every point of the vector
func (v *Vector) Broadcast(scalar float64, op func(val, scalar float64) float64) *Vector {
	return v.PeriodTransformation(func(val float64) float64 {
		return op(val, scalar)
	})
}

// PeriodTransformation maps op over every non-null value
func (v *Vector) PeriodTransformation(op func(val float64) float64) *Vector {
	res := &Vector{
		points: make([]Point, 0, len(v.points)),
	}

	for _, p := range v.points {
		var val *float64
		if p.Value != nil {
			val = finite(op(*p.Value))
		}
		res.points = append(res.points, derive(p, val))
	}

	return res
}

// PeriodDeltaTransformation computes op(current, previous) for every point after
// the first; the first point has no predecessor and is null
func (v *Vector) PeriodDeltaTransformation(op func(curr, last float64) float64) *Vector {
	return v.lagTransformation(func(idx int) *Point {
		if idx == 0 {
			return nil
		}
		return &v.points[idx-1]
	}, op)
}

// PeriodToPeriodPercentageChange computes the percent change from the previous point
func (v *Vector) PeriodToPeriodPercentageChange() *Vector {
	return v.PeriodDeltaTransformation(percentageChange)
}

// PeriodToPeriodDifference computes the difference from the previous point
func (v *Vector) PeriodToPeriodDifference() *Vector {
	return v.PeriodDeltaTransformation(difference)
}

// SamePeriodPreviousYearPercentageChange computes the percent change from the
// point one year earlier at the vector's own frequency
func (v *Vector) SamePeriodPreviousYearPercentageChange() *Vector {
	return v.samePeriodPreviousYear(percentageChange)
}

// SamePeriodPreviousYearDifference computes the difference from the point one year
// earlier at the vector's own frequency
func (v *Vector) SamePeriodPreviousYearDifference() *Vector {
	return v.samePeriodPreviousYear(difference)
}

func percentageChange(curr, last float64) float64 {
	return (curr - last) / math.Abs(last) * 100
}

func difference(curr, last float64) float64 {
	return curr - last
}

// samePeriodPreviousYear compares each point with the one exactly one reporting
// cycle (a year) earlier. Daily vectors look the date up directly since trading
// calendars are irregular; every other frequency steps back a year of periods.
func (v *Vector) samePeriodPreviousYear(op func(curr, last float64) float64) *Vector {
	frequency := v.DetectFrequency()

	if frequency == Daily {
		byDate := make(map[time.Time]int, len(v.points))
		for idx, p := range v.points {
			byDate[p.Refper] = idx
		}

		return v.lagTransformation(func(idx int) *Point {
			if prev, ok := byDate[v.points[idx].Refper.AddDate(-1, 0, 0)]; ok {
				return &v.points[prev]
			}
			return nil
		}, op)
	}

	lag := periodsPerYear[frequency]
	log.Debug().Str("Frequency", string(frequency)).Int("Lag", lag).Msg("same period previous year")

	return v.lagTransformation(func(idx int) *Point {
		if lag == 0 || idx < lag {
			return nil
		}
		return &v.points[idx-lag]
	}, op)
}

// lagTransformation computes op(current, previous) where previous is selected by
// prev; a nil previous point yields a null value
func (v *Vector) lagTransformation(prev func(idx int) *Point, op func(curr, last float64) float64) *Vector {
	res := &Vector{
		points: make([]Point, 0, len(v.points)),
	}

	for idx, p := range v.points {
		var val *float64
		if last := prev(idx); last != nil && p.Value != nil && last.Value != nil {
			val = finite(op(*p.Value, *last.Value))
		}
		res.points = append(res.points, derive(p, val))
	}

	return res
}

var periodsPerYear = map[Frequency]int{
	Weekly:     52,
	Monthly:    12,
	Quarterly:  4,
	SemiAnnual: 2,
	Annual:     1,
}

// frequencyBuckets maps the maximum gap in days between consecutive points to the
// frequency it implies, finest first
var frequencyBuckets = []struct {
	maxDays   int
	frequency Frequency
}{
	{4, Daily},
	{10, Weekly},
	{45, Monthly},
	{135, Quarterly},
	{250, SemiAnnual},
	{500, Annual},
	{900, BiAnnual},
	{1300, TriAnnual},
	{1650, Quadrennial},
	{math.MaxInt32, Quinquennial},
}

// DetectFrequency returns the dominant reporting cycle of the vector based on the
// spacing between consecutive reference periods. Ties resolve to the finer
// frequency; vectors with fewer than 2 points are Unknown.
func (v *Vector) DetectFrequency() Frequency {
	if len(v.points) < 2 {
		return Unknown
	}

	counts := make(map[Frequency]int, len(frequencyBuckets))
	for idx := 1; idx < len(v.points); idx++ {
		days := int(v.points[idx].Refper.Sub(v.points[idx-1].Refper).Hours() / 24)
		for _, bucket := range frequencyBuckets {
			if days <= bucket.maxDays {
				counts[bucket.frequency]++
				break
			}
		}
	}

	dominant := Unknown
	best := 0
	for _, bucket := range frequencyBuckets {
		if counts[bucket.frequency] > best {
			best = counts[bucket.frequency]
			dominant = bucket.frequency
		}
	}

	return dominant
}

// Round rounds every value to decimals places, rounding half away from zero
func (v *Vector) Round(decimals int) *Vector {
	return v.PeriodTransformation(func(val float64) float64 {
		return roundWith(val, decimals, math.Round)
	})
}

// RoundBankers rounds every value to decimals places, rounding half to even
func (v *Vector) RoundBankers(decimals int) *Vector {
	return v.PeriodTransformation(func(val float64) float64 {
		return roundWith(val, decimals, math.RoundToEven)
	})
}

// roundWith scales val by 10^decimals, applies round and scales back. Scaling is
// done on the shortest decimal representation so values such as 1.555 are not
// pushed below the tie by binary floating point error.
func roundWith(val float64, decimals int, round func(float64) float64) float64 {
	res := shift(round(shift(val, decimals)), -decimals)
	if res == 0 {
		// normalize -0
		return 0
	}
	return res
}

// shift multiplies val by 10^places by moving the decimal exponent
func shift(val float64, places int) float64 {
	s := strconv.FormatFloat(val, 'g', -1, 64)
	mantissa, exp := s, 0
	if idx := strings.IndexAny(s, "eE"); idx >= 0 {
		mantissa = s[:idx]
		exp, _ = strconv.Atoi(s[idx+1:])
	}

	res, err := strconv.ParseFloat(fmt.Sprintf("%se%d", mantissa, exp+places), 64)
	if err != nil {
		return val * math.Pow10(places)
	}
	return res
}

// finite returns nil for NaN and infinite values
func finite(val float64) *float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return nil
	}
	return Float(val)
}
