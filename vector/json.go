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

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const (
	RefperKey = "refper"
	ValueKey  = "value"
)

// FromRecords builds a vector from raw records of the form
// {"refper": "2018-01-01", "value": 1, ...extra}. Refper may be a date string or a
// time.Time; value may be nil or anything that converts to a float.
func FromRecords(records []map[string]any) (*Vector, error) {
	v := &Vector{
		points: make([]Point, 0, len(records)),
	}

	for idx, record := range records {
		p, err := pointFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", idx, err)
		}
		v.points = append(v.points, p)
	}

	return v, nil
}

// FromJSON parses the encoding produced by JSON
func FromJSON(data []byte) (*Vector, error) {
	v := &Vector{}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSON encodes the vector as an array of points
func (v *Vector) JSON() ([]byte, error) {
	return json.Marshal(v)
}

// Records converts the vector to the raw record form accepted by FromRecords
func (v *Vector) Records() []map[string]any {
	records := make([]map[string]any, 0, len(v.points))
	for _, p := range v.points {
		records = append(records, p.record())
	}
	return records
}

// MarshalJSON implements json.Marshaler
func (v *Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Records())
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Vector) UnmarshalJSON(data []byte) error {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}

	parsed, err := FromRecords(records)
	if err != nil {
		return err
	}

	v.points = parsed.points
	return nil
}

// MarshalJSON implements json.Marshaler; extra fields are flattened next to refper
// and value
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.record())
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Point) UnmarshalJSON(data []byte) error {
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}

	parsed, err := pointFromRecord(record)
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}

func (p Point) record() map[string]any {
	record := make(map[string]any, len(p.Extra)+2)
	for k, val := range p.Extra {
		record[k] = val
	}

	record[RefperKey] = p.Refper.Format(DateFormat)
	if p.Value == nil {
		record[ValueKey] = nil
	} else {
		record[ValueKey] = *p.Value
	}

	return record
}

func pointFromRecord(record map[string]any) (Point, error) {
	p := Point{}

	switch refper := record[RefperKey].(type) {
	case nil:
		return Point{}, ErrMissingRefper
	case time.Time:
		p.Refper = NormalizeDate(refper)
	case string:
		dt, err := ParseDate(refper)
		if err != nil {
			return Point{}, err
		}
		p.Refper = dt
	default:
		return Point{}, fmt.Errorf("%w: %v", ErrInvalidDate, refper)
	}

	if raw := record[ValueKey]; raw != nil {
		val, err := cast.ToFloat64E(raw)
		if err != nil {
			return Point{}, fmt.Errorf("%w: %v", ErrInvalidValue, raw)
		}
		p.Value = Float(val)
	}

	for k, val := range record {
		if k == RefperKey || k == ValueKey {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any, len(record)-2)
		}
		p.Extra[k] = val
	}

	return p, nil
}
