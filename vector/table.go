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
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/zeebo/blake3"
)

// Table renders the vector as an ASCII table. Extra fields are added as columns
// in alphabetical order.
func (v *Vector) Table() string {
	if len(v.points) == 0 {
		return "<NO DATA>"
	}

	extraCols := make(map[string]bool)
	for _, p := range v.points {
		for k := range p.Extra {
			extraCols[k] = true
		}
	}

	extra := make([]string, 0, len(extraCols))
	for k := range extraCols {
		extra = append(extra, k)
	}
	sort.Strings(extra)

	tableCols := append([]string{"Refper", "Value"}, extra...)

	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	footer := make([]string, len(tableCols))
	footer[0] = "Num Rows"
	footer[1] = fmt.Sprintf("%d", v.Len())
	table.SetFooter(footer)
	table.SetBorder(false)

	for _, p := range v.points {
		row := make([]string, 0, len(tableCols))
		row = append(row, p.Refper.Format(DateFormat))

		if p.Value == nil {
			row = append(row, "null")
		} else {
			row = append(row, fmt.Sprintf("%.4f", *p.Value))
		}

		for _, k := range extra {
			if val, ok := p.Extra[k]; ok {
				row = append(row, fmt.Sprintf("%v", val))
			} else {
				row = append(row, "")
			}
		}

		table.Append(row)
	}

	table.Render()
	return s.String()
}

// Fingerprint returns a hex encoded blake3 hash of the vector's JSON encoding. Two
// vectors with the same points and extra fields have the same fingerprint.
func (v *Vector) Fingerprint() (string, error) {
	data, err := v.JSON()
	if err != nil {
		return "", err
	}

	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
