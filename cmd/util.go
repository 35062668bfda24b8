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

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/penny-vault/pv-vector/data"
	"github.com/penny-vault/pv-vector/expression"
	"github.com/penny-vault/pv-vector/vector"
	"github.com/rs/zerolog/log"
)

// loadVector reads a single vector or exits
func loadVector(path string) *vector.Vector {
	v, err := data.LoadVector(path)
	if err != nil {
		log.Fatal().Err(err).Str("Path", path).Msg("could not load vector")
	}
	log.Debug().Str("Path", path).Int("Len", v.Len()).Msg("loaded vector")
	return v
}

// writeVector saves v to output when it is set, prints it as a table when table is
// set and otherwise prints JSON to stdout
func writeVector(v *vector.Vector, output string, table bool) {
	if output != "" {
		if err := data.SaveVector(output, v); err != nil {
			log.Fatal().Err(err).Str("Output", output).Msg("could not write vector")
		}
	}

	if table {
		fmt.Println(v.Table())
		return
	}

	if output == "" {
		if err := data.SaveVector(data.Stdio, v); err != nil {
			log.Fatal().Err(err).Msg("could not write vector")
		}
	}
}

// printSyntaxError shows the expression with a marker under the offending character
func printSyntaxError(expr string, err *expression.SyntaxError) {
	fmt.Fprintln(os.Stderr, expr)
	if err.Position > 0 {
		fmt.Fprintln(os.Stderr, strings.Repeat(" ", err.Position-1)+"^")
	}
	fmt.Fprintln(os.Stderr, err.Error())
}
