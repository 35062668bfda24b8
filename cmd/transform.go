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
	"github.com/penny-vault/pv-vector/data"
	"github.com/penny-vault/pv-vector/vector"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	transformInput  string
	transformOp     string
	transformOutput string
	transformTable  bool
)

var transforms = map[string]func(*vector.Vector) *vector.Vector{
	"pop-pct":  (*vector.Vector).PeriodToPeriodPercentageChange,
	"pop-diff": (*vector.Vector).PeriodToPeriodDifference,
	"spy-pct":  (*vector.Vector).SamePeriodPreviousYearPercentageChange,
	"spy-diff": (*vector.Vector).SamePeriodPreviousYearDifference,
}

func init() {
	transformCmd.Flags().StringVarP(&transformInput, "input", "i", data.Stdio, "Vector file to transform")
	transformCmd.Flags().StringVar(&transformOp, "op", "pop-pct", "Transformation: pop-pct, pop-diff (period over period) or spy-pct, spy-diff (same period previous year)")
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "Write the result to a file instead of stdout")
	transformCmd.Flags().BoolVar(&transformTable, "table", false, "Print the result as a table")

	rootCmd.AddCommand(transformCmd)
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Compute period over period changes of a vector",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fn, ok := transforms[transformOp]
		if !ok {
			log.Fatal().Str("Op", transformOp).Msg("unknown transformation")
		}

		v := loadVector(transformInput)
		if transformOp == "spy-pct" || transformOp == "spy-diff" {
			log.Info().Str("Frequency", string(v.DetectFrequency())).Msg("detected vector frequency")
		}

		writeVector(fn(v), transformOutput, transformTable)
	},
}
