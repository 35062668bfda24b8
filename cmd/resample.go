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
	resampleInput     string
	resampleFrequency string
	resampleMode      string
	resampleOffset    int
	resampleOutput    string
	resampleTable     bool
)

func init() {
	resampleCmd.Flags().StringVarP(&resampleInput, "input", "i", data.Stdio, "Vector file to resample")
	resampleCmd.Flags().StringVarP(&resampleFrequency, "frequency", "f", "monthly", "Target frequency: daily, weekly, monthly, quarterly, annual, biannual, triannual, quadrennial, or quinquennial")
	resampleCmd.Flags().StringVarP(&resampleMode, "mode", "m", string(vector.Last), "Aggregation mode: last, sum, average, max, or min")
	resampleCmd.Flags().IntVar(&resampleOffset, "offset", 0, "Quarterly month offset (0, 1, or 2)")
	resampleCmd.Flags().StringVarP(&resampleOutput, "output", "o", "", "Write the result to a file instead of stdout")
	resampleCmd.Flags().BoolVar(&resampleTable, "table", false, "Print the result as a table")

	rootCmd.AddCommand(resampleCmd)
}

var resampleCmd = &cobra.Command{
	Use:   "resample",
	Short: "Downsample a vector to a lower frequency",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		frequency, err := vector.ParseFrequency(resampleFrequency)
		if err != nil {
			log.Fatal().Err(err).Str("Frequency", resampleFrequency).Msg("invalid frequency")
		}

		v := loadVector(resampleInput)
		res, err := v.Resample(frequency, vector.Aggregation(resampleMode), resampleOffset)
		if err != nil {
			log.Fatal().Err(err).Str("Frequency", string(frequency)).Str("Mode", resampleMode).Int("Offset", resampleOffset).Msg("could not resample vector")
		}

		log.Info().Str("Frequency", string(frequency)).Int("InputLen", v.Len()).Int("OutputLen", res.Len()).Msg("resampled vector")
		writeVector(res, resampleOutput, resampleTable)
	},
}
