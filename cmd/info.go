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

	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/pv-vector/data"
	"github.com/penny-vault/pv-vector/vector"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	infoInput string
	infoTable bool
)

func init() {
	infoCmd.Flags().StringVarP(&infoInput, "input", "i", data.Stdio, "Vector file to describe")
	infoCmd.Flags().BoolVar(&infoTable, "table", false, "Also print every point of the vector")

	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize a vector",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := loadVector(infoInput)

		fingerprint, err := v.Fingerprint()
		if err != nil {
			log.Fatal().Err(err).Msg("could not fingerprint vector")
		}

		average := "null"
		if avg := v.Average(); avg != nil {
			average = fmt.Sprintf("%.4f", *avg)
		}

		start, end := "", ""
		if v.Len() > 0 {
			start = v.Start().Format(vector.DateFormat)
			end = v.End().Format(vector.DateFormat)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetBorder(false)
		table.AppendBulk([][]string{
			{"Length", fmt.Sprintf("%d", v.Len())},
			{"Start", start},
			{"End", end},
			{"Frequency", string(v.DetectFrequency())},
			{"Sum", fmt.Sprintf("%.4f", v.Sum())},
			{"Average", average},
			{"Fingerprint", fingerprint},
		})
		table.Render()

		if infoTable {
			fmt.Println()
			fmt.Println(v.Table())
		}
	},
}
