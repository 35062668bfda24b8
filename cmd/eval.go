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
	"errors"
	"os"
	"strings"

	"github.com/penny-vault/pv-vector/data"
	"github.com/penny-vault/pv-vector/expression"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	evalVectors string
	evalRound   int
	evalBankers bool
	evalTable   bool
	evalOutput  string
)

func init() {
	evalCmd.Flags().StringVarP(&evalVectors, "vectors", "i", data.Stdio, "File with the vectors referenced by the expression (JSON or YAML, optionally lz4 compressed)")
	evalCmd.Flags().IntVar(&evalRound, "round", -1, "Round results to the given number of decimals; negative values disable rounding")
	evalCmd.Flags().BoolVar(&evalBankers, "bankers", false, "Round half to even instead of half away from zero")
	evalCmd.Flags().BoolVar(&evalTable, "table", false, "Print the result as a table")
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "", "Write the result to a file instead of stdout")

	rootCmd.AddCommand(evalCmd)
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression over a set of vectors",
	Long: `Evaluate an arithmetic expression over the vectors in a vector file, e.g.

  pvvector eval --vectors vectors.json "(v1 + v2) * 2"

The vector file maps vector ids to lists of points:

  {"1": [{"refper": "2018-01-01", "value": 1}], "2": [...]}`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		expr := strings.Join(args, " ")

		set, err := data.LoadSet(evalVectors)
		if err != nil {
			log.Fatal().Err(err).Str("Path", evalVectors).Msg("could not load vectors")
		}

		for _, id := range expression.VectorIDs(expr) {
			if _, err := set.Get(id); err != nil {
				log.Warn().Str("VectorID", id).Strs("Available", set.IDs()).Msg("expression references a vector that is not in the vector file")
			}
		}

		res, err := expression.Evaluate(expr, set)
		if err != nil {
			var syntaxErr *expression.SyntaxError
			if errors.As(err, &syntaxErr) {
				printSyntaxError(expr, syntaxErr)
				os.Exit(1)
			}
			log.Fatal().Err(err).Str("Expression", expr).Msg("could not evaluate expression")
		}

		if evalRound >= 0 {
			if evalBankers {
				res = res.RoundBankers(evalRound)
			} else {
				res = res.Round(evalRound)
			}
		}

		log.Info().Str("Expression", expr).Int("Len", res.Len()).Msg("evaluated expression")
		writeVector(res, evalOutput, evalTable)
	},
}
