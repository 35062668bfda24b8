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
	"strings"

	"github.com/goccy/go-json"
	"github.com/penny-vault/pv-vector/expression"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var idsJSON bool

func init() {
	idsCmd.Flags().BoolVar(&idsJSON, "json", false, "Print the ids as a JSON array")
	rootCmd.AddCommand(idsCmd)
}

var idsCmd = &cobra.Command{
	Use:   "ids <expression>",
	Short: "List the vector ids referenced by an expression",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ids := expression.VectorIDs(strings.Join(args, " "))
		if idsJSON {
			out, err := json.Marshal(ids)
			if err != nil {
				log.Fatal().Err(err).Msg("could not encode ids")
			}
			fmt.Println(string(out))
			return
		}

		for _, id := range ids {
			fmt.Println(id)
		}
	},
}
