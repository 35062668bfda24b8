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

	"github.com/goccy/go-json"
	"github.com/penny-vault/pv-vector/common"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	versionModules bool
	versionJSON    bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionModules, "deps", false, "Also print the modules compiled into the binary")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := common.CurrentBuild(versionModules)
		if !versionJSON {
			fmt.Println(info.String())
			return
		}

		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("could not encode build information")
		}
		fmt.Println(string(data))
	},
}
