// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
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

	"github.com/spf13/cobra"

	"laptudirm.com/x/rodeo/pkg/store"
)

func Show() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show rodeo-id",
		Short: "Print the schedule of a saved rodeo",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			rodeos, err := store.Default()
			if err != nil {
				return err
			}

			rodeo, err := rodeos.Load(args[0])
			if err != nil {
				return err
			}

			if csv, _ := cmd.Flags().GetBool("csv"); csv {
				return rodeo.WriteCSV(cmd.OutOrStdout())
			}

			return rodeo.Report(cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("csv", false, "Print the matches as CSV")

	return cmd
}

func Validate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate rodeo-id",
		Short: "Check the schedule of a saved rodeo",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			rodeos, err := store.Default()
			if err != nil {
				return err
			}

			rodeo, err := rodeos.Load(args[0])
			if err != nil {
				return err
			}

			if err := rodeo.Validate(); err != nil {
				return fmt.Errorf("rodeo %s is invalid: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\x1b[32mRodeo %s is valid.\x1b[0m\n", args[0])
			return nil
		},
	}
}
