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

func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the saved rodeos",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			rodeos, err := store.Default()
			if err != nil {
				return err
			}

			entries, err := rodeos.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "\x1b[31mNo Rodeos Saved.\x1b[0m")
				return nil
			}

			fmt.Fprint(out, "\x1b[32mSaved Rodeos\x1b[0m:\n\n")
			for _, entry := range entries {
				date := "          "
				if !entry.Date.IsZero() {
					date = entry.Date.Format("2006-01-02")
				}

				name := entry.Name
				if name == "" {
					name = "(unnamed)"
				}

				fmt.Fprintf(out, "- \x1b[34m%s\x1b[0m %s %-20s %2d teams, %2d rounds\n",
					entry.ID, date, name, entry.Teams, entry.Rounds)
			}

			return nil
		},
	}
}
