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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rodeo/pkg/tournament"
)

func Feasibility() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feasibility --teams N --rounds R --courts C",
		Short: "Show how many matches every team can play",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`feasibility finds the largest number of matches every
			team can play against distinct opponents, given the number
			of teams, the number of rounds, and the number of courts
			available in each round.

			A configuration for which no such number exists is reported
			as infeasible.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			teams, _ := cmd.Flags().GetInt("teams")
			rounds, _ := cmd.Flags().GetInt("rounds")
			courts, _ := cmd.Flags().GetInt("courts")

			feasibility := tournament.ComputeFeasibility(teams, rounds, courts)
			if !feasibility.Feasible() {
				fmt.Fprintf(cmd.OutOrStdout(),
					"\x1b[31mInfeasible:\x1b[0m %d teams can not play %d rounds on %d courts.\n",
					teams, rounds, courts)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\x1b[32mMatches per team\x1b[0m:  %d\n", feasibility.MatchesPerTeam)
			fmt.Fprintf(cmd.OutOrStdout(), "\x1b[32mTotal matches\x1b[0m:     %d\n", feasibility.TotalMatches)
			fmt.Fprintf(cmd.OutOrStdout(), "\x1b[32mMatches per round\x1b[0m: %.2f (at most %d)\n",
				feasibility.MatchesPerTurn, feasibility.Capacity())
			return nil
		},
	}

	cmd.Flags().IntP("teams", "n", 0, "Number of teams")
	cmd.Flags().IntP("rounds", "r", 0, "Number of rounds")
	cmd.Flags().IntP("courts", "c", 0, "Number of courts")

	_ = cmd.MarkFlagRequired("teams")
	_ = cmd.MarkFlagRequired("rounds")
	_ = cmd.MarkFlagRequired("courts")

	return cmd
}
