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
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rodeo/pkg/store"
	"laptudirm.com/x/rodeo/pkg/tournament"
	"laptudirm.com/x/rodeo/pkg/tournament/schedule"
)

const SPIN = 31

func Make() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make [config-file]",
		Short: "Make the schedule of a rodeo",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`make builds the schedule of a rodeo and prints it one round
			at a time, along with the court of every match and the teams
			resting during the round.

			The rodeo is read from the given YAML config file. Flags
			override the values of the file; without a file, --teams
			placeholder teams are scheduled.

			Teams are scheduled by gender when every gender can play a
			full schedule on its own. Otherwise teams are ordered so that
			they mostly meet teams of their own gender.

			With --save the schedule is stored in ~/rodeo/schedules and
			can be shown again later with "rodeo show".`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var config tournament.Config
			if len(args) == 1 {
				var err error
				if config, err = tournament.LoadConfig(args[0]); err != nil {
					return err
				}
			}

			if err := applyFlags(cmd, &config); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"teams":     len(config.Teams),
				"rounds":    config.Rounds,
				"courts":    config.Courts,
				"scheduler": config.Scheduler,
			}).Debug("Making rodeo")

			s := newSpinner(cmd.ErrOrStderr())
			s.Start()
			rodeo, err := config.MakeRodeo(cmd.Context())
			s.Stop()

			if err != nil {
				return err
			}

			if err := rodeo.Report(cmd.OutOrStdout()); err != nil {
				return err
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				rodeos, err := store.Default()
				if err != nil {
					return err
				}

				id, err := rodeos.Save(rodeo)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "\n\x1b[32mSaved rodeo\x1b[0m: %s\n", id)
			}

			return nil
		},
	}

	cmd.Flags().IntP("teams", "n", 0, "Number of placeholder teams, if the config has none")
	cmd.Flags().IntP("rounds", "r", 0, "Number of rounds")
	cmd.Flags().IntP("courts", "c", 0, "Number of courts")
	cmd.Flags().StringP("scheduler", "s", tournament.DefaultScheduler,
		"Scheduler to use ("+strings.Join(schedule.Names(), ", ")+")")
	cmd.Flags().String("name", "", "Name of the rodeo")
	cmd.Flags().StringP("date", "d", "", "Date of the rodeo (YYYY-MM-DD)")
	cmd.Flags().Duration("timeout", tournament.DefaultTimeout, "Maximum time to search for a schedule")
	cmd.Flags().Bool("save", false, "Save the schedule")

	return cmd
}

func newSpinner(w io.Writer) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " Searching for a schedule..."
	return s
}

// applyFlags overrides the configuration with the flags given by the user,
// and checks the result before any scheduling is done.
func applyFlags(cmd *cobra.Command, config *tournament.Config) error {
	flags := cmd.Flags()

	if flags.Changed("rounds") {
		config.Rounds, _ = flags.GetInt("rounds")
	}

	if flags.Changed("courts") {
		config.Courts, _ = flags.GetInt("courts")
	}

	if flags.Changed("scheduler") {
		config.Scheduler, _ = flags.GetString("scheduler")
	}

	if flags.Changed("name") {
		config.Name, _ = flags.GetString("name")
	}

	if flags.Changed("timeout") {
		config.Timeout, _ = flags.GetDuration("timeout")
	}

	if flags.Changed("date") {
		value, _ := flags.GetString("date")
		date, err := time.Parse(time.DateOnly, value)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", value, err)
		}

		config.Date = date
	}

	teams, _ := flags.GetInt("teams")
	if teams > tournament.MaxTeams {
		return fmt.Errorf("--teams %d: %w", teams, tournament.ErrTooManyTeams)
	}

	switch {
	case len(config.Teams) == 0:
		config.Teams = tournament.PlaceholderTeams(teams)
	case flags.Changed("teams") && teams != len(config.Teams):
		return fmt.Errorf("--teams %d conflicts with the %d teams of the config", teams, len(config.Teams))
	}

	if len(config.Teams) < 2 {
		return errors.New("at least two teams are needed, use --teams or a config file")
	}

	if config.Rounds < 1 || config.Courts < 1 {
		return errors.New("--rounds and --courts must be positive")
	}

	if _, err := schedule.New(config.Scheduler); err != nil {
		return err
	}

	config.Defaults()
	return nil
}
