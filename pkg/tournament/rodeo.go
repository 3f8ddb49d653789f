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

package tournament

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rodeo/pkg/tournament/graph"
	"laptudirm.com/x/rodeo/pkg/tournament/schedule"
)

// Bounds on the size of a rodeo. The pairing graph holds a matrix of
// MaxTeams*MaxTeams entries.
const (
	MaxTeams  = 1024
	MaxRounds = 1024
)

var (
	ErrTooFewTeams   = errors.New("rodeo: at least two teams are needed")
	ErrTooManyTeams  = fmt.Errorf("rodeo: at most %d teams are supported", MaxTeams)
	ErrBadParameters = fmt.Errorf("rodeo: rounds must be in [1, %d] and courts positive", MaxRounds)
	ErrInfeasible    = errors.New("rodeo: no valid schedule for this configuration")
)

// Match is a match of a rodeo. TeamA and TeamB are indexes into the teams
// of the rodeo, and Court is the 1-based court the match is played on.
type Match struct {
	TeamA int `yaml:"team-a" json:"teamA"`
	TeamB int `yaml:"team-b" json:"teamB"`
	Court int `yaml:"court" json:"court"`
}

type Round struct {
	Matches []Match `yaml:"matches" json:"matches"`
}

// Rodeo is a tournament in which every team plays the same number of
// matches against distinct opponents, spread over a number of rounds.
type Rodeo struct {
	Name string    `yaml:"name" json:"name"`
	Date time.Time `yaml:"date" json:"date"`

	Courts         int `yaml:"courts" json:"courts"`
	MatchesPerTeam int `yaml:"matches-per-team" json:"matchesPerTeam"`

	Teams  []Team  `yaml:"teams" json:"teams"`
	Rounds []Round `yaml:"rounds" json:"rounds"`
}

// Schedule returns the rounds of the rodeo as turns of team indexes.
func (rodeo *Rodeo) Schedule() schedule.Schedule {
	turns := make(schedule.Schedule, len(rodeo.Rounds))
	for i, round := range rodeo.Rounds {
		turns[i] = make(schedule.Turn, len(round.Matches))
		for j, match := range round.Matches {
			turns[i][j] = graph.NewMatch(graph.Team(match.TeamA), graph.Team(match.TeamB))
		}
	}

	return turns
}

// Validate checks that no team of the rodeo plays twice in a round and that
// every team plays the same number of matches.
func (rodeo *Rodeo) Validate() error {
	return schedule.Validate(teamIDs(len(rodeo.Teams)), rodeo.Schedule())
}

// Resting returns the teams which do not play in the given 0-based round,
// or nil if the rodeo has no such round.
func (rodeo *Rodeo) Resting(round int) []Team {
	if round < 0 || round >= len(rodeo.Rounds) {
		return nil
	}

	playing := make(map[int]bool)
	for _, match := range rodeo.Rounds[round].Matches {
		playing[match.TeamA] = true
		playing[match.TeamB] = true
	}

	var resting []Team
	for i, team := range rodeo.Teams {
		if !playing[i] {
			resting = append(resting, team)
		}
	}

	return resting
}

// Factory makes rodeos for a fixed number of rounds and courts.
type Factory struct {
	Rounds int
	Courts int

	// Scheduler is the name of the scheduler used, see schedule.New.
	Scheduler string

	// Timeout bounds the time spent searching for a schedule. Zero means
	// no bound other than the one of the context.
	Timeout time.Duration
}

// MakeRodeo builds a rodeo for the given teams. Teams are grouped by gender
// when every gender can play a full schedule on its own; otherwise they are
// ordered so that teams mostly meet teams of their own gender.
func (factory *Factory) MakeRodeo(ctx context.Context, name string, date time.Time, teams []Team) (*Rodeo, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%d teams: %w", len(teams), ErrTooFewTeams)
	}

	if len(teams) > MaxTeams {
		return nil, fmt.Errorf("%d teams: %w", len(teams), ErrTooManyTeams)
	}

	if factory.Rounds < 1 || factory.Rounds > MaxRounds || factory.Courts < 1 {
		return nil, fmt.Errorf("%d rounds, %d courts: %w", factory.Rounds, factory.Courts, ErrBadParameters)
	}

	scheduler, err := schedule.New(factory.Scheduler)
	if err != nil {
		return nil, err
	}

	feasibility := ComputeFeasibility(len(teams), factory.Rounds, factory.Courts)
	if !feasibility.Feasible() {
		return nil, fmt.Errorf(
			"%d teams, %d rounds, %d courts: %w",
			len(teams), factory.Rounds, factory.Courts, ErrInfeasible,
		)
	}

	ordered, matches := pairings(teams, feasibility.MatchesPerTeam)
	if len(matches) != feasibility.TotalMatches {
		return nil, fmt.Errorf("built %d of %d matches: %w", len(matches), feasibility.TotalMatches, ErrInfeasible)
	}

	if factory.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, factory.Timeout)
		defer cancel()
	}

	capacity := feasibility.Capacity()
	turns, err := scheduler.Schedule(ctx, graph.New(matches), capacity, factory.Rounds)
	if err != nil {
		return nil, fmt.Errorf("rodeo: %w", err)
	}

	err = schedule.Verify(turns, schedule.Expectation{
		Teams:          teamIDs(len(ordered)),
		Turns:          factory.Rounds,
		Capacity:       capacity,
		Matches:        feasibility.TotalMatches,
		MatchesPerTeam: feasibility.MatchesPerTeam,
	})
	if err != nil {
		logrus.WithError(err).Debug("Schedule failed verification")
		return nil, fmt.Errorf("rodeo: %w", err)
	}

	rodeo := &Rodeo{
		Name:           name,
		Date:           date,
		Courts:         factory.Courts,
		MatchesPerTeam: feasibility.MatchesPerTeam,
		Teams:          ordered,
		Rounds:         make([]Round, len(turns)),
	}

	for i, turn := range turns {
		rodeo.Rounds[i].Matches = make([]Match, len(turn))
		for court, match := range turn {
			rodeo.Rounds[i].Matches[court] = Match{
				TeamA: int(match.A),
				TeamB: int(match.B),
				Court: court + 1,
			}
		}
	}

	return rodeo, nil
}

// pairings orders the teams and decides who plays who. The returned matches
// use indexes into the returned order.
func pairings(teams []Team, k int) ([]Team, graph.MatchSet) {
	present := presentGenders(teams)

	switch {
	case len(present) == 1:
		ordered := slices.Clone(teams)
		return ordered, graph.BuildMatches(teamIDs(len(ordered)), k)

	case !groupsFeasible(teams, present, k):
		ordered := OrderByGender(teams)
		return ordered, graph.BuildMatches(teamIDs(len(ordered)), k)
	}

	logrus.WithField("matches-per-team", k).Debug("Scheduling every gender separately")

	ordered := make([]Team, 0, len(teams))
	matches := make(graph.MatchSet)

	for _, gender := range present {
		group := TeamsByGender(teams, gender)

		ids := make([]graph.Team, len(group))
		for i := range group {
			ids[i] = graph.Team(len(ordered) + i)
		}
		ordered = append(ordered, group...)

		for match := range graph.BuildMatches(ids, k) {
			matches[match] = struct{}{}
		}
	}

	return ordered, matches
}

func presentGenders(teams []Team) []Gender {
	var present []Gender
	for _, gender := range Genders() {
		if CountGender(teams, gender) > 0 {
			present = append(present, gender)
		}
	}

	return present
}

// groupsFeasible reports whether the teams of every given gender can play
// k matches among themselves.
func groupsFeasible(teams []Team, genders []Gender, k int) bool {
	for _, gender := range genders {
		if !graph.Feasible(CountGender(teams, gender), k) {
			return false
		}
	}

	return true
}

func teamIDs(n int) []graph.Team {
	ids := make([]graph.Team, n)
	for i := range ids {
		ids[i] = graph.Team(i)
	}

	return ids
}
