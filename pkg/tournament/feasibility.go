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
	"math"

	"github.com/sirupsen/logrus"
)

// Feasibility describes how a tournament with a given number of teams,
// rounds, and courts can be played. The zero value means that no schedule
// exists for that configuration.
type Feasibility struct {
	TotalMatches   int     `yaml:"total-matches" json:"totalMatches"`
	MatchesPerTurn float64 `yaml:"matches-per-turn" json:"matchesPerTurn"`
	MatchesPerTeam int     `yaml:"matches-per-team" json:"matchesPerTeam"`

	Rounds int `yaml:"rounds" json:"rounds"`
}

// ComputeFeasibility finds the largest number of matches k every team can
// play in the given number of rounds, such that:
//
//   - teams*k is even, so that every team has an opponent,
//   - k is less than the number of teams, so that every opponent is distinct,
//   - the matches spread evenly over the rounds fit on the available courts.
//
// If no such k exists, or the input is out of range, the zero Feasibility is
// returned. This is not an error: it means there is no valid schedule for
// the configuration.
func ComputeFeasibility(teams, rounds, courts int) Feasibility {
	if teams < 2 || rounds < 1 || courts < 1 {
		return Feasibility{}
	}

	// distinct opponents, and teams*k must not overflow
	k := min(rounds, teams-1, math.MaxInt/teams)

	// teams*k/2 <= courts*rounds
	k = min(k, fittingMatchesPerTeam(teams, slots(rounds, courts)))

	// teams*k must be even
	if teams%2 != 0 && k%2 != 0 {
		k--
	}

	if k < 1 {
		return Feasibility{}
	}

	total := teams * k / 2

	logrus.WithFields(logrus.Fields{
		"teams":  teams,
		"rounds": rounds,
		"courts": courts,
		"k":      k,
	}).Debug("Found feasible matches per team")

	return Feasibility{
		TotalMatches:   total,
		MatchesPerTurn: float64(total) / float64(rounds),
		MatchesPerTeam: k,
		Rounds:         rounds,
	}
}

// slots returns courts*rounds, saturating at math.MaxInt.
func slots(rounds, courts int) int {
	if courts > math.MaxInt/rounds {
		return math.MaxInt
	}

	return courts * rounds
}

// fittingMatchesPerTeam returns the largest k with teams*k <= 2*slots.
func fittingMatchesPerTeam(teams, slots int) int {
	q, r := slots/teams, slots%teams

	k := 2 * q
	if r >= teams-r {
		k++
	}

	return k
}

// Feasible reports whether a schedule exists.
func (feasibility Feasibility) Feasible() bool {
	return feasibility.MatchesPerTeam > 0
}

// Capacity returns the most matches a single round may hold, which is the
// average number of matches per round rounded up.
func (feasibility Feasibility) Capacity() int {
	if feasibility.Rounds < 1 {
		return 0
	}

	capacity := feasibility.TotalMatches / feasibility.Rounds
	if feasibility.TotalMatches%feasibility.Rounds != 0 {
		capacity++
	}

	return capacity
}
