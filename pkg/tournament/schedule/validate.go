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

package schedule

import (
	"errors"
	"fmt"
	"slices"

	"laptudirm.com/x/rodeo/pkg/tournament/graph"
)

var (
	ErrTeamPlaysTwice     = errors.New("team plays twice during a turn")
	ErrUnevenDistribution = errors.New("teams play an uneven number of matches")
	ErrTurnCount          = errors.New("wrong number of turns")
	ErrOverCapacity       = errors.New("turn exceeds court capacity")
	ErrDuplicateMatch     = errors.New("match scheduled more than once")
	ErrMatchCount         = errors.New("wrong number of matches")
	ErrTeamMatchCount     = errors.New("team plays the wrong number of matches")
	ErrSelfMatch          = errors.New("team is matched against itself")
)

// Validate checks that no team plays twice during the same turn and that
// every one of the given teams plays the same number of matches over the
// whole schedule. A nil error means the schedule is valid.
func Validate(teams []graph.Team, schedule Schedule) error {
	played := make(map[graph.Team]int, len(teams))
	for _, team := range teams {
		played[team] = 0
	}

	for i, turn := range schedule {
		if err := checkTurn(i, turn); err != nil {
			return err
		}

		for _, match := range turn {
			played[match.A]++
			played[match.B]++
		}
	}

	order := make([]graph.Team, 0, len(played))
	for team := range played {
		order = append(order, team)
	}
	slices.Sort(order)

	for _, team := range order {
		if played[team] != played[order[0]] {
			return fmt.Errorf("team %d plays %d matches, team %d plays %d: %w",
				team, played[team], order[0], played[order[0]], ErrUnevenDistribution)
		}
	}

	return nil
}

func checkTurn(i int, turn Turn) error {
	teams := make(map[graph.Team]struct{}, turn.Teams())
	for _, match := range turn {
		if match.A == match.B {
			return fmt.Errorf("turn %d %v: team %d: %w", i+1, turn, match.A, ErrSelfMatch)
		}

		for _, team := range [2]graph.Team{match.A, match.B} {
			if _, found := teams[team]; found {
				return fmt.Errorf("turn %d %v: team %d: %w", i+1, turn, team, ErrTeamPlaysTwice)
			}
			teams[team] = struct{}{}
		}
	}

	return nil
}

// Expectation describes the schedule a tournament asked for.
type Expectation struct {
	Teams          []graph.Team
	Turns          int
	Capacity       int
	Matches        int
	MatchesPerTeam int
}

// Verify runs the checks of Validate along with stricter ones: the number of
// turns, the capacity of every turn, that no match is scheduled twice, and
// that every team plays exactly the expected number of matches.
func Verify(schedule Schedule, expect Expectation) error {
	if len(schedule) != expect.Turns {
		return fmt.Errorf("expected %d turns, got %d: %w", expect.Turns, len(schedule), ErrTurnCount)
	}

	seen := make(graph.MatchSet, schedule.Matches())
	for i, turn := range schedule {
		if len(turn) > expect.Capacity {
			return fmt.Errorf("turn %d has %d matches, at most %d allowed: %w",
				i+1, len(turn), expect.Capacity, ErrOverCapacity)
		}

		for _, match := range turn {
			if seen.Contains(match.A, match.B) {
				return fmt.Errorf("match %s again in turn %d: %w", match, i+1, ErrDuplicateMatch)
			}
			seen.Add(match.A, match.B)
		}
	}

	if total := schedule.Matches(); total != expect.Matches {
		return fmt.Errorf("scheduled %d matches, expected %d: %w", total, expect.Matches, ErrMatchCount)
	}

	if err := Validate(expect.Teams, schedule); err != nil {
		return err
	}

	played := make(map[graph.Team]int, len(expect.Teams))
	for _, turn := range schedule {
		for _, match := range turn {
			played[match.A]++
			played[match.B]++
		}
	}

	for _, team := range expect.Teams {
		if played[team] != expect.MatchesPerTeam {
			return fmt.Errorf("team %d plays %d matches, expected %d: %w",
				team, played[team], expect.MatchesPerTeam, ErrTeamMatchCount)
		}
	}

	return nil
}
