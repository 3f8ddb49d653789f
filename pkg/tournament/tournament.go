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

// Package tournament makes rodeos: tournaments in which every team plays the
// same number of matches against distinct opponents, with at most one match
// per team in a round and no more matches in a round than there are courts.
//
// The pipeline is ComputeFeasibility, BuildMatches, BuildGraph,
// ScheduleTurns and ValidateSchedule. Factory.MakeRodeo runs all of it for
// a list of named teams.
package tournament

import (
	"context"

	"laptudirm.com/x/rodeo/pkg/tournament/graph"
	"laptudirm.com/x/rodeo/pkg/tournament/schedule"
)

// BuildMatches returns the matches of a k-regular circulant graph on the
// given teams, or an empty set if no such graph exists.
func BuildMatches(teams []graph.Team, matchesPerTeam int) graph.MatchSet {
	return graph.BuildMatches(teams, matchesPerTeam)
}

// BuildGraph returns the graph of the given matches, from which the
// schedulers remove matches as they place them in turns.
func BuildGraph(matches graph.MatchSet) *graph.Graph {
	return graph.New(matches)
}

// ScheduleTurns spreads the matches of g over the given number of turns,
// with at most ceil(matchesPerTurn) matches in a turn. Scheduled matches are
// removed from g.
func ScheduleTurns(ctx context.Context, g *graph.Graph, matchesPerTurn float64, turns int) (schedule.Schedule, error) {
	return (&schedule.Auto{}).Schedule(ctx, g, schedule.Capacity(matchesPerTurn), turns)
}

// ValidateSchedule returns nil if no team plays twice in a turn and every
// team plays the same number of matches, and the reason otherwise.
func ValidateSchedule(teams []graph.Team, turns schedule.Schedule) error {
	return schedule.Validate(teams, turns)
}
