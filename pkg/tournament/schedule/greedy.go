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
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rodeo/pkg/tournament/graph"
)

// Greedy fills turns one at a time. It repeatedly walks over the teams in
// ascending order and pairs every team which is free in the current turn
// with one of its free remaining opponents, preferring the opponent with the
// most matches left and then the smallest one.
//
// A turn is closed once it holds capacity matches or once the graph is
// empty; turns requested after the graph is empty are left empty. Matches
// which do not fit in the requested turns stay in the graph.
type Greedy struct{}

var _ Scheduler = (*Greedy)(nil)

func (*Greedy) Schedule(ctx context.Context, g *graph.Graph, capacity, turns int) (Schedule, error) {
	if err := checkParameters(capacity, turns); err != nil {
		return nil, err
	}

	teams := g.Teams()
	schedule := make(Schedule, 0, turns)

	playing := make(map[graph.Team]bool, len(teams))
	var turn Turn

	closeTurn := func() {
		schedule = append(schedule, turn)
		turn = nil
		clear(playing)
	}

	// Every pass either places a match or fails, so the number of passes is
	// bounded by the number of matches, plus the padding turns.
	maxPasses := g.Size() + turns + 1

	for pass := 0; len(schedule) < turns; pass++ {
		if g.Empty() {
			if len(turn) > 0 {
				closeTurn()
			}

			for len(schedule) < turns {
				schedule = append(schedule, Turn{})
			}
			break
		}

		if err := ctx.Err(); err != nil {
			return schedule, err
		}

		if pass >= maxPasses {
			return schedule, fmt.Errorf("greedy: pass limit %d reached: %w", maxPasses, ErrStalled)
		}

		progress := false
		for _, team := range teams {
			if len(schedule) == turns {
				break
			}

			if !playing[team] {
				if opponent, found := pickOpponent(g, team, playing); found {
					match := graph.NewMatch(team, opponent)

					playing[team] = true
					playing[opponent] = true

					g.Remove(match)
					turn = append(turn, match)
					progress = true
				}
			}

			if len(turn) == capacity || (len(turn) > 0 && g.Empty()) {
				closeTurn()
			}
		}

		logrus.WithFields(logrus.Fields{
			"pass":      pass + 1,
			"turns":     len(schedule),
			"remaining": g.Size(),
		}).Trace("Greedy pass finished")

		if !progress {
			return schedule, fmt.Errorf(
				"greedy: turn %d stuck with %d matches left: %w",
				len(schedule)+1, g.Size(), ErrStalled,
			)
		}
	}

	return schedule, nil
}

// pickOpponent returns the free opponent of team with the most remaining
// matches, ties going to the smallest team.
func pickOpponent(g *graph.Graph, team graph.Team, playing map[graph.Team]bool) (graph.Team, bool) {
	best, bestDegree := graph.Team(0), -1

	for _, opponent := range g.Opponents(team) {
		if playing[opponent] {
			continue
		}

		if degree := g.Degree(opponent); degree > bestDegree {
			best, bestDegree = opponent, degree
		}
	}

	return best, bestDegree >= 0
}
