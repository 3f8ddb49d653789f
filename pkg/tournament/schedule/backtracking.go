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
	"slices"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rodeo/pkg/tournament/graph"
)

// DefaultMaxSteps is the step budget of a Backtracking scheduler which does
// not set its own.
const DefaultMaxSteps = 2_000_000

// Backtracking places every remaining match of the graph into one of the
// requested turns, undoing earlier choices when a match has nowhere to go.
// The match with the fewest possible turns is always placed first.
//
// Unlike Greedy, a successful Backtracking run always schedules every match.
type Backtracking struct {
	// MaxSteps bounds the number of placements tried. Zero means
	// DefaultMaxSteps.
	MaxSteps int
}

var _ Scheduler = (*Backtracking)(nil)

func (bt *Backtracking) Schedule(ctx context.Context, g *graph.Graph, capacity, turns int) (Schedule, error) {
	if err := checkParameters(capacity, turns); err != nil {
		return nil, err
	}

	// a turn can not hold more matches than there are pairs of teams
	room := min(capacity, g.Len()/2)

	matches := g.Matches()
	if len(matches) > room*turns {
		return nil, fmt.Errorf(
			"backtracking: %d matches do not fit in %d turns of %d: %w",
			len(matches), turns, room, ErrUnsolvable,
		)
	}

	s := search{
		ctx:      ctx,
		matches:  matches,
		placed:   make([]bool, len(matches)),
		turns:    make(Schedule, turns),
		playing:  make([]map[graph.Team]bool, turns),
		capacity: capacity,
		maxSteps: bt.MaxSteps,
	}

	if s.maxSteps <= 0 {
		s.maxSteps = DefaultMaxSteps
	}

	for i := range s.playing {
		s.playing[i] = make(map[graph.Team]bool)
	}

	found, err := s.solve(0)

	logrus.WithFields(logrus.Fields{
		"matches": len(matches),
		"steps":   s.steps,
		"found":   found,
	}).Debug("Backtracking search finished")

	if err != nil {
		return nil, fmt.Errorf("backtracking: %w", err)
	}

	if !found {
		return nil, fmt.Errorf("backtracking: %w", ErrUnsolvable)
	}

	schedule := make(Schedule, turns)
	for i, turn := range s.turns {
		schedule[i] = slices.Clone(turn)
		slices.SortFunc(schedule[i], graph.Compare)
	}

	drain(g, schedule)
	return schedule, nil
}

type search struct {
	ctx context.Context

	matches []graph.Match
	placed  []bool

	turns   Schedule
	playing []map[graph.Team]bool

	capacity int

	steps    int
	maxSteps int
}

func (s *search) fits(match graph.Match, turn int) bool {
	return len(s.turns[turn]) < s.capacity &&
		!s.playing[turn][match.A] && !s.playing[turn][match.B]
}

// options returns the turns the match can be placed in. Empty turns are
// interchangeable, so only the first of them is offered.
func (s *search) options(match graph.Match) []int {
	var options []int
	emptyOffered := false

	for turn := range s.turns {
		if !s.fits(match, turn) {
			continue
		}

		if len(s.turns[turn]) == 0 {
			if emptyOffered {
				continue
			}
			emptyOffered = true
		}

		options = append(options, turn)
	}

	return options
}

func (s *search) solve(placed int) (bool, error) {
	if placed == len(s.matches) {
		return true, nil
	}

	if err := s.ctx.Err(); err != nil {
		return false, err
	}

	s.steps++
	if s.steps > s.maxSteps {
		return false, ErrSearchLimit
	}

	// Pick the most constrained match; fail right away if any match has
	// no turn left to go to.
	next, nextOptions := -1, []int(nil)
	for i, match := range s.matches {
		if s.placed[i] {
			continue
		}

		options := s.options(match)
		if len(options) == 0 {
			return false, nil
		}

		if next == -1 || len(options) < len(nextOptions) {
			next, nextOptions = i, options
			if len(options) == 1 {
				break
			}
		}
	}

	for _, turn := range nextOptions {
		s.place(next, turn)

		found, err := s.solve(placed + 1)
		if found || err != nil {
			return found, err
		}

		s.unplace(next, turn)
	}

	return false, nil
}

func (s *search) place(i, turn int) {
	match := s.matches[i]
	s.placed[i] = true
	s.turns[turn] = append(s.turns[turn], match)
	s.playing[turn][match.A] = true
	s.playing[turn][match.B] = true
}

func (s *search) unplace(i, turn int) {
	match := s.matches[i]
	s.placed[i] = false
	s.turns[turn] = s.turns[turn][:len(s.turns[turn])-1]
	delete(s.playing[turn], match.A)
	delete(s.playing[turn], match.B)
}
