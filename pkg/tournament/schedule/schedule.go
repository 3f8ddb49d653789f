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

// Package schedule splits the matches of a match graph into turns, sets of
// matches which are played at the same time on different courts.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"math"

	"laptudirm.com/x/rodeo/pkg/tournament/graph"
)

var (
	// ErrStalled is returned by the greedy scheduler when a pass over the
	// teams cannot place any further match in the current turn.
	ErrStalled = errors.New("schedule: greedy pass made no progress")

	// ErrUnsolvable is returned by the backtracking scheduler when the
	// remaining matches cannot be split into the requested turns.
	ErrUnsolvable = errors.New("schedule: no valid assignment of matches to turns")

	// ErrSearchLimit is returned when the backtracking search exceeds its
	// step budget before finding an assignment.
	ErrSearchLimit = errors.New("schedule: search step limit exceeded")

	// ErrUnknownScheduler is returned by New for names it does not know.
	ErrUnknownScheduler = errors.New("schedule: unknown scheduler")

	// ErrBadParameters is returned for a non-positive capacity or turn count.
	ErrBadParameters = errors.New("schedule: capacity and turns must be positive")
)

// Turn is a list of matches played at the same time. No team plays in more
// than one match of a turn.
type Turn []graph.Match

// Teams returns the number of teams playing in the turn.
func (turn Turn) Teams() int {
	return 2 * len(turn)
}

// Schedule is the ordered list of turns of a tournament.
type Schedule []Turn

// Matches returns the total number of matches in the schedule.
func (schedule Schedule) Matches() int {
	total := 0
	for _, turn := range schedule {
		total += len(turn)
	}

	return total
}

// Scheduler consumes the matches of a graph into turns of at most capacity
// matches each. Scheduled matches are removed from the graph.
type Scheduler interface {
	Schedule(ctx context.Context, g *graph.Graph, capacity, turns int) (Schedule, error)
}

// New returns the scheduler with the given name.
func New(name string) (Scheduler, error) {
	switch name {
	case "auto", "":
		return &Auto{}, nil
	case "greedy":
		return &Greedy{}, nil
	case "backtracking":
		return &Backtracking{}, nil
	default:
		return nil, fmt.Errorf("new scheduler %q: %w", name, ErrUnknownScheduler)
	}
}

// Names lists the schedulers known by New.
func Names() []string {
	return []string{"auto", "greedy", "backtracking"}
}

// Capacity returns the maximum number of matches of a single turn for the
// given average number of matches per turn. Averages which are not whole
// are rounded up so that no court is left unused.
func Capacity(matchesPerTurn float64) int {
	return int(math.Ceil(matchesPerTurn))
}

func checkParameters(capacity, turns int) error {
	if capacity < 1 || turns < 1 {
		return fmt.Errorf("capacity %d, turns %d: %w", capacity, turns, ErrBadParameters)
	}

	return nil
}

// drain removes every match of the schedule from the graph.
func drain(g *graph.Graph, schedule Schedule) {
	for _, turn := range schedule {
		for _, match := range turn {
			g.Remove(match)
		}
	}
}
