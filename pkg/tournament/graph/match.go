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

// Package graph contains the match graph of a tournament: which team still
// has to play which opponent. It also contains the circulant construction
// used to decide those pairings in the first place.
package graph

import (
	"fmt"
	"slices"
)

// Team identifies a team inside a single tournament run.
type Team int

// Match is an unordered pair of two distinct teams. A Match is always kept in
// its canonical form, with A < B, so that two matches between the same teams
// compare equal regardless of which side they were created from.
type Match struct {
	A, B Team
}

// NewMatch returns the canonical match between the two given teams.
func NewMatch(a, b Team) Match {
	if a > b {
		a, b = b, a
	}

	return Match{A: a, B: b}
}

// Has reports whether the given team plays in the match.
func (match Match) Has(team Team) bool {
	return match.A == team || match.B == team
}

// Opponent returns the team playing against the given one.
func (match Match) Opponent(team Team) Team {
	if match.A == team {
		return match.B
	}

	return match.A
}

func (match Match) String() string {
	return fmt.Sprintf("%d-%d", match.A, match.B)
}

// MatchSet is a set of matches. Duplicate pairings collapse into one entry.
type MatchSet map[Match]struct{}

// Add inserts the match between a and b into the set.
func (set MatchSet) Add(a, b Team) {
	set[NewMatch(a, b)] = struct{}{}
}

// Contains reports whether the set contains a match between a and b.
func (set MatchSet) Contains(a, b Team) bool {
	_, found := set[NewMatch(a, b)]
	return found
}

// Sorted returns the matches of the set ordered by their first and then
// their second team.
func (set MatchSet) Sorted() []Match {
	matches := make([]Match, 0, len(set))
	for match := range set {
		matches = append(matches, match)
	}

	slices.SortFunc(matches, Compare)
	return matches
}

// Compare orders matches by their first and then their second team.
func Compare(a, b Match) int {
	if a.A != b.A {
		return int(a.A - b.A)
	}

	return int(a.B - b.B)
}
