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

package graph

import "slices"

// Graph keeps track of the matches which are yet to be played. Teams are
// stored in an arena in ascending order, and the remaining matches in a
// symmetric opponent matrix indexed by arena position.
//
// The only mutation is Remove, which drops a match from both of its teams.
type Graph struct {
	teams []Team
	index map[Team]int

	// opponents[i][j] is set if teams[i] still has to play teams[j].
	opponents [][]bool
	degree    []int

	size int
}

// New creates the match graph of the given matches. Its teams are all the
// teams which appear in at least one of the matches.
func New(matches MatchSet) *Graph {
	seen := make(map[Team]struct{})
	for match := range matches {
		seen[match.A] = struct{}{}
		seen[match.B] = struct{}{}
	}

	teams := make([]Team, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	slices.Sort(teams)

	g := &Graph{
		teams:     teams,
		index:     make(map[Team]int, len(teams)),
		opponents: make([][]bool, len(teams)),
		degree:    make([]int, len(teams)),
	}

	for i, team := range teams {
		g.index[team] = i
		g.opponents[i] = make([]bool, len(teams))
	}

	for match := range matches {
		if match.A == match.B {
			continue
		}

		a, b := g.index[match.A], g.index[match.B]
		g.opponents[a][b] = true
		g.opponents[b][a] = true
		g.degree[a]++
		g.degree[b]++
		g.size++
	}

	return g
}

// Teams returns the teams of the graph in ascending order.
func (g *Graph) Teams() []Team {
	return slices.Clone(g.teams)
}

// Len returns the number of teams in the graph.
func (g *Graph) Len() int {
	return len(g.teams)
}

// Size returns the number of matches which are yet to be played.
func (g *Graph) Size() int {
	return g.size
}

// Empty reports whether every team has played all of its matches.
func (g *Graph) Empty() bool {
	return g.size == 0
}

// Degree returns the number of matches the given team is yet to play.
func (g *Graph) Degree(team Team) int {
	i, found := g.index[team]
	if !found {
		return 0
	}

	return g.degree[i]
}

// Opponents returns the remaining opponents of the given team in ascending
// order.
func (g *Graph) Opponents(team Team) []Team {
	i, found := g.index[team]
	if !found {
		return nil
	}

	opponents := make([]Team, 0, g.degree[i])
	for j, remaining := range g.opponents[i] {
		if remaining {
			opponents = append(opponents, g.teams[j])
		}
	}

	return opponents
}

// Has reports whether the given match is yet to be played.
func (g *Graph) Has(match Match) bool {
	a, foundA := g.index[match.A]
	b, foundB := g.index[match.B]
	return foundA && foundB && g.opponents[a][b]
}

// Remove marks the given match as played, removing it from both teams. It
// reports whether the match was present in the graph.
func (g *Graph) Remove(match Match) bool {
	if !g.Has(match) {
		return false
	}

	a, b := g.index[match.A], g.index[match.B]
	g.opponents[a][b] = false
	g.opponents[b][a] = false
	g.degree[a]--
	g.degree[b]--
	g.size--

	return true
}

// Matches returns the remaining matches ordered by their first and then
// their second team.
func (g *Graph) Matches() []Match {
	matches := make([]Match, 0, g.size)
	for i := range g.teams {
		for j := i + 1; j < len(g.teams); j++ {
			if g.opponents[i][j] {
				matches = append(matches, Match{A: g.teams[i], B: g.teams[j]})
			}
		}
	}

	return matches
}

// Clone returns an independent copy of the graph.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		teams:     slices.Clone(g.teams),
		index:     make(map[Team]int, len(g.index)),
		opponents: make([][]bool, len(g.opponents)),
		degree:    slices.Clone(g.degree),
		size:      g.size,
	}

	for team, i := range g.index {
		clone.index[team] = i
	}

	for i, row := range g.opponents {
		clone.opponents[i] = slices.Clone(row)
	}

	return clone
}
