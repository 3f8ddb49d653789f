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

import "github.com/sirupsen/logrus"

// Feasible reports whether a k-regular graph can be built on n teams, i.e.
// whether every one of n teams can play exactly k distinct opponents.
func Feasible(n, k int) bool {
	return k >= 1 && n > k && (n*k)%2 == 0
}

// BuildMatches arranges the given teams on a ring, in the given order, and
// matches every team against its k nearest neighbours on that ring. Every
// team ends up in exactly k matches.
//
// An empty set is returned if no such graph exists for len(teams) and k, or
// if the same team is listed twice. Callers must treat an empty set as a
// failure and not as "no matches needed".
func BuildMatches(teams []Team, k int) MatchSet {
	n := len(teams)

	if !Feasible(n, k) || !distinct(teams) {
		logrus.WithFields(logrus.Fields{
			"teams":  n,
			"degree": k,
		}).Debug("Match graph is infeasible")
		return make(MatchSet)
	}

	if k%2 == 0 {
		return ringNeighbours(teams, k)
	}

	return withAntipodes(teams, k)
}

// ringNeighbours matches every team with the k/2 teams before it and the k/2
// teams after it on the ring.
func ringNeighbours(teams []Team, k int) MatchSet {
	n := len(teams)
	matches := make(MatchSet, n*k/2)

	for i := 0; i < n; i++ {
		for step := 1; step <= k/2; step++ {
			before := ((i-step)%n + n) % n
			after := (i + step) % n

			matches.Add(teams[before], teams[i])
			matches.Add(teams[after], teams[i])
		}
	}

	return matches
}

// withAntipodes builds the (k-1)-regular ring graph and then matches every
// team with the team diametrically opposite to it, which raises the degree
// of every team by exactly one. This needs an even number of teams, which is
// implied by n*k being even for an odd k.
func withAntipodes(teams []Team, k int) MatchSet {
	n := len(teams)
	if n%2 != 0 {
		// no exact antipode on an odd ring
		return make(MatchSet)
	}

	matches := ringNeighbours(teams, k-1)
	for i := 0; i < n/2; i++ {
		matches.Add(teams[i], teams[i+n/2])
	}

	return matches
}

func distinct(teams []Team) bool {
	seen := make(map[Team]struct{}, len(teams))
	for _, team := range teams {
		if _, found := seen[team]; found {
			return false
		}
		seen[team] = struct{}{}
	}

	return true
}
