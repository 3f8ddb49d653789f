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
	"fmt"
	"strings"
)

type Gender int

const (
	Male Gender = iota
	Female
	Mixed
)

// Genders returns every gender category in a fixed order.
func Genders() []Gender {
	return []Gender{Male, Female, Mixed}
}

// ParseGender converts a gender name to a Gender. Anything which is not
// recognisably male or female is a mixed team.
func ParseGender(name string) Gender {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "male", "m":
		return Male
	case "female", "f":
		return Female
	default:
		return Mixed
	}
}

func (gender Gender) String() string {
	switch gender {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "mixed"
	}
}

func (gender Gender) MarshalText() ([]byte, error) {
	return []byte(gender.String()), nil
}

func (gender *Gender) UnmarshalText(text []byte) error {
	*gender = ParseGender(string(text))
	return nil
}

// Team is a pair of players playing together.
type Team struct {
	Player1 string `yaml:"player1" json:"player1"`
	Player2 string `yaml:"player2,omitempty" json:"player2,omitempty"`
	Gender  Gender `yaml:"gender" json:"gender"`
}

func (team Team) String() string {
	if team.Player2 == "" {
		return team.Player1
	}

	return team.Player1 + " & " + team.Player2
}

// PlaceholderTeams returns n mixed teams named Team 1 to Team n.
func PlaceholderTeams(n int) []Team {
	teams := make([]Team, max(n, 0))
	for i := range teams {
		teams[i] = Team{
			Player1: fmt.Sprintf("Team %d", i+1),
			Gender:  Mixed,
		}
	}

	return teams
}

// CountGender returns the number of teams of the given gender.
func CountGender(teams []Team, gender Gender) int {
	count := 0
	for _, team := range teams {
		if team.Gender == gender {
			count++
		}
	}

	return count
}

// TeamsByGender returns the teams of the given gender, in their order.
func TeamsByGender(teams []Team, gender Gender) []Team {
	var filtered []Team
	for _, team := range teams {
		if team.Gender == gender {
			filtered = append(filtered, team)
		}
	}

	return filtered
}

// OrderByGender orders teams so that female teams are in the middle,
// surrounded by mixed teams, with male teams at both ends. Since teams are
// matched against their neighbours in this order, this favours teams
// playing against teams of their own gender.
func OrderByGender(teams []Team) []Team {
	var front, middle, back []Team

	middle = TeamsByGender(teams, Female)

	// Alternate between the two sides, inner genders first, so that the
	// ends of the order are the farthest from the middle.
	for _, gender := range []Gender{Mixed, Male} {
		top := true
		for _, team := range TeamsByGender(teams, gender) {
			if top {
				front = append(front, team)
			} else {
				back = append(back, team)
			}
			top = !top
		}
	}

	ordered := make([]Team, 0, len(teams))
	for i := len(front) - 1; i >= 0; i-- {
		ordered = append(ordered, front[i])
	}
	ordered = append(ordered, middle...)
	ordered = append(ordered, back...)

	return ordered
}
