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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	roundStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	restStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

// Report writes a human readable rendition of the rodeo to w, one table
// of matches per round followed by the teams resting during it.
func (rodeo *Rodeo) Report(w io.Writer) error {
	var b strings.Builder

	title := rodeo.Name
	if title == "" {
		title = "Rodeo"
	}

	if !rodeo.Date.IsZero() {
		title += " (" + rodeo.Date.Format("Mon, 02 Jan 2006") + ")"
	}

	fmt.Fprintln(&b, titleStyle.Render(title))
	fmt.Fprintf(&b, "%d teams, %d matches each, %d courts\n",
		len(rodeo.Teams), rodeo.MatchesPerTeam, rodeo.Courts)

	for i, round := range rodeo.Rounds {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, roundStyle.Render(fmt.Sprintf("Round #%d", i+1)))

		if len(round.Matches) > 0 {
			fmt.Fprintln(&b, rodeo.roundTable(round))
		}

		if resting := rodeo.Resting(i); len(resting) > 0 {
			names := make([]string, len(resting))
			for j, team := range resting {
				names[j] = team.String()
			}

			fmt.Fprintln(&b, restStyle.Render("Resting: "+strings.Join(names, ", ")))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteCSV writes the matches of the rodeo to w as CSV, one record per
// match after a header record.
func (rodeo *Rodeo) WriteCSV(w io.Writer) error {
	records := csv.NewWriter(w)
	if err := records.Write([]string{"round", "court", "team a", "team b"}); err != nil {
		return err
	}

	for i, round := range rodeo.Rounds {
		for _, match := range round.Matches {
			err := records.Write([]string{
				strconv.Itoa(i + 1),
				strconv.Itoa(match.Court),
				rodeo.teamName(match.TeamA),
				rodeo.teamName(match.TeamB),
			})
			if err != nil {
				return err
			}
		}
	}

	records.Flush()
	return records.Error()
}

func (rodeo *Rodeo) roundTable(round Round) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Court", "Team A", "Team B").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, match := range round.Matches {
		t.Row(
			strconv.Itoa(match.Court),
			rodeo.teamName(match.TeamA),
			rodeo.teamName(match.TeamB),
		)
	}

	return t.String()
}

func (rodeo *Rodeo) teamName(index int) string {
	if index < 0 || index >= len(rodeo.Teams) {
		return fmt.Sprintf("Team #%d", index+1)
	}

	return rodeo.Teams[index].String()
}
