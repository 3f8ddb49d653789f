package tournament_test

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/rodeo/pkg/tournament"
	"laptudirm.com/x/rodeo/pkg/tournament/graph"
	"laptudirm.com/x/rodeo/pkg/tournament/schedule"
)

func TestComputeFeasibility(t *testing.T) {
	tests := []struct {
		name                  string
		teams, rounds, courts int
		want                  tournament.Feasibility
	}{
		{"five teams", 5, 5, 3, tournament.Feasibility{TotalMatches: 10, MatchesPerTurn: 2, MatchesPerTeam: 4, Rounds: 5}},
		{"fractional turns", 17, 4, 5, tournament.Feasibility{TotalMatches: 17, MatchesPerTurn: 4.25, MatchesPerTeam: 2, Rounds: 4}},
		{"court bound", 8, 3, 4, tournament.Feasibility{TotalMatches: 12, MatchesPerTurn: 4, MatchesPerTeam: 3, Rounds: 3}},
		{"fewer opponents than rounds", 4, 6, 10, tournament.Feasibility{TotalMatches: 6, MatchesPerTurn: 1, MatchesPerTeam: 3, Rounds: 6}},
		{"odd parity", 3, 1, 1, tournament.Feasibility{}},
		{"one team", 1, 3, 3, tournament.Feasibility{}},
		{"no rounds", 4, 0, 3, tournament.Feasibility{}},
		{"no courts", 4, 3, 0, tournament.Feasibility{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := tournament.ComputeFeasibility(test.teams, test.rounds, test.courts)
			require.Equal(t, test.want, got)
			require.Equal(t, test.want.MatchesPerTeam > 0, got.Feasible())
		})
	}
}

func TestComputeFeasibilityLargeInputs(t *testing.T) {
	done := make(chan tournament.Feasibility, 1)
	go func() { done <- tournament.ComputeFeasibility(4, math.MaxInt, 1) }()

	select {
	case got := <-done:
		require.Equal(t, 3, got.MatchesPerTeam)
		require.Equal(t, 6, got.TotalMatches)
		require.Equal(t, math.MaxInt, got.Rounds)
		require.Equal(t, 1, got.Capacity())
	case <-time.After(time.Second):
		t.Fatal("ComputeFeasibility did not return")
	}

	// more courts never make a configuration infeasible
	want := tournament.ComputeFeasibility(10, 4, 10)
	require.Equal(t, tournament.Feasibility{TotalMatches: 20, MatchesPerTurn: 5, MatchesPerTeam: 4, Rounds: 4}, want)
	require.Equal(t, want, tournament.ComputeFeasibility(10, 4, 1<<62))
	require.Equal(t, want, tournament.ComputeFeasibility(10, 4, math.MaxInt))

	// teams*k would overflow
	got := tournament.ComputeFeasibility(math.MaxInt-1, math.MaxInt, math.MaxInt)
	require.Equal(t, 1, got.MatchesPerTeam)
	require.Equal(t, (math.MaxInt-1)/2, got.TotalMatches)

	require.False(t, tournament.ComputeFeasibility(math.MaxInt, math.MaxInt, math.MaxInt).Feasible())
}

// scanFeasibility tries every matches per team from rounds down.
func scanFeasibility(teams, rounds, courts int) int {
	for k := rounds; k > 0; k-- {
		if teams*k%2 == 0 && teams > k && teams*k/2 <= courts*rounds {
			return k
		}
	}

	return 0
}

func TestComputeFeasibilityMatchesScan(t *testing.T) {
	for teams := 2; teams <= 40; teams++ {
		for rounds := 1; rounds <= 40; rounds++ {
			for courts := 1; courts <= 20; courts++ {
				got := tournament.ComputeFeasibility(teams, rounds, courts)
				require.Equal(t, scanFeasibility(teams, rounds, courts), got.MatchesPerTeam,
					"%d teams, %d rounds, %d courts", teams, rounds, courts)
			}
		}
	}
}

func TestFeasibilityCapacity(t *testing.T) {
	require.Equal(t, 2, tournament.ComputeFeasibility(5, 5, 3).Capacity())
	require.Equal(t, 5, tournament.ComputeFeasibility(17, 4, 5).Capacity())
	require.Equal(t, 0, tournament.Feasibility{}.Capacity())
}

func TestPipeline(t *testing.T) {
	teams := []graph.Team{0, 1, 2, 3, 4}

	feasibility := tournament.ComputeFeasibility(len(teams), 5, 3)
	matches := tournament.BuildMatches(teams, feasibility.MatchesPerTeam)
	require.Len(t, matches, 10)

	g := tournament.BuildGraph(matches)
	turns, err := tournament.ScheduleTurns(context.Background(), g, feasibility.MatchesPerTurn, feasibility.Rounds)
	require.NoError(t, err)
	require.True(t, g.Empty())
	require.Len(t, turns, 5)
	require.Equal(t, 10, turns.Matches())
	require.NoError(t, tournament.ValidateSchedule(teams, turns))

	require.Empty(t, tournament.BuildMatches(teams, 3))
}

func TestValidateScheduleDiagnostics(t *testing.T) {
	teams := []graph.Team{0, 1, 2, 3}

	twice := schedule.Schedule{{graph.NewMatch(0, 1), graph.NewMatch(1, 2)}}
	require.ErrorIs(t, tournament.ValidateSchedule(teams, twice), schedule.ErrTeamPlaysTwice)

	uneven := schedule.Schedule{{graph.NewMatch(0, 1), graph.NewMatch(2, 3)}, {graph.NewMatch(0, 2)}}
	require.ErrorIs(t, tournament.ValidateSchedule(teams, uneven), schedule.ErrUnevenDistribution)
}

func TestOrderByGender(t *testing.T) {
	team := func(name string, gender tournament.Gender) tournament.Team {
		return tournament.Team{Player1: name, Gender: gender}
	}

	m1, m2, m3 := team("m1", tournament.Male), team("m2", tournament.Male), team("m3", tournament.Male)
	f1, f2 := team("f1", tournament.Female), team("f2", tournament.Female)
	x1, x2 := team("x1", tournament.Mixed), team("x2", tournament.Mixed)

	ordered := tournament.OrderByGender([]tournament.Team{m1, f1, x1, m2, x2, f2, m3})
	require.Equal(t, []tournament.Team{m3, m1, x1, f1, f2, x2, m2}, ordered)
}

func TestParseGender(t *testing.T) {
	require.Equal(t, tournament.Male, tournament.ParseGender("M"))
	require.Equal(t, tournament.Female, tournament.ParseGender(" female "))
	require.Equal(t, tournament.Mixed, tournament.ParseGender("mixed"))
	require.Equal(t, tournament.Mixed, tournament.ParseGender(""))
}

func requireRodeo(t *testing.T, rodeo *tournament.Rodeo, rounds, courts, k int) {
	t.Helper()

	require.Len(t, rodeo.Rounds, rounds)
	require.Equal(t, k, rodeo.MatchesPerTeam)
	require.NoError(t, rodeo.Validate())

	played := make([]int, len(rodeo.Teams))
	for _, round := range rodeo.Rounds {
		require.LessOrEqual(t, len(round.Matches), courts)
		for i, match := range round.Matches {
			require.Equal(t, i+1, match.Court)
			played[match.TeamA]++
			played[match.TeamB]++
		}
	}

	for i, n := range played {
		require.Equal(t, k, n, "team %s", rodeo.Teams[i])
	}
}

func TestMakeRodeo(t *testing.T) {
	factory := tournament.Factory{Rounds: 5, Courts: 3, Scheduler: "auto", Timeout: 10 * time.Second}
	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	rodeo, err := factory.MakeRodeo(context.Background(), "Friday", date, tournament.PlaceholderTeams(5))
	require.NoError(t, err)
	require.Equal(t, "Friday", rodeo.Name)
	require.Equal(t, date, rodeo.Date)
	require.Equal(t, 3, rodeo.Courts)
	requireRodeo(t, rodeo, 5, 2, 4)
}

func TestMakeRodeoSplitsGenders(t *testing.T) {
	var teams []tournament.Team
	for i := 0; i < 4; i++ {
		teams = append(teams,
			tournament.Team{Player1: "Female " + string(rune('A'+i)), Gender: tournament.Female},
			tournament.Team{Player1: "Male " + string(rune('A'+i)), Gender: tournament.Male},
		)
	}

	factory := tournament.Factory{Rounds: 3, Courts: 4, Scheduler: "greedy"}
	rodeo, err := factory.MakeRodeo(context.Background(), "Split", time.Time{}, teams)
	require.NoError(t, err)
	requireRodeo(t, rodeo, 3, 4, 3)

	for _, round := range rodeo.Rounds {
		for _, match := range round.Matches {
			require.Equal(t, rodeo.Teams[match.TeamA].Gender, rodeo.Teams[match.TeamB].Gender)
		}
	}
}

func TestMakeRodeoOrdersGenders(t *testing.T) {
	teams := []tournament.Team{
		{Player1: "m1", Gender: tournament.Male},
		{Player1: "m2", Gender: tournament.Male},
		{Player1: "m3", Gender: tournament.Male},
		{Player1: "f1", Gender: tournament.Female},
		{Player1: "f2", Gender: tournament.Female},
		{Player1: "f3", Gender: tournament.Female},
	}

	// three teams of a gender cannot play three matches among themselves
	factory := tournament.Factory{Rounds: 3, Courts: 3}
	rodeo, err := factory.MakeRodeo(context.Background(), "", time.Time{}, teams)
	require.NoError(t, err)
	requireRodeo(t, rodeo, 3, 3, 3)
	require.Equal(t, tournament.OrderByGender(teams), rodeo.Teams)
}

func TestMakeRodeoErrors(t *testing.T) {
	ctx := context.Background()

	factory := tournament.Factory{Rounds: 3, Courts: 2}
	_, err := factory.MakeRodeo(ctx, "", time.Time{}, tournament.PlaceholderTeams(1))
	require.ErrorIs(t, err, tournament.ErrTooFewTeams)

	factory = tournament.Factory{Rounds: 0, Courts: 2}
	_, err = factory.MakeRodeo(ctx, "", time.Time{}, tournament.PlaceholderTeams(4))
	require.ErrorIs(t, err, tournament.ErrBadParameters)

	factory = tournament.Factory{Rounds: 1, Courts: 1}
	_, err = factory.MakeRodeo(ctx, "", time.Time{}, tournament.PlaceholderTeams(3))
	require.ErrorIs(t, err, tournament.ErrInfeasible)

	factory = tournament.Factory{Rounds: math.MaxInt, Courts: 1}
	_, err = factory.MakeRodeo(ctx, "", time.Time{}, tournament.PlaceholderTeams(4))
	require.ErrorIs(t, err, tournament.ErrBadParameters)

	factory = tournament.Factory{Rounds: 3, Courts: 2}
	_, err = factory.MakeRodeo(ctx, "", time.Time{}, tournament.PlaceholderTeams(tournament.MaxTeams+1))
	require.ErrorIs(t, err, tournament.ErrTooManyTeams)

	// 9 teams form at most 4 pairs per round, short of the 36 matches
	factory = tournament.Factory{Rounds: 8, Courts: 5, Timeout: 10 * time.Second}
	_, err = factory.MakeRodeo(ctx, "", time.Time{}, tournament.PlaceholderTeams(9))
	require.ErrorIs(t, err, schedule.ErrUnsolvable)

	factory = tournament.Factory{Rounds: 3, Courts: 2, Scheduler: "swiss"}
	_, err = factory.MakeRodeo(ctx, "", time.Time{}, tournament.PlaceholderTeams(4))
	require.ErrorIs(t, err, schedule.ErrUnknownScheduler)
}

func TestRodeoValidateCatchesTampering(t *testing.T) {
	factory := tournament.Factory{Rounds: 5, Courts: 3}
	rodeo, err := factory.MakeRodeo(context.Background(), "", time.Time{}, tournament.PlaceholderTeams(5))
	require.NoError(t, err)

	first := rodeo.Rounds[0].Matches
	require.Len(t, first, 2)
	first[1].TeamA, first[1].TeamB = first[0].TeamA, first[0].TeamB

	require.ErrorIs(t, rodeo.Validate(), schedule.ErrTeamPlaysTwice)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rodeo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: Summer Rodeo
date: 2024-06-01
rounds: 5
courts: 3
timeout: 30s
teams:
  - player1: Ana
    player2: Bea
    gender: female
  - player1: Carl
    player2: Dan
    gender: m
  - player1: Eve
    player2: Fred
  - player1: Gus
    player2: Hal
    gender: male
  - player1: Ida
    player2: Jo
    gender: F
`), 0644))

	config, err := tournament.LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "Summer Rodeo", config.Name)
	require.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), config.Date)
	require.Equal(t, 5, config.Rounds)
	require.Equal(t, 3, config.Courts)
	require.Equal(t, tournament.DefaultScheduler, config.Scheduler)
	require.Equal(t, 30*time.Second, config.Timeout)

	require.Len(t, config.Teams, 5)
	require.Equal(t, "Ana & Bea", config.Teams[0].String())
	require.Equal(t, tournament.Female, config.Teams[0].Gender)
	require.Equal(t, tournament.Male, config.Teams[1].Gender)
	require.Equal(t, tournament.Mixed, config.Teams[2].Gender)

	rodeo, err := config.MakeRodeo(context.Background())
	require.NoError(t, err)
	requireRodeo(t, rodeo, 5, 2, 4)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := tournament.LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rounds: [1, 2"), 0644))
	_, err = tournament.LoadConfig(path)
	require.Error(t, err)
}

func threeTeamRodeo() *tournament.Rodeo {
	return &tournament.Rodeo{
		Name:           "Friday",
		Date:           time.Date(2024, time.June, 7, 0, 0, 0, 0, time.UTC),
		Courts:         1,
		MatchesPerTeam: 2,
		Teams: []tournament.Team{
			{Player1: "Ana", Player2: "Bea"},
			{Player1: "Carl", Player2: "Dan"},
			{Player1: "Eve", Player2: "Fred"},
		},
		Rounds: []tournament.Round{
			{Matches: []tournament.Match{{TeamA: 0, TeamB: 1, Court: 1}}},
			{Matches: []tournament.Match{{TeamA: 1, TeamB: 2, Court: 1}}},
			{Matches: []tournament.Match{{TeamA: 0, TeamB: 2, Court: 1}}},
		},
	}
}

func TestReport(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, threeTeamRodeo().Report(&buffer))

	out := buffer.String()
	require.Contains(t, out, "Friday (Fri, 07 Jun 2024)")
	require.Contains(t, out, "Round #3")
	require.Contains(t, out, "Court")
	require.Contains(t, out, "Ana & Bea")
	require.Contains(t, out, "Resting: Eve & Fred")
	require.Contains(t, out, "Resting: Ana & Bea")
}

func TestResting(t *testing.T) {
	rodeo := threeTeamRodeo()

	require.Equal(t, []tournament.Team{rodeo.Teams[2]}, rodeo.Resting(0))
	require.Equal(t, []tournament.Team{rodeo.Teams[1]}, rodeo.Resting(2))
	require.Nil(t, rodeo.Resting(-1))
	require.Nil(t, rodeo.Resting(3))
}

func TestWriteCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, threeTeamRodeo().WriteCSV(&buffer))

	require.Equal(t, `round,court,team a,team b
1,1,Ana & Bea,Carl & Dan
2,1,Carl & Dan,Eve & Fred
3,1,Ana & Bea,Eve & Fred
`, buffer.String())
}
