package league

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildScheduleConferenceSlate(t *testing.T) {
	r := NewRand(21)
	teams := GenerateTeams(r)
	games := BuildSchedule(r, teams)

	confGames := make(map[string]int)
	nonConfGames := make(map[string]int)
	for _, g := range games {
		home, away := findTeam(t, teams, g.HomeID), findTeam(t, teams, g.AwayID)
		if g.ConfGame {
			require.Equal(t, home.Conference, away.Conference, "conference game across conferences")
			confGames[g.HomeID]++
			confGames[g.AwayID]++
		} else {
			require.NotEqual(t, home.Conference, away.Conference, "non-conference game within a conference")
			nonConfGames[g.HomeID]++
			nonConfGames[g.AwayID]++
		}
	}

	// 12-team conferences play all of the first 10 round-robin rounds twice.
	for _, team := range teams {
		require.Equalf(t, 20, confGames[team.ID], "conference games for %s", team.Name)
		require.LessOrEqualf(t, nonConfGames[team.ID], 8, "non-conference games for %s", team.Name)
	}
}

func TestBuildScheduleMirroredRounds(t *testing.T) {
	r := NewRand(22)
	teams := GenerateTeams(r)
	games := BuildSchedule(r, teams)

	// Each conference pairing appears exactly twice, once per home court.
	type matchup struct{ home, away string }
	seen := make(map[matchup]int)
	for _, g := range games {
		if g.ConfGame {
			seen[matchup{g.HomeID, g.AwayID}]++
		}
	}
	for m, n := range seen {
		require.Equalf(t, 1, n, "duplicate conference game %v", m)
		require.Equal(t, 1, seen[matchup{m.away, m.home}], "missing mirrored game")
	}
}

func TestBuildScheduleDayOrder(t *testing.T) {
	r := NewRand(23)
	teams := GenerateTeams(r)
	games := BuildSchedule(r, teams)

	for i := 1; i < len(games); i++ {
		require.LessOrEqual(t, games[i-1].Day, games[i].Day, "games out of day order")
	}
	require.GreaterOrEqual(t, games[0].Day, 1)
}

func TestBuildScheduleNoDuplicateNonConferenceMatchups(t *testing.T) {
	r := NewRand(24)
	teams := GenerateTeams(r)
	games := BuildSchedule(r, teams)

	seen := make(map[string]bool)
	for _, g := range games {
		if g.ConfGame {
			continue
		}
		a, b := g.HomeID, g.AwayID
		if a > b {
			a, b = b, a
		}
		key := a + "|" + b
		require.Falsef(t, seen[key], "duplicate non-conference matchup %s", key)
		seen[key] = true
	}
}

func TestRoundRobinOddTeamCount(t *testing.T) {
	r := NewRand(25)
	teams := make([]*Team, 5)
	for i := range teams {
		teams[i] = &Team{ID: fmt.Sprintf("t%d", i), Name: fmt.Sprintf("Team %d", i)}
	}

	rounds := roundRobin(r, teams)
	require.Len(t, rounds, 5) // 5+bye slots rotate through 5 rounds

	for _, round := range rounds {
		require.Len(t, round, 2, "one pairing dropped per round for the bye")
		seen := make(map[string]bool)
		for _, p := range round {
			require.NotNil(t, p.home)
			require.NotNil(t, p.away)
			require.False(t, seen[p.home.ID] || seen[p.away.ID], "team paired twice in one round")
			seen[p.home.ID], seen[p.away.ID] = true, true
		}
	}

	// Every pair of teams meets exactly once across the rounds.
	meets := make(map[string]int)
	for _, round := range rounds {
		for _, p := range round {
			a, b := p.home.ID, p.away.ID
			if a > b {
				a, b = b, a
			}
			meets[a+"|"+b]++
		}
	}
	require.Len(t, meets, 10)
	for pair, n := range meets {
		require.Equalf(t, 1, n, "pair %s", pair)
	}
}

func findTeam(t *testing.T, teams []*Team, id string) *Team {
	t.Helper()
	for _, team := range teams {
		if team.ID == id {
			return team
		}
	}
	t.Fatalf("unknown team id %s", id)
	return nil
}
