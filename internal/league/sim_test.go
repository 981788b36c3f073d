package league

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimulateGame(t *testing.T) {
	r := NewRand(31)
	l := NewLeague(r, "Sim", 2026)

	g := l.Season.Games[0]
	home, away := l.Team(g.HomeID), l.Team(g.AwayID)
	SimulateGame(l, r, g)

	require.True(t, g.Played)
	require.GreaterOrEqual(t, g.HomeScore, 40)
	require.GreaterOrEqual(t, g.AwayScore, 40)
	require.NotEqual(t, g.HomeScore, g.AwayScore, "games never end tied")
	require.Equal(t, 1, home.Wins+home.Losses)
	require.Equal(t, 1, away.Wins+away.Losses)
}

func TestSimulateGameIdempotent(t *testing.T) {
	r := NewRand(32)
	l := NewLeague(r, "Sim", 2026)

	g := l.Season.Games[0]
	SimulateGame(l, r, g)
	home, away := l.Team(g.HomeID), l.Team(g.AwayID)
	hs, as := g.HomeScore, g.AwayScore
	hw, hl, aw, al := home.Wins, home.Losses, away.Wins, away.Losses

	SimulateGame(l, r, g)

	require.Equal(t, hs, g.HomeScore)
	require.Equal(t, as, g.AwayScore)
	require.Equal(t, hw, home.Wins)
	require.Equal(t, hl, home.Losses)
	require.Equal(t, aw, away.Wins)
	require.Equal(t, al, away.Losses)
}

func TestTieBreakNeverDropsBelowFloor(t *testing.T) {
	// Two hopeless offenses floor both scores at 40 every game, forcing the
	// tie-break on each simulation. The nudge must stay at or above 40.
	r := NewRand(37)
	teams := []*Team{
		{ID: "a", Name: "A", Conference: "East", RatingOff: 0, RatingDef: 100, Pace: 60},
		{ID: "b", Name: "B", Conference: "East", RatingOff: 0, RatingDef: 100, Pace: 60},
	}
	l := &League{ID: "floor", Teams: teams, Season: &Season{Year: 2026}}

	for i := 0; i < 200; i++ {
		g := &Game{ID: "g", Day: 1, HomeID: "a", AwayID: "b"}
		SimulateGame(l, r, g)
		require.GreaterOrEqual(t, g.HomeScore, 40)
		require.GreaterOrEqual(t, g.AwayScore, 40)
		require.NotEqual(t, g.HomeScore, g.AwayScore)

		as, bs, _ := simNeutral(r, teams[0], teams[1])
		require.GreaterOrEqual(t, as, 40)
		require.GreaterOrEqual(t, bs, 40)
		require.NotEqual(t, as, bs)
	}
}

func TestAdvanceToDayOne(t *testing.T) {
	r := NewRand(33)
	l := NewLeague(r, "Sim", 2026)

	AdvanceToDay(l, r, 1)

	for _, g := range l.Season.Games {
		if g.Day == 1 {
			require.True(t, g.Played, "day-1 game left unplayed")
		} else {
			require.False(t, g.Played, "future game played early")
		}
	}
	require.Equal(t, 1, l.CurrentDay)
	require.Nil(t, l.Season.Bracket, "bracket before the season is done")
}

func TestAdvanceToDayNeverLowersCurrentDay(t *testing.T) {
	r := NewRand(34)
	l := NewLeague(r, "Sim", 2026)

	AdvanceToDay(l, r, 5)
	require.Equal(t, 5, l.CurrentDay)
	AdvanceToDay(l, r, 3)
	require.Equal(t, 5, l.CurrentDay)
}

func TestSimulateFullSeason(t *testing.T) {
	r := NewRand(35)
	l := NewLeague(r, "Sim", 2026)

	SimulateFullSeason(l, r)

	played := 0
	for _, g := range l.Season.Games {
		require.True(t, g.Played)
		require.GreaterOrEqual(t, g.HomeScore, 40)
		require.GreaterOrEqual(t, g.AwayScore, 40)
		require.NotEqual(t, g.HomeScore, g.AwayScore)
		played++
	}

	// Regular-season wins and losses balance; tournament games are neutral
	// exhibitions that do not touch the counters.
	var wins, losses, confWins, confLosses int
	for _, team := range l.Teams {
		wins += team.Wins
		losses += team.Losses
		confWins += team.ConfWins
		confLosses += team.ConfLosses
	}
	require.Equal(t, played, wins)
	require.Equal(t, played, losses)
	require.Equal(t, confWins, confLosses)

	require.NotNil(t, l.Season.Bracket)
	require.True(t, l.Season.Bracket.Complete)
	require.NotEmpty(t, l.Season.Champion)
}

func TestWinCountersMatchPlayedGames(t *testing.T) {
	r := NewRand(36)
	l := NewLeague(r, "Sim", 2026)
	SimulateFullSeason(l, r)

	wins := make(map[string]int)
	losses := make(map[string]int)
	for _, g := range l.Season.Games {
		winner, loser := g.HomeID, g.AwayID
		if g.AwayScore > g.HomeScore {
			winner, loser = loser, winner
		}
		wins[winner]++
		losses[loser]++
	}
	for _, team := range l.Teams {
		require.Equalf(t, wins[team.ID], team.Wins, "wins for %s", team.Name)
		require.Equalf(t, losses[team.ID], team.Losses, "losses for %s", team.Name)
	}
}
