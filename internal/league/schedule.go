package league

import (
	"sort"

	"github.com/rs/xid"
)

const (
	maxConferenceRounds = 10
	nonConferenceGames  = 8
	nonConferenceTries  = 200
)

// pairing is one scheduled matchup with home court already assigned.
type pairing struct {
	home, away *Team
}

// roundRobin generates round-robin rounds over teams using the circle
// rotation method. An odd team count gets a synthetic bye slot; pairings that
// touch it are dropped. Home court within each genuine pairing is randomized
// here and not re-randomized when the schedule mirrors the rounds.
func roundRobin(r *Rand, teams []*Team) [][]pairing {
	list := make([]*Team, len(teams))
	copy(list, teams)
	if len(list)%2 == 1 {
		list = append(list, nil) // bye
	}
	n := len(list)

	rounds := make([][]pairing, 0, n-1)
	for i := 0; i < n-1; i++ {
		round := make([]pairing, 0, n/2)
		for j := 0; j < n/2; j++ {
			t1, t2 := list[j], list[n-1-j]
			if t1 == nil || t2 == nil {
				continue
			}
			if r.Coin() {
				round = append(round, pairing{t1, t2})
			} else {
				round = append(round, pairing{t2, t1})
			}
		}
		rounds = append(rounds, round)

		// Rotate all slots but the first.
		last := list[n-1]
		copy(list[2:], list[1:n-1])
		list[1] = last
	}
	return rounds
}

// BuildSchedule produces the full season game set: a double round-robin
// within each conference (at most 10 rounds each way, one day per round),
// followed by up to 8 non-conference games per team on a shared day counter.
// The finished set is ordered by day with intra-day order shuffled once, here,
// and fixed thereafter.
func BuildSchedule(r *Rand, teams []*Team) []*Game {
	var games []*Game
	day := 1

	confs := make(map[string][]*Team)
	var confOrder []string
	for _, t := range teams {
		if _, ok := confs[t.Conference]; !ok {
			confOrder = append(confOrder, t.Conference)
		}
		confs[t.Conference] = append(confs[t.Conference], t)
	}

	for _, conf := range confOrder {
		confTeams := make([]*Team, len(confs[conf]))
		copy(confTeams, confs[conf])
		r.Shuffle(len(confTeams), func(i, j int) {
			confTeams[i], confTeams[j] = confTeams[j], confTeams[i]
		})

		rounds := roundRobin(r, confTeams)
		if len(rounds) > maxConferenceRounds {
			rounds = rounds[:maxConferenceRounds]
		}
		for _, round := range rounds {
			for _, p := range round {
				games = append(games, newGame(day, p.home.ID, p.away.ID, true))
			}
			day++
		}
		// Second pass mirrors the same rounds with home court reversed.
		for _, round := range rounds {
			for _, p := range round {
				games = append(games, newGame(day, p.away.ID, p.home.ID, true))
			}
			day++
		}
	}

	// Non-conference slates. The count tracks both sides of every matchup so
	// no team ends up with more than 8 non-conference games, no matter who
	// initiated the pairing.
	nonConf := make(map[string]int)
	for _, team := range teams {
		added, tries := 0, 0
		for nonConf[team.ID] < nonConferenceGames && tries < nonConferenceTries {
			tries++
			opp := Choice(r, teams)
			if opp.ID == team.ID || opp.Conference == team.Conference {
				continue
			}
			if nonConf[opp.ID] >= nonConferenceGames {
				continue
			}
			if haveMatchup(games, team.ID, opp.ID) {
				continue
			}
			home, away := team.ID, opp.ID
			if r.Coin() {
				home, away = away, home
			}
			games = append(games, newGame(day, home, away, false))
			nonConf[team.ID]++
			nonConf[opp.ID]++
			added++
			if added%2 == 0 {
				day++
			}
		}
		// A team that runs out of draws keeps a short slate; this is a soft
		// shortfall and is not reported.
	}

	// Shuffle once, then a stable sort by day keeps the random intra-day
	// order fixed for the life of the season.
	r.Shuffle(len(games), func(i, j int) { games[i], games[j] = games[j], games[i] })
	sort.SliceStable(games, func(i, j int) bool { return games[i].Day < games[j].Day })
	return games
}

func newGame(day int, homeID, awayID string, confGame bool) *Game {
	return &Game{
		ID:       xid.New().String(),
		Day:      day,
		HomeID:   homeID,
		AwayID:   awayID,
		ConfGame: confGame,
	}
}

func haveMatchup(games []*Game, a, b string) bool {
	for _, g := range games {
		if (g.HomeID == a && g.AwayID == b) || (g.HomeID == b && g.AwayID == a) {
			return true
		}
	}
	return false
}
