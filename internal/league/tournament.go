package league

import (
	"fmt"
	"sort"
)

// fieldCap is the largest tournament field; smaller leagues field everyone.
const fieldCap = 64

const byeScore = "—"

// MaybeStartTournament selects the national tournament field and installs the
// first bracket round. It fires exactly once: only when every regular-season
// game has been played and no bracket exists yet.
func MaybeStartTournament(l *League) {
	if l.Season.Bracket != nil {
		return
	}
	if !l.Season.AllPlayed() {
		return
	}

	// One automatic bid per conference: best conference record, tie-broken by
	// overall record, then by summed rating.
	var selected []*Team
	inField := make(map[string]bool)
	for _, conf := range l.Conferences() {
		teams := l.ConferenceTeams(conf)
		sort.SliceStable(teams, func(i, j int) bool {
			a, b := teams[i], teams[j]
			if a.ConfRecord() != b.ConfRecord() {
				return a.ConfRecord() > b.ConfRecord()
			}
			if a.Record() != b.Record() {
				return a.Record() > b.Record()
			}
			return a.RatingOff+a.RatingDef > b.RatingOff+b.RatingDef
		})
		selected = append(selected, teams[0])
		inField[teams[0].ID] = true
	}

	// At-large bids by composite score, ties keeping league order.
	need := min(fieldCap, len(l.Teams)) - len(selected)
	if need < 0 {
		need = 0
	}
	var pool []*Team
	for _, t := range l.Teams {
		if !inField[t.ID] {
			pool = append(pool, t)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].CompositeScore() > pool[j].CompositeScore()
	})
	if need > len(pool) {
		need = len(pool)
	}
	field := append(selected, pool[:need]...)

	// Seed order is the composite score over the whole field, automatic
	// qualifiers included.
	sort.SliceStable(field, func(i, j int) bool {
		return field[i].CompositeScore() > field[j].CompositeScore()
	})

	l.Season.Bracket = newBracket(field)
}

// newBracket pads the seeded field to the next power of two with byes and
// pairs best against worst.
func newBracket(seeds []*Team) *Bracket {
	size := 1
	for size < len(seeds) {
		size *= 2
	}
	ids := make([]string, size)
	for i, t := range seeds {
		ids[i] = t.ID
	}
	pairs := make([]Pairing, 0, size/2)
	for i := 0; i < size/2; i++ {
		pairs = append(pairs, Pairing{Home: ids[i], Away: ids[size-1-i]})
	}
	return &Bracket{Round: 1, Rounds: [][]Pairing{pairs}, Results: [][]RoundResult{}}
}

// simNeutral plays a neutral-court tournament game. No home edge, slightly
// tighter noise than the regular season.
func simNeutral(r *Rand, a, b *Team) (as, bs int, winner *Team) {
	base := float64(a.Pace+b.Pace) / 2
	as = iround(base + float64(a.RatingOff-b.RatingDef) + r.Gaussian(0, neutralNoise))
	bs = iround(base + float64(b.RatingOff-a.RatingDef) + r.Gaussian(0, neutralNoise))
	if as < scoreFloor {
		as = scoreFloor
	}
	if bs < scoreFloor {
		bs = scoreFloor
	}
	if as == bs {
		if r.Coin() || as == scoreFloor {
			as++
		} else {
			as--
		}
	}
	winner = b
	if as > bs {
		winner = a
	}
	return as, bs, winner
}

// SimulateTournament advances the bracket round by round until a champion
// remains. Byes advance without a recorded score. Each next round re-pairs
// the ordered winner list best against worst, mirroring the initial seeding.
func SimulateTournament(l *League, r *Rand) {
	br := l.Season.Bracket
	for !br.Complete {
		current := br.Rounds[br.Round-1]
		results := make([]RoundResult, 0, len(current))
		var next []*Team

		for _, p := range current {
			a, b := l.Team(p.Home), l.Team(p.Away)
			switch {
			case a != nil && b != nil:
				as, bs, winner := simNeutral(r, a, b)
				results = append(results, RoundResult{
					A:      a.Name,
					B:      b.Name,
					Score:  fmt.Sprintf("%d-%d", as, bs),
					Winner: winner.Name,
				})
				next = append(next, winner)
			default:
				w := a
				if w == nil {
					w = b
				}
				res := RoundResult{A: "BYE", B: "BYE", Score: byeScore, Winner: "BYE"}
				if a != nil {
					res.A = a.Name
				}
				if b != nil {
					res.B = b.Name
				}
				if w != nil {
					res.Winner = w.Name
					next = append(next, w)
				}
				results = append(results, res)
			}
		}

		br.Results = append(br.Results, results)

		if len(next) == 1 {
			br.Complete = true
			br.Champion = next[0].Name
			l.Season.Champion = br.Champion
			return
		}

		pairs := make([]Pairing, 0, len(next)/2)
		for i := 0; i < len(next)/2; i++ {
			pairs = append(pairs, Pairing{Home: next[i].ID, Away: next[len(next)-1-i].ID})
		}
		br.Round++
		br.Rounds = append(br.Rounds, pairs)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
