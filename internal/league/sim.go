package league

const (
	homeCourtEdge = 2.5
	scoreFloor    = 40
	seasonNoise   = 8
	neutralNoise  = 7
)

// SimulateGame plays one scheduled game and updates both teams' records. It
// is a no-op if the game has already been played, so re-invocation never
// double-counts.
func SimulateGame(l *League, r *Rand, g *Game) {
	if g.Played {
		return
	}
	home, away := l.Team(g.HomeID), l.Team(g.AwayID)

	base := float64(home.Pace+away.Pace) / 2
	h := iround(base + float64(home.RatingOff-away.RatingDef) + homeCourtEdge + r.Gaussian(0, seasonNoise))
	a := iround(base + float64(away.RatingOff-home.RatingDef) + r.Gaussian(0, seasonNoise))
	if h < scoreFloor {
		h = scoreFloor
	}
	if a < scoreFloor {
		a = scoreFloor
	}
	if h == a {
		// Basketball has no draws; nudge the home score either way, but
		// never below the scoring floor.
		if r.Coin() || h == scoreFloor {
			h++
		} else {
			h--
		}
	}

	g.HomeScore, g.AwayScore, g.Played = h, a, true

	if h > a {
		home.Wins++
		away.Losses++
		if g.ConfGame {
			home.ConfWins++
			away.ConfLosses++
		}
	} else {
		away.Wins++
		home.Losses++
		if g.ConfGame {
			away.ConfWins++
			home.ConfLosses++
		}
	}
}

// AdvanceToDay simulates every unplayed game scheduled on or before targetDay,
// in schedule order, raises the league's current-day marker, and then checks
// whether the national tournament should be selected.
func AdvanceToDay(l *League, r *Rand, targetDay int) {
	for _, g := range l.Season.Games {
		if !g.Played && g.Day <= targetDay {
			SimulateGame(l, r, g)
		}
	}
	if targetDay > l.CurrentDay {
		l.CurrentDay = targetDay
	}
	MaybeStartTournament(l)
}

// SimulateFullSeason advances to the last scheduled day and, once the bracket
// exists, runs the tournament to its champion.
func SimulateFullSeason(l *League, r *Rand) {
	AdvanceToDay(l, r, l.Season.MaxDay())
	MaybeStartTournament(l)
	if l.Season.Bracket != nil {
		SimulateTournament(l, r)
	}
}
