// Package league implements the simulation engine for a fictional
// college-basketball league: team generation, season scheduling, game
// simulation, and the national tournament. All operations take the League and
// a Rand explicitly so that independent leagues can be simulated side by side
// and tests can be made deterministic.
package league

// Team is a club in the league. Its record counters are updated in place by
// the game simulator and live for the lifetime of the League.
type Team struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Conference string `json:"conf"`
	RatingOff  int    `json:"ratingOff"`
	RatingDef  int    `json:"ratingDef"`
	Pace       int    `json:"pace"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	ConfWins   int    `json:"confWins"`
	ConfLosses int    `json:"confLosses"`
}

// Record returns the team's overall win differential.
func (t *Team) Record() int { return t.Wins - t.Losses }

// ConfRecord returns the team's conference win differential.
func (t *Team) ConfRecord() int { return t.ConfWins - t.ConfLosses }

// CompositeScore is the selection and seeding metric used for tournament
// at-large bids and for the Top 25 ranking.
func (t *Team) CompositeScore() float64 {
	return float64(t.Record())*3 + float64(t.ConfRecord())*2 + float64(t.RatingOff+t.RatingDef)/2
}

// Game is a single scheduled matchup. It is created by the schedule builder
// and mutated exactly once, when simulated.
type Game struct {
	ID        string `json:"id"`
	Day       int    `json:"day"`
	HomeID    string `json:"homeId"`
	AwayID    string `json:"awayId"`
	ConfGame  bool   `json:"confGame"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Played    bool   `json:"played"`
}

// Pairing is one bracket slot pair. An empty team ID denotes a bye.
type Pairing struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// RoundResult records the outcome of one bracket pairing. Byes carry the
// score "—" and the name "BYE" on the missing side.
type RoundResult struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Score  string `json:"score"`
	Winner string `json:"winner"`
}

// Bracket is the single-elimination national tournament. It is created once
// the regular season is fully played and mutated round by round until a
// champion is crowned.
type Bracket struct {
	Round    int             `json:"round"`
	Rounds   [][]Pairing     `json:"rounds"`
	Results  [][]RoundResult `json:"results"`
	Complete bool            `json:"complete"`
	Champion string          `json:"champion,omitempty"`
}

// Season is one playing cycle: the full game set plus the tournament state.
type Season struct {
	Year     int      `json:"year"`
	Games    []*Game  `json:"games"`
	Bracket  *Bracket `json:"bracket"`
	Champion string   `json:"champion,omitempty"`
}

// MaxDay returns the latest scheduled day of the season.
func (s *Season) MaxDay() int {
	max := 0
	for _, g := range s.Games {
		if g.Day > max {
			max = g.Day
		}
	}
	return max
}

// AllPlayed reports whether every game of the regular season has been played.
func (s *Season) AllPlayed() bool {
	for _, g := range s.Games {
		if !g.Played {
			return false
		}
	}
	return true
}

// League is the root aggregate. It owns all teams, the current season, and
// the history of completed seasons, and is the unit exchanged with storage.
type League struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Created    int64     `json:"created"`
	CurrentDay int       `json:"currentDay"`
	Season     *Season   `json:"season"`
	Teams      []*Team   `json:"teams"`
	History    []*Season `json:"history"`

	// teamIndex caches ID lookups. It is rebuilt lazily, so a League decoded
	// from JSON needs no fixup step. The team set is fixed after generation.
	teamIndex map[string]*Team
}

// Team resolves a team ID against the league's team set. Returns nil for an
// unknown ID (including bracket bye slots).
func (l *League) Team(id string) *Team {
	if id == "" {
		return nil
	}
	if len(l.teamIndex) != len(l.Teams) {
		l.teamIndex = make(map[string]*Team, len(l.Teams))
		for _, t := range l.Teams {
			l.teamIndex[t.ID] = t
		}
	}
	return l.teamIndex[id]
}

// Conferences returns the distinct conference names in first-appearance order.
func (l *League) Conferences() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range l.Teams {
		if !seen[t.Conference] {
			seen[t.Conference] = true
			names = append(names, t.Conference)
		}
	}
	return names
}

// ConferenceTeams returns the teams of one conference in league order.
func (l *League) ConferenceTeams(conf string) []*Team {
	var teams []*Team
	for _, t := range l.Teams {
		if t.Conference == conf {
			teams = append(teams, t)
		}
	}
	return teams
}
