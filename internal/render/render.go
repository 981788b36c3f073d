// Package render produces HTML views of a league: the Top 25 ranking, recent
// games, team tables, conference standings, the schedule by day, and the
// tournament bracket results. Escaping of team and conference names is
// handled by html/template.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/cbbgm/cbbgm/internal/league"
)

type rankedTeam struct {
	Rank int
	Team *league.Team
}

const top25HTML = `<div class="panel"><h3>Top 25</h3>
<table class="table"><thead><tr><th>#</th><th>Team</th><th>Conf</th><th>Record</th></tr></thead><tbody>
{{ range . }}<tr><td>{{ .Rank }}</td><td>{{ .Team.Name }}</td><td>{{ .Team.Conference }}</td><td>{{ record .Team }}</td></tr>
{{ end }}</tbody></table></div>
`

const standingsHTML = `{{ range . }}<div class="panel"><h3>{{ .Name }} Standings</h3>
<table class="table"><thead><tr><th>#</th><th>Team</th><th>Overall</th><th>Conf</th></tr></thead><tbody>
{{ range $i, $t := .Teams }}<tr><td>{{ inc $i }}</td><td>{{ $t.Name }}</td><td>{{ record $t }}</td><td>{{ confRecord $t }}</td></tr>
{{ end }}</tbody></table></div>
{{ end }}`

const bracketHTML = `{{ if not . }}<div class="panel"><h3>National Tournament</h3><div class="empty">Not started yet.</div></div>
{{ else }}{{ range $i, $round := .Results }}<div class="panel"><h3>Round {{ inc $i }}</h3>
<table class="table"><thead><tr><th>A</th><th></th><th>B</th><th>Score</th><th>Winner</th></tr></thead><tbody>
{{ range $round }}<tr><td>{{ .A }}</td><td>vs</td><td>{{ .B }}</td><td>{{ .Score }}</td><td><strong>{{ .Winner }}</strong></td></tr>
{{ end }}</tbody></table></div>
{{ end }}{{ if .Complete }}<div class="panel"><h2>Champion: {{ .Champion }}</h2></div>
{{ end }}{{ end }}`

const recentHTML = `<div class="panel"><h3>Recent Games</h3>
{{ if not . }}<div class="empty">None yet — simulate a day!</div>
{{ else }}<table class="table"><thead><tr><th>Day</th><th>Away</th><th></th><th>Home</th><th>Score</th><th></th></tr></thead><tbody>
{{ range . }}<tr><td>D{{ .Day }}</td><td>{{ .Away }}</td><td>@</td><td>{{ .Home }}</td><td><strong>{{ .AwayScore }}</strong> - <strong>{{ .HomeScore }}</strong></td><td>{{ if .Conf }}<span class="badge">Conf</span>{{ end }}</td></tr>
{{ end }}</tbody></table>{{ end }}</div>
`

const teamsHTML = `{{ range . }}<div class="panel"><h3>{{ .Name }}</h3>
<table class="table"><thead><tr><th>Team</th><th>W-L</th><th>Conf</th><th>Off</th><th>Def</th><th>Pace</th></tr></thead><tbody>
{{ range .Teams }}<tr><td>{{ .Name }}</td><td>{{ record . }}</td><td>{{ confRecord . }}</td><td>{{ .RatingOff }}</td><td>{{ .RatingDef }}</td><td>{{ .Pace }}</td></tr>
{{ end }}</tbody></table></div>
{{ end }}`

const scheduleHTML = `<div class="panel"><h3>Schedule (Day {{ .CurrentDay }} of {{ .MaxDay }})</h3>
{{ range .Days }}<details{{ if .Open }} open{{ end }}><summary>Day {{ .Day }}</summary>
<table class="table"><thead><tr><th></th><th>Away</th><th></th><th>Home</th><th>Score</th></tr></thead><tbody>
{{ range .Games }}<tr><td>{{ if .Conf }}<span class="badge">Conf</span>{{ end }}</td><td>{{ .Away }}</td><td>@</td><td>{{ .Home }}</td><td>{{ if .Played }}<strong>{{ .AwayScore }}</strong> - <strong>{{ .HomeScore }}</strong>{{ else }}<span class="badge">vs</span>{{ end }}</td></tr>
{{ end }}</tbody></table></details>
{{ end }}</div>
`

var funcs = template.FuncMap{
	"inc":        func(i int) int { return i + 1 },
	"record":     func(t *league.Team) string { return fmt.Sprintf("%d-%d", t.Wins, t.Losses) },
	"confRecord": func(t *league.Team) string { return fmt.Sprintf("%d-%d", t.ConfWins, t.ConfLosses) },
}

var (
	top25Tmpl     = template.Must(template.New("top25").Funcs(funcs).Parse(top25HTML))
	standingsTmpl = template.Must(template.New("standings").Funcs(funcs).Parse(standingsHTML))
	bracketTmpl   = template.Must(template.New("bracket").Funcs(funcs).Parse(bracketHTML))
	recentTmpl    = template.Must(template.New("recent").Funcs(funcs).Parse(recentHTML))
	teamsTmpl     = template.Must(template.New("teams").Funcs(funcs).Parse(teamsHTML))
	scheduleTmpl  = template.Must(template.New("schedule").Funcs(funcs).Parse(scheduleHTML))
)

// gameRow is one rendered matchup line.
type gameRow struct {
	Day        int
	Conf       bool
	Away, Home string
	AwayScore  int
	HomeScore  int
	Played     bool
}

func newGameRow(l *league.League, g *league.Game) gameRow {
	return gameRow{
		Day:       g.Day,
		Conf:      g.ConfGame,
		Away:      l.Team(g.AwayID).Name,
		Home:      l.Team(g.HomeID).Name,
		AwayScore: g.AwayScore,
		HomeScore: g.HomeScore,
		Played:    g.Played,
	}
}

// Top25 renders the 25 best teams by composite score.
func Top25(l *league.League) ([]byte, error) {
	ranked := make([]*league.Team, len(l.Teams))
	copy(ranked, l.Teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore() > ranked[j].CompositeScore()
	})
	if len(ranked) > 25 {
		ranked = ranked[:25]
	}
	rows := make([]rankedTeam, len(ranked))
	for i, t := range ranked {
		rows[i] = rankedTeam{Rank: i + 1, Team: t}
	}
	var buf bytes.Buffer
	if err := top25Tmpl.Execute(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RecentGames renders the last 20 played games, newest first.
func RecentGames(l *league.League) ([]byte, error) {
	var played []*league.Game
	for _, g := range l.Season.Games {
		if g.Played {
			played = append(played, g)
		}
	}
	if len(played) > 20 {
		played = played[len(played)-20:]
	}
	rows := make([]gameRow, 0, len(played))
	for i := len(played) - 1; i >= 0; i-- {
		rows = append(rows, newGameRow(l, played[i]))
	}
	var buf bytes.Buffer
	if err := recentTmpl.Execute(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type teamsSection struct {
	Name  string
	Teams []*league.Team
}

// Teams renders per-conference team tables with ratings and pace, ordered by
// overall record within each conference.
func Teams(l *league.League) ([]byte, error) {
	var sections []teamsSection
	for _, conf := range l.Conferences() {
		teams := l.ConferenceTeams(conf)
		sort.SliceStable(teams, func(i, j int) bool {
			return teams[i].Record() > teams[j].Record()
		})
		sections = append(sections, teamsSection{Name: conf, Teams: teams})
	}
	var buf bytes.Buffer
	if err := teamsTmpl.Execute(&buf, sections); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type scheduleDay struct {
	Day   int
	Open  bool
	Games []gameRow
}

type scheduleView struct {
	CurrentDay int
	MaxDay     int
	Days       []scheduleDay
}

// Schedule renders the season day by day; the league's current day starts
// expanded. Played games show the final score, unplayed ones a "vs" badge.
func Schedule(l *league.League) ([]byte, error) {
	byDay := make(map[int][]gameRow)
	for _, g := range l.Season.Games {
		byDay[g.Day] = append(byDay[g.Day], newGameRow(l, g))
	}
	view := scheduleView{CurrentDay: l.CurrentDay, MaxDay: l.Season.MaxDay()}
	for d := 1; d <= view.MaxDay; d++ {
		if len(byDay[d]) == 0 {
			continue
		}
		view.Days = append(view.Days, scheduleDay{Day: d, Open: d == l.CurrentDay, Games: byDay[d]})
	}
	var buf bytes.Buffer
	if err := scheduleTmpl.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type standingsSection struct {
	Name  string
	Teams []*league.Team
}

// Standings renders per-conference standings ordered by conference record,
// then overall record.
func Standings(l *league.League) ([]byte, error) {
	var sections []standingsSection
	for _, conf := range l.Conferences() {
		teams := l.ConferenceTeams(conf)
		sort.SliceStable(teams, func(i, j int) bool {
			a, b := teams[i], teams[j]
			if a.ConfRecord() != b.ConfRecord() {
				return a.ConfRecord() > b.ConfRecord()
			}
			return a.Record() > b.Record()
		})
		sections = append(sections, standingsSection{Name: conf, Teams: teams})
	}
	var buf bytes.Buffer
	if err := standingsTmpl.Execute(&buf, sections); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Bracket renders the tournament round results and champion banner. A nil
// bracket renders a placeholder panel.
func Bracket(l *league.League) ([]byte, error) {
	var buf bytes.Buffer
	if err := bracketTmpl.Execute(&buf, l.Season.Bracket); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Report concatenates all views into one document.
func Report(l *league.League) ([]byte, error) {
	var out bytes.Buffer
	fmt.Fprintf(&out, "<h1>%s</h1>\n", template.HTMLEscapeString(l.Name))
	for _, f := range []func(*league.League) ([]byte, error){Top25, RecentGames, Teams, Standings, Schedule, Bracket} {
		b, err := f(l)
		if err != nil {
			return nil, err
		}
		out.Write(b)
	}
	return out.Bytes(), nil
}
