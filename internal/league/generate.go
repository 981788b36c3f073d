package league

import (
	"time"

	"github.com/rs/xid"
)

// conference is a fixed league division with a target average rating.
type conference struct {
	Name string
	Avg  int
}

var conferences = []conference{
	{"Americana", 78}, {"Frontier", 76}, {"Great Lakes", 75}, {"Sunbelt Metro", 74},
	{"Coastal", 73}, {"Heartland", 72}, {"Mountain", 71}, {"Atlantic", 70},
	{"Prairie", 69}, {"Pacific Rim", 68},
}

const teamsPerConference = 12

var nameLeft = []string{
	"Bayview", "Riverdale", "Cedar", "Summit", "Prairie", "Canyon", "Harbor",
	"Lakeside", "Highland", "Pinecrest", "Evergreen", "Redwood", "Stonebridge",
	"Silver Creek", "Maplewood", "Brookfield", "Oak Grove", "Fox Ridge",
	"Goldenfield", "Blue Valley",
}

var nameSuffix = []string{"State", "Tech", "College", "University", "A&M", "Poly", "Institute"}

// NewLeague generates a fresh league: 12 teams in each of the 10 fixed
// conferences, plus a fully built season schedule starting on day 1.
func NewLeague(r *Rand, name string, year int) *League {
	teams := GenerateTeams(r)
	return &League{
		ID:         xid.New().String(),
		Name:       name,
		Created:    time.Now().UnixMilli(),
		CurrentDay: 1,
		Season:     NewSeason(r, teams, year),
		Teams:      teams,
		History:    []*Season{},
	}
}

// GenerateTeams produces the full 120-team universe. Ratings are the
// conference average perturbed by Gaussian(0,6); pace is 70 plus Gaussian(0,3)
// clamped to [60,75]. Name collisions across teams are allowed.
func GenerateTeams(r *Rand) []*Team {
	teams := make([]*Team, 0, len(conferences)*teamsPerConference)
	for _, c := range conferences {
		for i := 0; i < teamsPerConference; i++ {
			teams = append(teams, &Team{
				ID:         xid.New().String(),
				Name:       Choice(r, nameLeft) + " " + Choice(r, nameSuffix),
				Conference: c.Name,
				RatingOff:  iround(float64(c.Avg) + r.Gaussian(0, 6)),
				RatingDef:  iround(float64(c.Avg) + r.Gaussian(0, 6)),
				Pace:       clamp(iround(70+r.Gaussian(0, 3)), 60, 75),
			})
		}
	}
	return teams
}

// NewSeason builds a season for the given year with a complete schedule.
func NewSeason(r *Rand, teams []*Team, year int) *Season {
	return &Season{Year: year, Games: BuildSchedule(r, teams)}
}

func iround(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
