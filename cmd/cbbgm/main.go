// cbbgm is the command-line driver for the league simulator: create a
// league, advance days, run the season and tournament, and move saves
// between the local slot, export files, and the cloud save service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/cbbgm/cbbgm/internal/archive"
	"github.com/cbbgm/cbbgm/internal/cloud"
	"github.com/cbbgm/cbbgm/internal/league"
	"github.com/cbbgm/cbbgm/internal/render"
)

const usage = `usage: cbbgm [flags] <command> [args]

commands:
  new           create a league in the local slot (-name)
  day [n]       advance the season n days (default 1)
  season        simulate the rest of the season and the tournament
  standings     print conference standings
  schedule [d]  print the schedule for day d (default: current day)
  top25         print the Top 25
  bracket       print tournament results
  report <out>  write an HTML report
  export        export the league as pretty-printed JSON
  import <file> replace the league from an export file
  cloud-list    list saves on the save service
  cloud-save [key]  store the league remotely (default key: league name)
  cloud-load <key>  replace the league from a remote save
`

func main() {
	var (
		dataDir = flag.String("data", defaultDataDir(), "directory for the local save slot and exports")
		server  = flag.String("server", "http://localhost:8080", "save service base URL")
		name    = flag.String("name", "Fictional League", "league name for the new command")
		seed    = flag.Int64("seed", 0, "random seed (0 seeds from the clock)")
	)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := league.NewRand(s)

	if err := run(flag.Arg(0), flag.Args()[1:], rng, *dataDir, *server, *name); err != nil {
		fmt.Fprintln(os.Stderr, "cbbgm:", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string, rng *league.Rand, dataDir, server, name string) error {
	ctx := context.Background()

	switch cmd {
	case "new":
		l := league.NewLeague(rng, name, time.Now().Year())
		if err := archive.SaveLocal(dataDir, l); err != nil {
			return err
		}
		fmt.Printf("created %q: %d teams, %d conferences, %d games scheduled\n",
			l.Name, len(l.Teams), len(l.Conferences()), len(l.Season.Games))
		return nil

	case "day":
		n := 1
		if len(args) > 0 {
			if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 1 {
				return fmt.Errorf("day count must be a positive integer")
			}
		}
		return withLeague(dataDir, func(l *league.League) error {
			league.AdvanceToDay(l, rng, l.CurrentDay+n)
			fmt.Printf("advanced to day %d (%d/%d games played)\n",
				l.CurrentDay, playedCount(l), len(l.Season.Games))
			return nil
		})

	case "season":
		return withLeague(dataDir, func(l *league.League) error {
			league.SimulateFullSeason(l, rng)
			fmt.Printf("season %d complete; champion: %s\n", l.Season.Year, l.Season.Champion)
			return nil
		})

	case "standings":
		l, err := archive.LoadLocal(dataDir)
		if err != nil {
			return err
		}
		printStandings(l)
		return nil

	case "schedule":
		l, err := archive.LoadLocal(dataDir)
		if err != nil {
			return err
		}
		d := l.CurrentDay
		if len(args) > 0 {
			if _, err := fmt.Sscanf(args[0], "%d", &d); err != nil || d < 1 {
				return fmt.Errorf("day must be a positive integer")
			}
		}
		printSchedule(l, d)
		return nil

	case "top25":
		l, err := archive.LoadLocal(dataDir)
		if err != nil {
			return err
		}
		printTop25(l)
		return nil

	case "bracket":
		l, err := archive.LoadLocal(dataDir)
		if err != nil {
			return err
		}
		printBracket(l)
		return nil

	case "report":
		if len(args) == 0 {
			return fmt.Errorf("report needs an output path")
		}
		l, err := archive.LoadLocal(dataDir)
		if err != nil {
			return err
		}
		html, err := render.Report(l)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], html, 0o644); err != nil {
			return err
		}
		fmt.Println("wrote", args[0])
		return nil

	case "export":
		l, err := archive.LoadLocal(dataDir)
		if err != nil {
			return err
		}
		path, err := archive.Export(dataDir, l)
		if err != nil {
			return err
		}
		fmt.Println("exported to", path)
		return nil

	case "import":
		if len(args) == 0 {
			return fmt.Errorf("import needs a file path")
		}
		l, err := archive.Import(args[0])
		if err != nil {
			return err
		}
		if err := archive.SaveLocal(dataDir, l); err != nil {
			return err
		}
		fmt.Printf("imported %q\n", l.Name)
		return nil

	case "cloud-list":
		infos, err := cloud.New(server).List(ctx)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("no cloud saves yet")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tSIZE\tUPDATED")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%d\t%s\n", info.Key, info.Size,
				time.UnixMilli(info.UpdatedAt).Format(time.RFC3339))
		}
		return w.Flush()

	case "cloud-save":
		l, err := archive.LoadLocal(dataDir)
		if err != nil {
			return err
		}
		key := archive.Slug(l.Name)
		if len(args) > 0 {
			key = args[0]
		}
		if key == "" {
			return fmt.Errorf("cloud-save needs a non-empty key")
		}
		if err := cloud.New(server).Save(ctx, key, l); err != nil {
			return err
		}
		fmt.Printf("saved %q\n", key)
		return nil

	case "cloud-load":
		if len(args) == 0 {
			return fmt.Errorf("cloud-load needs a key")
		}
		l, err := cloud.New(server).Load(ctx, args[0])
		if err != nil {
			return err
		}
		if err := archive.SaveLocal(dataDir, l); err != nil {
			return err
		}
		fmt.Printf("loaded %q into the local slot\n", l.Name)
		return nil

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// withLeague loads the slot, applies a mutating action, and writes the slot
// back. The slot is untouched when the action fails.
func withLeague(dataDir string, fn func(*league.League) error) error {
	l, err := archive.LoadLocal(dataDir)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	return archive.SaveLocal(dataDir, l)
}

func playedCount(l *league.League) int {
	n := 0
	for _, g := range l.Season.Games {
		if g.Played {
			n++
		}
	}
	return n
}

func printStandings(l *league.League) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, conf := range l.Conferences() {
		teams := l.ConferenceTeams(conf)
		sortByStanding(teams)
		fmt.Fprintf(w, "%s\t\t\t\n", conf)
		for i, t := range teams {
			fmt.Fprintf(w, "%d\t%s\t%d-%d\t%d-%d\n", i+1, t.Name, t.Wins, t.Losses, t.ConfWins, t.ConfLosses)
		}
		fmt.Fprintln(w, "\t\t\t")
	}
	w.Flush()
}

func printSchedule(l *league.League, day int) {
	fmt.Printf("Day %d of %d\n", day, l.Season.MaxDay())
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	found := false
	for _, g := range l.Season.Games {
		if g.Day != day {
			continue
		}
		found = true
		kind := ""
		if g.ConfGame {
			kind = "conf"
		}
		score := "vs"
		if g.Played {
			score = fmt.Sprintf("%d - %d", g.AwayScore, g.HomeScore)
		}
		fmt.Fprintf(w, "%s\t%s\t@\t%s\t%s\n", kind, l.Team(g.AwayID).Name, l.Team(g.HomeID).Name, score)
	}
	w.Flush()
	if !found {
		fmt.Println("no games scheduled")
	}
}

func printTop25(l *league.League) {
	ranked := make([]*league.Team, len(l.Teams))
	copy(ranked, l.Teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore() > ranked[j].CompositeScore()
	})
	if len(ranked) > 25 {
		ranked = ranked[:25]
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTEAM\tCONF\tRECORD")
	for i, t := range ranked {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d-%d\n", i+1, t.Name, t.Conference, t.Wins, t.Losses)
	}
	w.Flush()
}

func printBracket(l *league.League) {
	br := l.Season.Bracket
	if br == nil {
		fmt.Println("tournament not started yet")
		return
	}
	for i, round := range br.Results {
		fmt.Printf("Round %d\n", i+1)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, res := range round {
			fmt.Fprintf(w, "  %s\tvs\t%s\t%s\t%s\n", res.A, res.B, res.Score, res.Winner)
		}
		w.Flush()
	}
	if br.Complete {
		fmt.Println("Champion:", br.Champion)
	}
}

func sortByStanding(teams []*league.Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		if a.ConfRecord() != b.ConfRecord() {
			return a.ConfRecord() > b.ConfRecord()
		}
		return a.Record() > b.Record()
	})
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cbbgm"
	}
	return home + "/.cbbgm"
}
