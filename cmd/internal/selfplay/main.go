package selfplay

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"context"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"github.com/nbeck/sower/ai"
	"github.com/nbeck/sower/kalah"
	"github.com/nbeck/sower/kgn"
	"github.com/nbeck/sower/logs"
	"github.com/nbeck/sower/sei"
)

type Command struct {
	p1, p2 string
	pits   int
	seeds  int
	seed   int64

	games  int
	cutoff int
	swap   bool

	threads int
	limit   time.Duration
	debug   int

	db      string
	verbose bool
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]

Player specs are "minimax[:depth]", "rand[:seed]", or "sei:CMDLINE" to
drive an external engine over the SEI protocol.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "minimax:6", "player1 spec")
	flags.StringVar(&c.p2, "p2", "minimax:4", "player2 spec")
	flags.IntVar(&c.pits, "pits", kalah.DefaultPits, "pits per side")
	flags.IntVar(&c.seeds, "seeds", kalah.DefaultSeeds, "seeds per pit")
	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games to play")
	flags.IntVar(&c.cutoff, "cutoff", 200, "cut games off after how many plies")
	flags.BoolVar(&c.swap, "swap", true, "swap sides each game")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel threads")
	flags.DurationVar(&c.limit, "limit", 0, "amount of time to search each move")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
	flags.StringVar(&c.db, "db", "", "record games to this sqlite database")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}

	var repo *logs.Repository
	if c.db != "" {
		var err error
		repo, err = logs.Open(c.db)
		if err != nil {
			log.Printf("open %q: %v", c.db, err)
			return subcommands.ExitFailure
		}
		defer repo.Close()
	}

	idx := make(chan int)
	results := make(chan logs.Game)

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		defer close(idx)
		for i := 0; i < c.games; i++ {
			select {
			case idx <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < c.threads; w++ {
		grp.Go(func() error {
			return c.worker(ctx, idx, results)
		})
	}

	collected := make(chan tally)
	go func() {
		collected <- c.collect(results, repo)
	}()

	if err := grp.Wait(); err != nil {
		log.Printf("selfplay: %v", err)
		close(results)
		<-collected
		return subcommands.ExitFailure
	}
	close(results)
	t := <-collected

	w := tabwriter.NewWriter(os.Stdout, 4, 8, 2, ' ', 0)
	fmt.Fprintf(w, "player\twins\tlosses\tties\n")
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", c.p1, t.p1, t.p2, t.ties)
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", c.p2, t.p2, t.p1, t.ties)
	w.Flush()
	return subcommands.ExitSuccess
}

type tally struct {
	p1, p2, ties int
}

func (c *Command) collect(results <-chan logs.Game, repo *logs.Repository) tally {
	var t tally
	for g := range results {
		switch {
		case g.Winner == "tie":
			t.ties++
		case (g.Winner == "south") == (g.South == c.p1):
			t.p1++
		default:
			t.p2++
		}
		if c.verbose {
			log.Printf("game %d: %s (south) vs %s (north): %s %s in %d moves",
				g.ID, g.South, g.North, g.Winner, g.Result, g.Moves)
		}
		if repo != nil {
			if err := repo.InsertGame(&g); err != nil {
				log.Printf("record game %d: %v", g.ID, err)
			}
		}
	}
	return t
}

func (c *Command) worker(ctx context.Context, idx <-chan int, results chan<- logs.Game) error {
	cfg := kalah.Config{Pits: c.pits, Seeds: c.seeds}
	f1 := &factory{spec: c.p1, pits: c.pits, debug: c.debug}
	f2 := &factory{spec: c.p2, pits: c.pits, debug: c.debug}
	defer f1.Close()
	defer f2.Close()

	for i := range idx {
		south, north := f1, f2
		if c.swap && i%2 == 1 {
			south, north = f2, f1
		}
		sp, err := south.player(cfg, c.seed+int64(i))
		if err != nil {
			return err
		}
		np, err := north.player(cfg, c.seed+int64(i)+1)
		if err != nil {
			return err
		}
		g, err := c.playOne(ctx, i, sp, np, south.spec, north.spec)
		if err != nil {
			return fmt.Errorf("game %d: %w", i, err)
		}
		select {
		case results <- *g:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (c *Command) playOne(ctx context.Context, id int, south, north ai.Player, southName, northName string) (*logs.Game, error) {
	p := kalah.New(kalah.Config{Pits: c.pits, Seeds: c.seeds})
	moves := 0
	for !p.GameOver() && moves < c.cutoff {
		var pl ai.Player
		if p.ToMove() == kalah.South {
			pl = south
		} else {
			pl = north
		}
		mctx := ctx
		var cancel context.CancelFunc
		if c.limit > 0 {
			mctx, cancel = context.WithTimeout(ctx, c.limit)
		}
		m, err := pl.GetMove(mctx, p)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			return nil, fmt.Errorf("%s to move: %w", p.ToMove(), err)
		}
		if !p.Apply(m) {
			return nil, fmt.Errorf("%s played illegal move %s", p.ToMove(), kgn.FormatMove(m))
		}
		moves++
	}

	winner := "tie"
	switch p.Winner() {
	case kalah.South:
		winner = "south"
	case kalah.North:
		winner = "north"
	}
	now := time.Now()
	return &logs.Game{
		Day:       now.Format("2006-01-02"),
		ID:        id,
		Timestamp: now,
		Pits:      c.pits,
		Seeds:     c.seeds,
		South:     southName,
		North:     northName,
		Result:    fmt.Sprintf("%d-%d", p.FinalStore(kalah.South), p.FinalStore(kalah.North)),
		Winner:    winner,
		Moves:     moves,
	}, nil
}

// factory builds players for one worker. SEI subprocesses are spawned
// once per worker and reused across its games.
type factory struct {
	spec   string
	pits   int
	debug  int
	client *sei.Client
}

func (f *factory) player(cfg kalah.Config, seed int64) (ai.Player, error) {
	switch {
	case f.spec == "rand" || strings.HasPrefix(f.spec, "rand:"):
		if len(f.spec) > len("rand") {
			i, err := strconv.Atoi(f.spec[len("rand:"):])
			if err != nil {
				return nil, fmt.Errorf("player %q: %w", f.spec, err)
			}
			seed = int64(i)
		}
		return ai.NewRandom(seed), nil
	case f.spec == "minimax" || strings.HasPrefix(f.spec, "minimax:"):
		depth := 6
		if len(f.spec) > len("minimax") {
			i, err := strconv.Atoi(f.spec[len("minimax:"):])
			if err != nil {
				return nil, fmt.Errorf("player %q: %w", f.spec, err)
			}
			depth = i
		}
		return ai.NewMinimax(ai.MinimaxConfig{
			Pits:  f.pits,
			Depth: depth,
			Debug: f.debug,
		}), nil
	case strings.HasPrefix(f.spec, "sei:"):
		if f.client == nil {
			cl, err := sei.NewClient(strings.Fields(f.spec[len("sei:"):]))
			if err != nil {
				return nil, fmt.Errorf("player %q: %w", f.spec, err)
			}
			f.client = cl
		}
		return f.client.NewGame(cfg)
	}
	return nil, fmt.Errorf("unparseable player: %q", f.spec)
}

func (f *factory) Close() {
	if f.client != nil {
		f.client.Close()
	}
}
