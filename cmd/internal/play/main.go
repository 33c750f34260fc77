package play

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"context"

	"github.com/google/subcommands"

	"github.com/nbeck/sower/ai"
	"github.com/nbeck/sower/cli"
	"github.com/nbeck/sower/kalah"
)

type Command struct {
	south string
	north string
	pits  int
	seeds int
	debug int
	limit time.Duration
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play Kalah from the command line" }
func (*Command) Usage() string {
	return `play

Play Kalah on the command-line, against a human or AI.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.south, "south", "human", "south player")
	flags.StringVar(&c.north, "north", "minimax", "north player")
	flags.IntVar(&c.pits, "pits", kalah.DefaultPits, "pits per side")
	flags.IntVar(&c.seeds, "seeds", kalah.DefaultSeeds, "seeds per pit")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
	flags.DurationVar(&c.limit, "limit", time.Minute, "ai time limit")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := bufio.NewReader(os.Stdin)
	st := &cli.CLI{
		Config: kalah.Config{Pits: c.pits, Seeds: c.seeds},
		Out:    os.Stdout,
		South:  c.parsePlayer(in, c.south),
		North:  c.parsePlayer(in, c.north),
	}
	st.Play()

	return subcommands.ExitSuccess
}

type aiWrapper struct {
	limit time.Duration
	p     ai.Player
}

func (a *aiWrapper) GetMove(p *kalah.Position) (kalah.Move, error) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(a.limit))
	defer cancel()
	return a.p.GetMove(ctx, p)
}

func (c *Command) parsePlayer(in *bufio.Reader, s string) cli.Player {
	if s == "human" {
		return cli.NewCLIPlayer(os.Stdout, in)
	}
	if strings.HasPrefix(s, "rand") {
		var seed int64
		if len(s) > len("rand") {
			i, err := strconv.Atoi(s[len("rand:"):])
			if err != nil {
				log.Fatal(err)
			}
			seed = int64(i)
		}
		return &aiWrapper{c.limit, ai.NewRandom(seed)}
	}
	if strings.HasPrefix(s, "minimax") {
		var depth = 6
		if len(s) > len("minimax") {
			i, err := strconv.Atoi(s[len("minimax:"):])
			if err != nil {
				log.Fatal(err)
			}
			depth = i
		}
		p := ai.NewMinimax(ai.MinimaxConfig{
			Pits:  c.pits,
			Depth: depth,
			Debug: c.debug,
		})
		return &aiWrapper{c.limit, p}
	}
	log.Fatalf("unparseable player: %s", s)
	return nil
}
