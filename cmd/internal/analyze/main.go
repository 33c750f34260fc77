package analyze

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"context"

	"github.com/google/subcommands"

	"github.com/nbeck/sower/ai"
	"github.com/nbeck/sower/cli"
	"github.com/nbeck/sower/cmd/internal/opt"
	"github.com/nbeck/sower/kalah"
	"github.com/nbeck/sower/kgn"
)

type Command struct {
	opt   opt.Minimax
	eval  bool
	quiet bool
	moves string
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Analyze a position" }
func (*Command) Usage() string {
	return `analyze [flags] POSITION

Evaluate a position and report the engine's move. POSITION is either
the word "startpos" or a kgn position string such as

  4,4,4,4,4,4,4,4/4,4,4,4,4,4,4,4 0-0 s
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	c.opt.AddFlags(flags)
	flags.BoolVar(&c.eval, "evaluate", false, "only show static evaluation")
	flags.BoolVar(&c.quiet, "quiet", false, "don't print the board diagram")
	flags.StringVar(&c.moves, "moves", "", "apply the listed moves after the given position")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if len(flag.Args()) == 0 {
		log.Println("analyze: need a position")
		return subcommands.ExitUsageError
	}
	pos, err := c.parsePosition(strings.Join(flag.Args(), " "))
	if err != nil {
		log.Printf("analyze: %v", err)
		return subcommands.ExitFailure
	}

	if !c.quiet {
		cli.RenderBoard(os.Stdout, pos)
	}
	toMove := pos.ToMove()

	if c.eval {
		fmt.Printf("evaluate(%s) = %d\n", toMove, pos.Evaluate(toMove))
		return subcommands.ExitSuccess
	}

	engine := ai.NewMinimax(c.opt.BuildConfig(pos.Config().Pits))
	mv, val, st, err := engine.Analyze(ctx, pos, toMove)
	if err != nil {
		fmt.Printf("no move for %s: %v\n", toMove, err)
		return subcommands.ExitSuccess
	}
	fmt.Printf("move=%s value=%d\n", kgn.FormatMove(mv), val)
	fmt.Printf("tried=%d evaluated=%d terminal=%d cuts=%d time=%s\n",
		st.Tried, st.Evaluated, st.Terminal, st.CutNodes, st.Elapsed)
	return subcommands.ExitSuccess
}

func (c *Command) parsePosition(arg string) (*kalah.Position, error) {
	var pos *kalah.Position
	if strings.TrimSpace(arg) == "startpos" {
		pos = kalah.New(kalah.Config{})
	} else {
		var err error
		pos, err = kgn.ParsePosition(arg)
		if err != nil {
			return nil, err
		}
	}
	if c.moves == "" {
		return pos, nil
	}
	for _, w := range strings.Fields(c.moves) {
		m, err := kgn.ParseMove(w)
		if err != nil {
			return nil, fmt.Errorf("parse move %q: %w", w, err)
		}
		if !pos.Apply(m) {
			return nil, fmt.Errorf("illegal move: %q", w)
		}
	}
	return pos, nil
}
