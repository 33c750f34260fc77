package sei

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/nbeck/sower/cmd/internal/opt"
	"github.com/nbeck/sower/sei"
)

type Command struct {
	opt opt.Minimax
}

func (*Command) Name() string     { return "sei" }
func (*Command) Synopsis() string { return "Launch Sower in SEI mode" }
func (*Command) Usage() string {
	return `sei

Launch the engine in SEI mode, a UCI-like protocol suitable for being
driven by an external GUI or controller.

`
}

func (c *Command) SetFlags(fs *flag.FlagSet) {
	c.opt.AddFlags(fs)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine := sei.NewEngine(os.Stdin, os.Stdout)
	engine.ConfigFactory = c.opt.BuildConfig
	if err := engine.Run(ctx); err != nil {
		log.Println("sei: ", err.Error())
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
