// Package opt holds the engine flags shared by every subcommand that
// builds a minimax player.
package opt

import (
	"flag"

	"github.com/nbeck/sower/ai"
)

type Minimax struct {
	Depth int
	Debug int
}

func (o *Minimax) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Depth, "depth", 6, "minimax depth")
	flags.IntVar(&o.Debug, "debug", 1, "debug level")
}

func (o *Minimax) BuildConfig(pits int) ai.MinimaxConfig {
	return ai.MinimaxConfig{
		Pits:  pits,
		Depth: o.Depth,
		Debug: o.Debug,
	}
}
