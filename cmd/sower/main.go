package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/nbeck/sower/cmd/internal/analyze"
	"github.com/nbeck/sower/cmd/internal/play"
	"github.com/nbeck/sower/cmd/internal/results"
	seicmd "github.com/nbeck/sower/cmd/internal/sei"
	"github.com/nbeck/sower/cmd/internal/selfplay"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&seicmd.Command{}, "")
	subcommands.Register(&results.Command{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
