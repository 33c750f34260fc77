package results

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"context"

	"github.com/google/subcommands"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3" // we assume sqlite
)

type Command struct{}

func (*Command) Name() string     { return "results" }
func (*Command) Synopsis() string { return "Summarize a selfplay games database" }
func (*Command) Usage() string {
	return `results GAMES.db
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
}

type playerRow struct {
	Player string `db:"player"`
	Games  int    `db:"games"`
	Wins   int    `db:"wins"`
	Losses int    `db:"losses"`
	Ties   int    `db:"ties"`
}

const selectStandings = `
SELECT player,
       COUNT(*) as games,
       SUM(win = 'win') as wins,
       SUM(win = 'lose') as losses,
       SUM(win = 'tie') as ties
  FROM player_games
 GROUP BY player
 ORDER BY wins DESC
`

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if len(flag.Args()) != 1 {
		log.Println("Must supply a game database")
		return subcommands.ExitUsageError
	}

	sql, err := sqlx.Open("sqlite3", flag.Arg(0))
	if err != nil {
		log.Fatal("open: ", err)
	}
	defer sql.Close()

	cur, err := sql.QueryxContext(ctx, selectStandings)
	if err != nil {
		log.Fatal("query: ", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 4, 8, 2, ' ', 0)
	fmt.Fprintf(w, "player\tgames\twins\tlosses\tties\n")
	var row playerRow
	for cur.Next() {
		if err := cur.StructScan(&row); err != nil {
			log.Fatal("scan: ", err)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			row.Player, row.Games, row.Wins, row.Losses, row.Ties)
	}
	w.Flush()

	return subcommands.ExitSuccess
}
