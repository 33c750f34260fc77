package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nbeck/sower/kalah"
	"github.com/nbeck/sower/kgn"
)

type Player interface {
	GetMove(p *kalah.Position) (kalah.Move, error)
}

type CLI struct {
	moves []kalah.Move
	p     *kalah.Position

	Config kalah.Config
	Out    io.Writer
	South  Player
	North  Player
}

func (c *CLI) Play() *kalah.Position {
	c.moves = nil
	c.p = kalah.New(c.Config)
	for {
		c.render()
		if c.p.GameOver() {
			w := c.p.Winner()
			fmt.Fprintf(c.Out, "Game Over! ")
			if w == kalah.NoPlayer {
				fmt.Fprintf(c.Out, "Draw.")
			} else {
				fmt.Fprintf(c.Out, "%s wins", w)
			}
			fmt.Fprintf(c.Out, "\nfinal score: south=%d north=%d\n",
				c.p.FinalStore(kalah.South),
				c.p.FinalStore(kalah.North))
			return c.p
		}
		var pl Player
		if c.p.ToMove() == kalah.South {
			pl = c.South
		} else {
			pl = c.North
		}
		m, err := pl.GetMove(c.p)
		if err != nil {
			fmt.Fprintf(c.Out, "%s has no move: %v\n", c.p.ToMove(), err)
			return c.p
		}
		if !c.p.Apply(m) {
			fmt.Fprintln(c.Out, "illegal move:", kgn.FormatMove(m))
			continue
		}
		fmt.Fprintf(c.Out, "%d. %s\n", c.p.MoveNumber(), kgn.FormatMove(m))
		c.moves = append(c.moves, m)
	}
}

func (c *CLI) Moves() []kalah.Move {
	return c.moves
}

func (c *CLI) render() {
	RenderBoard(c.Out, c.p)
}

// RenderBoard draws the board from south's seat: north's row on top,
// running right to left so both rows follow the sowing direction.
func RenderBoard(out io.Writer, p *kalah.Position) {
	pits := p.Config().Pits
	w := tabwriter.NewWriter(out, 3, 8, 1, ' ', 0)

	fmt.Fprintf(w, "\t")
	for i := pits - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%c\t", 'A'+i)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "north\t")
	for i := pits - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%d\t", p.Pit(kalah.North, i))
	}
	fmt.Fprintf(w, "[%d]\n", p.Store(kalah.North))

	fmt.Fprintf(w, "south\t")
	for i := 0; i < pits; i++ {
		fmt.Fprintf(w, "%d\t", p.Pit(kalah.South, i))
	}
	fmt.Fprintf(w, "[%d]\n", p.Store(kalah.South))

	fmt.Fprintf(w, "\t")
	for i := 0; i < pits; i++ {
		fmt.Fprintf(w, "%c\t", 'a'+i)
	}
	fmt.Fprintf(w, "\n")
	w.Flush()
}
