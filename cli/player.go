package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/nbeck/sower/kalah"
	"github.com/nbeck/sower/kgn"
)

func NewCLIPlayer(out io.Writer, in *bufio.Reader) Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) GetMove(p *kalah.Position) (kalah.Move, error) {
	for {
		fmt.Fprintf(c.out, "%s> ", p.ToMove())
		line, err := c.in.ReadString('\n')
		if err != nil {
			return kalah.Move{}, err
		}
		m, err := kgn.ParseMove(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error: ", err)
			continue
		}
		// the letter's case is a display nicety; the pit always
		// belongs to the side prompted
		m.Player = p.ToMove()
		return m, nil
	}
}
