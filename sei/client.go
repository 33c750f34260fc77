package sei

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/net/context"

	"github.com/nbeck/sower/ai"
	"github.com/nbeck/sower/kalah"
	"github.com/nbeck/sower/kgn"
)

// Client owns a SEI engine subprocess. NewGame hands out a player
// bound to the current game; starting the next game invalidates it.
type Client struct {
	cmd *exec.Cmd

	stdinPipe  io.WriteCloser
	stdoutPipe io.ReadCloser

	read  *bufio.Reader
	write io.Writer

	gameid int
}

func NewClient(cmdline []string) (*Client, error) {
	cmd := &exec.Cmd{
		Args: cmdline,
	}
	if path, err := exec.LookPath(cmdline[0]); err != nil {
		return nil, err
	} else {
		cmd.Path = path
	}

	cl := &Client{
		cmd: cmd,
	}

	if stdin, err := cmd.StdinPipe(); err != nil {
		cl.Close()
		return nil, err
	} else {
		cl.stdinPipe = stdin
		cl.write = stdin
	}

	if stdout, err := cmd.StdoutPipe(); err != nil {
		cl.Close()
		return nil, err
	} else {
		cl.stdoutPipe = stdout
		cl.read = bufio.NewReader(stdout)
	}

	if err := cl.cmd.Start(); err != nil {
		cl.Close()
		return nil, err
	}

	if _, err := cl.sendCommand("sei", "seiok"); err != nil {
		cl.Close()
		return nil, err
	}

	return cl, nil
}

func (c *Client) NewGame(cfg kalah.Config) (ai.Player, error) {
	c.gameid++
	cmd := "seinewgame"
	if cfg.Pits != 0 {
		cmd = fmt.Sprintf("%s %d", cmd, cfg.Pits)
		if cfg.Seeds != 0 {
			cmd = fmt.Sprintf("%s %d", cmd, cfg.Seeds)
		}
	}
	if _, err := c.sendCommand(cmd, ""); err != nil {
		return nil, err
	}
	return &player{
		client: c,
		gameid: c.gameid,
	}, nil
}

func (c *Client) Close() {
	if c.write != nil {
		c.sendCommand("quit", "")
	}
	if c.stdinPipe != nil {
		c.stdinPipe.Close()
	}
	if c.stdoutPipe != nil {
		c.stdoutPipe.Close()
	}
	if c.cmd.Process != nil {
		c.cmd.Wait()
	}
}

func (c *Client) sendCommand(cmd string, expect string) ([]string, error) {
	if _, err := fmt.Fprintln(c.write, cmd); err != nil {
		return nil, err
	}
	if expect == "" {
		return nil, nil
	}

	for {
		line, err := c.read.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\n")
		words := strings.Split(line, " ")
		if words[0] == expect {
			return words, nil
		}
	}
}

type player struct {
	client *Client
	gameid int
}

func (p *player) GetMove(ctx context.Context, pos *kalah.Position) (kalah.Move, error) {
	if p.gameid != p.client.gameid {
		return kalah.Move{}, fmt.Errorf("sei: GetMove on a dead player (game %d)", p.gameid)
	}
	cmd := fmt.Sprintf("position kgn %s", kgn.FormatPosition(pos))
	if _, err := p.client.sendCommand(cmd, ""); err != nil {
		return kalah.Move{}, fmt.Errorf("send position: %w", err)
	}
	goCmd := "go"
	if deadline, ok := ctx.Deadline(); ok {
		timeoutMS := time.Until(deadline) / time.Millisecond
		goCmd = fmt.Sprintf("%s movetime %d", goCmd, timeoutMS)
	}
	bestmove, err := p.client.sendCommand(goCmd, "bestmove")
	if err != nil {
		return kalah.Move{}, err
	}
	if len(bestmove) != 2 {
		return kalah.Move{}, fmt.Errorf("bad bestmove: %v", bestmove)
	}
	if bestmove[1] == "-" {
		return kalah.Move{}, ai.ErrNoMove
	}
	mv, err := kgn.ParseMove(bestmove[1])
	if err != nil {
		return kalah.Move{}, fmt.Errorf("parse move %q: %w", bestmove[1], err)
	}
	return mv, nil
}
