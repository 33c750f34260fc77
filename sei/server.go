// Package sei implements the Sower Engine Interface, a UCI-like line
// protocol for driving the engine from an external controller, plus a
// client that drives any SEI engine as a subprocess.
package sei

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nbeck/sower/ai"
	"github.com/nbeck/sower/kalah"
	"github.com/nbeck/sower/kgn"
)

type Engine struct {
	ConfigFactory func(pits int) ai.MinimaxConfig

	in  *bufio.Reader
	out io.Writer

	mm  *ai.MinimaxAI
	pos *kalah.Position
	cfg kalah.Config
}

func NewEngine(in io.Reader, out io.Writer) *Engine {
	return &Engine{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (e *Engine) Run(ctx context.Context) error {
	for {
		line, err := e.in.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\n")
		if line == "" {
			continue
		}
		words := strings.Split(line, " ")
		switch words[0] {
		case "sei":
			fmt.Fprintln(e.out, "id name Sower")
			fmt.Fprintln(e.out, "id author N. Beck")
			fmt.Fprintln(e.out, "seiok")
		case "quit":
			return nil
		case "seinewgame":
			e.mm = nil
			e.pos = nil
			e.cfg = kalah.Config{}
			if len(words) > 1 {
				pits, err := strconv.Atoi(words[1])
				if err != nil || pits < 1 || pits > 26 {
					return fmt.Errorf("bad pit count: %s", words[1])
				}
				e.cfg.Pits = pits
			}
			if len(words) > 2 {
				seeds, err := strconv.Atoi(words[2])
				if err != nil || seeds < 1 {
					return fmt.Errorf("bad seed count: %s", words[2])
				}
				e.cfg.Seeds = seeds
			}
		case "position":
			e.pos, err = parsePosition(e.cfg, words)
			if err != nil {
				return fmt.Errorf("parse position: %w", err)
			}
		case "go":
			if err := e.analyze(ctx, words); err != nil {
				return fmt.Errorf("go: %w", err)
			}
		case "isready":
			fmt.Fprintln(e.out, "readyok")
		case "stop":
			// searches are synchronous; nothing in flight
		default:
			return fmt.Errorf("unknown command: %q", line)
		}
	}
}

func parsePosition(cfg kalah.Config, words []string) (*kalah.Position, error) {
	var pos *kalah.Position
	words = words[1:]
	if len(words) == 0 {
		return nil, errors.New("not enough arguments")
	}
	switch words[0] {
	case "startpos":
		words = words[1:]
		pos = kalah.New(cfg)
	case "kgn":
		// kgn ROWS STORES SIDE
		if len(words) < 4 {
			return nil, errors.New("position kgn: not enough arguments")
		}
		var err error
		pos, err = kgn.ParsePosition(strings.Join(words[1:4], " "))
		if err != nil {
			return nil, err
		}
		words = words[4:]
	default:
		return nil, fmt.Errorf("unknown initial position: %q", words[0])
	}
	if len(words) == 0 {
		return pos, nil
	}
	if words[0] != "moves" {
		return nil, errors.New("position: expected `moves'")
	}
	for _, w := range words[1:] {
		move, err := kgn.ParseMove(w)
		if err != nil {
			return nil, fmt.Errorf("parse move %q: %w", w, err)
		}
		if !pos.Apply(move) {
			return nil, fmt.Errorf("illegal move: %q", w)
		}
	}
	return pos, nil
}

func (e *Engine) analyze(ctx context.Context, words []string) error {
	if e.pos == nil {
		return errors.New("no position provided")
	}

	depth := 0
	words = words[1:]
	for len(words) > 0 {
		switch words[0] {
		case "depth":
			if len(words) < 2 {
				return errors.New("expected depth N")
			}
			d, err := strconv.Atoi(words[1])
			if err != nil || d < 1 {
				return fmt.Errorf("bad depth: %q", words[1])
			}
			depth = d
			words = words[2:]
		case "movetime":
			if len(words) < 2 {
				return errors.New("expected movetime N")
			}
			ms, err := strconv.ParseUint(words[1], 10, 64)
			if err != nil {
				return fmt.Errorf("bad ms: %q", words[1])
			}
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
			defer cancel()
			words = words[2:]
		default:
			return fmt.Errorf("unknown go argument: %q", words[0])
		}
	}

	if e.mm == nil || depth != 0 {
		var cfg ai.MinimaxConfig
		if e.ConfigFactory != nil {
			cfg = e.ConfigFactory(e.pos.Config().Pits)
		} else {
			cfg = ai.MinimaxConfig{Pits: e.pos.Config().Pits, Depth: 6}
		}
		if depth != 0 {
			cfg.Depth = depth
		}
		e.mm = ai.NewMinimax(cfg)
	}

	mv, val, stats, err := e.mm.Analyze(ctx, e.pos, e.pos.ToMove())
	if err != nil {
		fmt.Fprintf(e.out, "info string %v\n", err)
		fmt.Fprintln(e.out, "bestmove -")
		return nil
	}
	fmt.Fprintf(e.out, "info time %d nodes %d score cp %d pv %s\n",
		stats.Elapsed/time.Millisecond,
		stats.Tried,
		val,
		kgn.FormatMove(mv),
	)
	fmt.Fprintf(e.out, "bestmove %s\n", kgn.FormatMove(mv))
	return nil
}
