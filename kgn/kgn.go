// Package kgn implements the textual notation the tools speak: moves
// as pit letters, positions as a single-line board string.
//
// A move is one letter naming the sown pit: lowercase "a".."h" for
// south, uppercase "A".."H" for north, pit 0 first in sowing order.
//
// A position reads south's row, north's row, both stores, and the side
// to move, for example the opening position:
//
//	4,4,4,4,4,4,4,4/4,4,4,4,4,4,4,4 0-0 s
package kgn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nbeck/sower/kalah"
)

func FormatMove(m kalah.Move) string {
	switch m.Player {
	case kalah.South:
		return string(rune('a' + m.Pit))
	case kalah.North:
		return string(rune('A' + m.Pit))
	}
	return "?"
}

func ParseMove(s string) (kalah.Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return kalah.Move{}, fmt.Errorf("bad move: %q", s)
	}
	c := s[0]
	switch {
	case c >= 'a' && c <= 'z':
		return kalah.Move{Player: kalah.South, Pit: int(c - 'a')}, nil
	case c >= 'A' && c <= 'Z':
		return kalah.Move{Player: kalah.North, Pit: int(c - 'A')}, nil
	}
	return kalah.Move{}, fmt.Errorf("bad move: %q", s)
}

func FormatPosition(p *kalah.Position) string {
	pits := p.Config().Pits
	row := func(pl kalah.Player) string {
		bits := make([]string, pits)
		for i := 0; i < pits; i++ {
			bits[i] = strconv.Itoa(p.Pit(pl, i))
		}
		return strings.Join(bits, ",")
	}
	toMove := "s"
	if p.ToMove() == kalah.North {
		toMove = "n"
	}
	return fmt.Sprintf("%s/%s %d-%d %s",
		row(kalah.South), row(kalah.North),
		p.Store(kalah.South), p.Store(kalah.North), toMove)
}

func ParsePosition(s string) (*kalah.Position, error) {
	words := strings.Fields(strings.TrimSpace(s))
	if len(words) != 3 {
		return nil, errors.New("bad position: wrong number of words")
	}

	rows := strings.Split(words[0], "/")
	if len(rows) != 2 {
		return nil, errors.New("bad position: need two rows")
	}
	var pits [2][]int
	for side, r := range rows {
		row, err := parseRow(r)
		if err != nil {
			return nil, err
		}
		pits[side] = row
	}
	if len(pits[0]) != len(pits[1]) {
		return nil, fmt.Errorf("bad position: rows of length %d and %d",
			len(pits[0]), len(pits[1]))
	}

	stores := strings.Split(words[1], "-")
	if len(stores) != 2 {
		return nil, fmt.Errorf("bad stores: %q", words[1])
	}
	var st [2]int
	for i, w := range stores {
		n, err := strconv.Atoi(w)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad store: %q", w)
		}
		st[i] = n
	}

	var toMove kalah.Player
	switch words[2] {
	case "s":
		toMove = kalah.South
	case "n":
		toMove = kalah.North
	default:
		return nil, fmt.Errorf("bad side to move: %q", words[2])
	}

	return kalah.FromPits(pits, st, toMove), nil
}

func parseRow(s string) ([]int, error) {
	var row []int
	for _, w := range strings.Split(s, ",") {
		n, err := strconv.Atoi(w)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad pit count: %q", w)
		}
		row = append(row, n)
	}
	return row, nil
}
