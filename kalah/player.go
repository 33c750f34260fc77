package kalah

import "fmt"

type Player int8

const (
	South Player = iota
	North
	NoPlayer Player = -1
)

func (p Player) String() string {
	switch p {
	case South:
		return "south"
	case North:
		return "north"
	case NoPlayer:
		return "no player"
	default:
		panic(fmt.Sprintf("bad player: %d", int(p)))
	}
}

func (p Player) Opponent() Player {
	switch p {
	case South:
		return North
	case North:
		return South
	case NoPlayer:
		return NoPlayer
	default:
		panic(fmt.Sprintf("bad player: %d", int(p)))
	}
}
