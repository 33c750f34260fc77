package ai

import (
	"math/rand"

	"golang.org/x/net/context"

	"github.com/nbeck/sower/kalah"
)

type RandomAI struct {
	r *rand.Rand
}

func NewRandom(seed int64) Player {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomAI) GetMove(ctx context.Context, p *kalah.Position) (kalah.Move, error) {
	moves := p.LegalMoves(p.ToMove())
	if len(moves) == 0 {
		return kalah.Move{}, ErrNoMove
	}
	return moves[r.r.Intn(len(moves))], nil
}
