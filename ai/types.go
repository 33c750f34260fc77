package ai

import (
	"errors"

	"golang.org/x/net/context"

	"github.com/nbeck/sower/kalah"
)

// Board is the state a search borrows for the duration of one GetMove
// call. The search applies and undoes moves in strict LIFO order and
// returns the board exactly as it found it, on every exit path.
type Board interface {
	LegalMoves(p kalah.Player) []kalah.Move
	Apply(m kalah.Move) bool
	UndoLast()
	GameOver() bool

	// Evaluate scores the position for p, regardless of whose turn
	// it is, bounded by StrengthBounds.
	Evaluate(p kalah.Player) int
	StrengthBounds() (min, max int)
}

// Player is anything that can pick a move in a game.
type Player interface {
	GetMove(ctx context.Context, p *kalah.Position) (kalah.Move, error)
}

var (
	// ErrNoMove means the search completed but found nothing
	// playable: no legal moves, or an unusable depth.
	ErrNoMove = errors.New("ai: no move available")

	// ErrCancelled means the caller's context was cancelled before
	// the search finished. The board is still fully restored.
	ErrCancelled = errors.New("ai: search cancelled")
)
