package ai

import (
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/net/context"

	"github.com/nbeck/sower/kalah"
)

type MinimaxConfig struct {
	// Pits is the board arity the fixed move ordering is built for.
	Pits  int
	Depth int
	Debug int
}

// MinimaxAI picks the move that maximizes its worst-case outcome Depth
// plies ahead, pruning subtrees that provably cannot change the answer.
// One MinimaxAI must not run concurrent searches over the same board;
// distinct boards are fine, since all search state lives in a
// per-call calculator.
type MinimaxAI struct {
	cfg   MinimaxConfig
	order []int
}

type Stats struct {
	Tried     uint64
	Visited   uint64
	Evaluated uint64
	Terminal  uint64
	CutNodes  uint64
	Elapsed   time.Duration
}

func NewMinimax(cfg MinimaxConfig) *MinimaxAI {
	if cfg.Pits == 0 {
		cfg.Pits = kalah.DefaultPits
	}
	return &MinimaxAI{
		cfg:   cfg,
		order: SearchOrder(cfg.Pits),
	}
}

// SearchOrder is the fixed center-out slot preference the search visits
// candidates in: [3 4 2 5 1 6 0 7] for an eight-pit row. Center moves
// are empirically stronger first guesses, so trying them first tightens
// the alpha-beta window earlier; the order also decides which move wins
// a strength tie (the earliest visited). It is a pure ordering
// heuristic: legality always comes from the board's move list.
func SearchOrder(pits int) []int {
	order := make([]int, 0, pits)
	lo := (pits - 1) / 2
	hi := lo + 1
	for lo >= 0 || hi < pits {
		if lo >= 0 {
			order = append(order, lo)
			lo--
		}
		if hi < pits {
			order = append(order, hi)
			hi++
		}
	}
	return order
}

// calculator does the actual work of one search. A fresh calculator is
// built for every move decision and used exactly once; nothing carries
// over between calls.
type calculator struct {
	board     Board
	maxPlayer kalah.Player
	minPlayer kalah.Player
	order     []int
	debug     int

	minStrength int
	maxStrength int

	st     Stats
	cancel *int32
}

// GetMove implements Player for the side to move.
func (m *MinimaxAI) GetMove(ctx context.Context, p *kalah.Position) (kalah.Move, error) {
	mv, _, _, err := m.Analyze(ctx, p, p.ToMove())
	return mv, err
}

// Analyze searches the board on behalf of maxPlayer and returns the
// chosen move, its backed-up strength, and search statistics. The board
// is borrowed for the duration of the call and restored on every exit
// path, cancellation included.
func (m *MinimaxAI) Analyze(ctx context.Context, b Board, maxPlayer kalah.Player) (kalah.Move, int, Stats, error) {
	c := &calculator{
		board:     b,
		maxPlayer: maxPlayer,
		minPlayer: maxPlayer.Opponent(),
		order:     m.order,
		debug:     m.cfg.Debug,
	}
	c.minStrength, c.maxStrength = b.StrengthBounds()

	var cancel int32
	c.cancel = &cancel
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			atomic.StoreInt32(&cancel, 1)
		case <-done:
		}
	}()

	mv, v, err := c.selectMove(m.cfg.Depth)
	return mv, v, c.st, err
}

func (c *calculator) selectMove(depth int) (kalah.Move, int, error) {
	if depth < 1 {
		log.Printf("[minimax] error: depth=%d, refusing to search", depth)
		return kalah.Move{}, 0, ErrNoMove
	}
	start := time.Now()

	moves := c.board.LegalMoves(c.maxPlayer)
	best := c.minStrength
	var bestMove kalah.Move
	found := false

	for _, slot := range c.order {
		m, ok := findSlot(moves, slot)
		if !ok {
			continue
		}
		if c.board.Apply(m) {
			c.st.Tried++
			v := c.expandMin(c.minStrength, c.maxStrength, depth-1)
			c.board.UndoLast()
			// Strict > keeps the earliest-visited move on ties.
			if !found || v > best {
				best = v
				bestMove = m
				found = true
			}
		}
		// Cancellation is polled only here at the root, after the
		// move has been undone; in-flight subtrees are never
		// interrupted.
		if atomic.LoadInt32(c.cancel) != 0 {
			return kalah.Move{}, 0, ErrCancelled
		}
	}

	c.st.Elapsed = time.Since(start)
	if !found {
		return kalah.Move{}, 0, ErrNoMove
	}
	if c.debug > 0 {
		log.Printf("[minimax] depth=%d move=%d value=%d tried=%d evaluated=%d cuts=%d time=%s",
			depth, bestMove.Index(), best,
			c.st.Tried, c.st.Evaluated, c.st.CutNodes, c.st.Elapsed)
	}
	return bestMove, best, nil
}

// expandMax returns the best strength the maximizer can force from the
// current position. alpha is the best score some max ancestor already
// has; once alpha reaches beta the min node above will never let the
// game get here, so the remaining siblings are irrelevant.
func (c *calculator) expandMax(alpha, beta, depth int) int {
	over := c.board.GameOver()
	if depth == 0 || over {
		c.st.Evaluated++
		if over {
			c.st.Terminal++
		}
		return c.board.Evaluate(c.maxPlayer)
	}
	c.st.Visited++

	moves := c.board.LegalMoves(c.maxPlayer)
	best := c.minStrength
	for _, slot := range c.order {
		m, ok := findSlot(moves, slot)
		if !ok {
			continue
		}
		if !c.board.Apply(m) {
			continue
		}
		c.st.Tried++
		if v := c.expandMin(alpha, beta, depth-1); v > alpha {
			alpha = v
		}
		if alpha >= beta {
			c.st.CutNodes++
			c.board.UndoLast()
			return alpha
		}
		if alpha > best {
			best = alpha
		}
		c.board.UndoLast()
	}
	return best
}

// expandMin mirrors expandMax from the minimizer's side. Leaves are
// still evaluated from the maximizer's perspective: one evaluation
// function scores a fixed player's position no matter whose turn it is.
func (c *calculator) expandMin(alpha, beta, depth int) int {
	over := c.board.GameOver()
	if depth == 0 || over {
		c.st.Evaluated++
		if over {
			c.st.Terminal++
		}
		return c.board.Evaluate(c.maxPlayer)
	}
	c.st.Visited++

	moves := c.board.LegalMoves(c.minPlayer)
	best := c.maxStrength
	for _, slot := range c.order {
		m, ok := findSlot(moves, slot)
		if !ok {
			continue
		}
		if !c.board.Apply(m) {
			continue
		}
		c.st.Tried++
		if v := c.expandMax(alpha, beta, depth-1); v < beta {
			beta = v
		}
		if beta <= alpha {
			c.st.CutNodes++
			c.board.UndoLast()
			return beta
		}
		if beta < best {
			best = beta
		}
		c.board.UndoLast()
	}
	return best
}

func findSlot(moves []kalah.Move, slot int) (kalah.Move, bool) {
	for _, m := range moves {
		if m.Index() == slot {
			return m, true
		}
	}
	return kalah.Move{}, false
}
