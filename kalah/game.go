package kalah

// Config describes the shape of a game. The zero value is filled in
// with the standard eight-pit, four-seed layout by New.
type Config struct {
	Pits  int
	Seeds int
}

const (
	DefaultPits  = 8
	DefaultSeeds = 4

	// storeWeight is how much a banked seed is worth relative to a
	// seed still in play when evaluating a position.
	storeWeight = 4
)

// Position is the mutable state of one game: both rows of pits, both
// stores, and whose turn it is. A Position is not safe for concurrent
// use; callers that share one across goroutines must serialize access.
type Position struct {
	cfg    Config
	pits   [2][]int
	stores [2]int
	toMove Player
	move   int

	journal []undoRecord
}

type undoRecord struct {
	pits   [2][]int
	stores [2]int
	toMove Player
}

func New(cfg Config) *Position {
	if cfg.Pits == 0 {
		cfg.Pits = DefaultPits
	}
	if cfg.Seeds == 0 {
		cfg.Seeds = DefaultSeeds
	}
	p := &Position{
		cfg:    cfg,
		toMove: South,
	}
	for side := range p.pits {
		p.pits[side] = make([]int, cfg.Pits)
		for i := range p.pits[side] {
			p.pits[side][i] = cfg.Seeds
		}
	}
	return p
}

// FromPits builds a position with explicit pit and store contents.
// pits is indexed [South, North]; each row must have the same length.
func FromPits(pits [2][]int, stores [2]int, toMove Player) *Position {
	p := &Position{
		cfg:    Config{Pits: len(pits[South])},
		stores: stores,
		toMove: toMove,
	}
	total := stores[South] + stores[North]
	for side := range pits {
		p.pits[side] = append([]int(nil), pits[side]...)
		for _, n := range pits[side] {
			total += n
		}
	}
	// Seeds is only used to derive the strength bounds; recover it
	// from the totals so bounds stay correct for handmade positions.
	p.cfg.Seeds = (total + 2*p.cfg.Pits - 1) / (2 * p.cfg.Pits)
	return p
}

func (p *Position) Config() Config {
	return p.cfg
}

func (p *Position) ToMove() Player {
	return p.toMove
}

func (p *Position) MoveNumber() int {
	return p.move
}

func (p *Position) Pit(pl Player, i int) int {
	return p.pits[pl][i]
}

func (p *Position) Store(pl Player) int {
	return p.stores[pl]
}

func (p *Position) rowSum(pl Player) int {
	sum := 0
	for _, n := range p.pits[pl] {
		sum += n
	}
	return sum
}

// LegalMoves returns pl's non-empty pits, in pit order. It does not
// consider whose turn it is; Apply enforces that.
func (p *Position) LegalMoves(pl Player) []Move {
	if p.GameOver() {
		return nil
	}
	var ms []Move
	for i, n := range p.pits[pl] {
		if n > 0 {
			ms = append(ms, Move{Player: pl, Pit: i})
		}
	}
	return ms
}

// Apply plays m if it is legal right now: it must be m.Player's turn
// and the chosen pit must be non-empty. It reports whether the move
// was made. Every successful Apply can be reversed by UndoLast.
func (p *Position) Apply(m Move) bool {
	if m.Player != South && m.Player != North {
		return false
	}
	if m.Player != p.toMove || p.GameOver() {
		return false
	}
	if m.Pit < 0 || m.Pit >= p.cfg.Pits || p.pits[m.Player][m.Pit] == 0 {
		return false
	}

	p.pushUndo()

	seeds := p.pits[m.Player][m.Pit]
	p.pits[m.Player][m.Pit] = 0

	side, pit := m.Player, m.Pit
	lastInStore := false
	for seeds > 0 {
		pit++
		if pit == p.cfg.Pits {
			if side == m.Player {
				// own store
				p.stores[side]++
				seeds--
				if seeds == 0 {
					lastInStore = true
					break
				}
			}
			// the opponent's store is skipped
			side = side.Opponent()
			pit = -1
			continue
		}
		p.pits[side][pit]++
		seeds--
	}

	// Capture: last seed landed in a previously-empty pit on the
	// mover's side takes that seed and the opposite pit.
	if !lastInStore && side == m.Player && p.pits[side][pit] == 1 {
		opposite := p.cfg.Pits - 1 - pit
		captured := p.pits[side][pit] + p.pits[side.Opponent()][opposite]
		p.pits[side][pit] = 0
		p.pits[side.Opponent()][opposite] = 0
		p.stores[m.Player] += captured
	}

	p.toMove = p.toMove.Opponent()
	p.move++
	return true
}

// UndoLast reverses the most recent successful Apply. Undo is strictly
// LIFO; calling it with nothing to undo panics, since that is always a
// bookkeeping bug in the caller.
func (p *Position) UndoLast() {
	if len(p.journal) == 0 {
		panic("kalah: UndoLast with empty journal")
	}
	rec := p.journal[len(p.journal)-1]
	p.journal = p.journal[:len(p.journal)-1]
	for side := range p.pits {
		copy(p.pits[side], rec.pits[side])
	}
	p.stores = rec.stores
	p.toMove = rec.toMove
	p.move--
}

func (p *Position) pushUndo() {
	var rec undoRecord
	for side := range p.pits {
		rec.pits[side] = append([]int(nil), p.pits[side]...)
	}
	rec.stores = p.stores
	rec.toMove = p.toMove
	p.journal = append(p.journal, rec)
}

// GameOver reports whether either row is empty. The game ends the
// moment one side runs out of seeds; Winner applies the final sweep.
func (p *Position) GameOver() bool {
	return p.rowSum(South) == 0 || p.rowSum(North) == 0
}

// FinalStore is pl's store after the end-of-game sweep of their own
// row. Before the game is over it is just the store.
func (p *Position) FinalStore(pl Player) int {
	if !p.GameOver() {
		return p.stores[pl]
	}
	return p.stores[pl] + p.rowSum(pl)
}

func (p *Position) Winner() Player {
	if !p.GameOver() {
		return NoPlayer
	}
	s, n := p.FinalStore(South), p.FinalStore(North)
	switch {
	case s > n:
		return South
	case n > s:
		return North
	default:
		return NoPlayer
	}
}

// Evaluate scores the position for pl. The score is always from pl's
// fixed perspective, no matter whose turn it is: banked seeds count
// storeWeight each, seeds still on pl's row count one.
func (p *Position) Evaluate(pl Player) int {
	op := pl.Opponent()
	if p.GameOver() {
		return storeWeight * (p.FinalStore(pl) - p.FinalStore(op))
	}
	banked := storeWeight * (p.stores[pl] - p.stores[op])
	inPlay := p.rowSum(pl) - p.rowSum(op)
	return banked + inPlay
}

// StrengthBounds are the extreme values Evaluate can return for this
// board shape. They double as the search's alpha-beta window and its
// "no move found" sentinels.
func (p *Position) StrengthBounds() (min, max int) {
	total := 2 * p.cfg.Pits * p.cfg.Seeds
	max = (storeWeight + 1) * total
	return -max, max
}

// Equal compares full game state, journal excluded.
func (p *Position) Equal(o *Position) bool {
	if p.cfg.Pits != o.cfg.Pits || p.stores != o.stores || p.toMove != o.toMove {
		return false
	}
	for side := range p.pits {
		for i := range p.pits[side] {
			if p.pits[side][i] != o.pits[side][i] {
				return false
			}
		}
	}
	return true
}

func (p *Position) Clone() *Position {
	c := &Position{
		cfg:    p.cfg,
		stores: p.stores,
		toMove: p.toMove,
		move:   p.move,
	}
	for side := range p.pits {
		c.pits[side] = append([]int(nil), p.pits[side]...)
	}
	return c
}
