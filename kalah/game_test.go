package kalah

import (
	"math/rand"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	p := New(Config{})
	if p.Config().Pits != DefaultPits || p.Config().Seeds != DefaultSeeds {
		t.Fatalf("config: %+v", p.Config())
	}
	if p.ToMove() != South {
		t.Errorf("to move: %s", p.ToMove())
	}
	for _, pl := range []Player{South, North} {
		if p.Store(pl) != 0 {
			t.Errorf("%s store: %d", pl, p.Store(pl))
		}
		for i := 0; i < DefaultPits; i++ {
			if p.Pit(pl, i) != DefaultSeeds {
				t.Errorf("%s pit %d: %d", pl, i, p.Pit(pl, i))
			}
		}
	}
}

func TestApplySows(t *testing.T) {
	p := New(Config{})
	if !p.Apply(Move{South, 5}) {
		t.Fatal("apply failed")
	}
	if p.Pit(South, 5) != 0 {
		t.Errorf("pit 5 not emptied: %d", p.Pit(South, 5))
	}
	if p.Pit(South, 6) != 5 || p.Pit(South, 7) != 5 {
		t.Errorf("pits 6,7 = %d,%d", p.Pit(South, 6), p.Pit(South, 7))
	}
	if p.Store(South) != 1 {
		t.Errorf("south store: %d", p.Store(South))
	}
	if p.Pit(North, 0) != 5 {
		t.Errorf("north pit 0: %d", p.Pit(North, 0))
	}
	if p.ToMove() != North {
		t.Errorf("to move: %s", p.ToMove())
	}
}

func TestApplySkipsOpponentStore(t *testing.T) {
	pits := [2][]int{
		{1, 0, 0, 0, 0, 0, 0, 10},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}
	p := FromPits(pits, [2]int{0, 0}, South)
	if !p.Apply(Move{South, 7}) {
		t.Fatal("apply failed")
	}
	// one to own store, eight across the north row, one wrapping
	// back to south pit 0; north's store is never touched.
	if p.Store(South) != 1 {
		t.Errorf("south store: %d", p.Store(South))
	}
	if p.Store(North) != 0 {
		t.Errorf("north store: %d", p.Store(North))
	}
	for i := 0; i < 8; i++ {
		if p.Pit(North, i) != 2 {
			t.Errorf("north pit %d: %d", i, p.Pit(North, i))
		}
	}
	if p.Pit(South, 0) != 2 {
		t.Errorf("south pit 0: %d", p.Pit(South, 0))
	}
}

func TestApplyCaptures(t *testing.T) {
	pits := [2][]int{
		{1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 3, 0},
	}
	p := FromPits(pits, [2]int{0, 0}, South)
	if !p.Apply(Move{South, 0}) {
		t.Fatal("apply failed")
	}
	// the last seed lands in empty pit 1, capturing it plus north's
	// opposite pit 6.
	if p.Store(South) != 4 {
		t.Errorf("south store: %d", p.Store(South))
	}
	if p.Pit(South, 1) != 0 || p.Pit(North, 6) != 0 {
		t.Errorf("pits not captured: %d, %d", p.Pit(South, 1), p.Pit(North, 6))
	}
	if !p.GameOver() || p.Winner() != South {
		t.Errorf("over=%v winner=%s", p.GameOver(), p.Winner())
	}
}

func TestNoCaptureIntoStore(t *testing.T) {
	pits := [2][]int{
		{0, 0, 0, 0, 0, 0, 0, 1},
		{2, 2, 2, 2, 2, 2, 2, 2},
	}
	p := FromPits(pits, [2]int{0, 0}, South)
	if !p.Apply(Move{South, 7}) {
		t.Fatal("apply failed")
	}
	if p.Store(South) != 1 {
		t.Errorf("south store: %d", p.Store(South))
	}
	for i := 0; i < 8; i++ {
		if p.Pit(North, i) != 2 {
			t.Errorf("north pit %d: %d", i, p.Pit(North, i))
		}
	}
}

func TestApplyIllegal(t *testing.T) {
	p := New(Config{})
	before := p.Clone()
	cases := []Move{
		{North, 3},    // not north's turn
		{South, -1},   // out of range
		{South, 8},    // out of range
		{NoPlayer, 0}, // not a player
	}
	p.pits[South][2] = 0
	cases = append(cases, Move{South, 2}) // empty pit
	before.pits[South][2] = 0
	for _, m := range cases {
		if p.Apply(m) {
			t.Errorf("applied illegal move %+v", m)
		}
	}
	if !p.Equal(before) {
		t.Error("illegal moves mutated the board")
	}
}

func TestLegalMoves(t *testing.T) {
	pits := [2][]int{
		{0, 3, 0, 1, 0, 0, 2, 0},
		{4, 4, 4, 4, 4, 4, 4, 4},
	}
	p := FromPits(pits, [2]int{0, 0}, South)
	ms := p.LegalMoves(South)
	want := []int{1, 3, 6}
	if len(ms) != len(want) {
		t.Fatalf("moves: %+v", ms)
	}
	for i, m := range ms {
		if m.Index() != want[i] || m.Player != South {
			t.Errorf("move %d: %+v", i, m)
		}
	}
}

func TestUndoRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	p := New(Config{})
	before := p.Clone()
	var applied int
	for i := 0; i < 40; i++ {
		ms := p.LegalMoves(p.ToMove())
		if len(ms) == 0 {
			break
		}
		if !p.Apply(ms[r.Intn(len(ms))]) {
			t.Fatal("legal move failed to apply")
		}
		applied++
	}
	if applied == 0 {
		t.Fatal("no moves applied")
	}
	for i := 0; i < applied; i++ {
		p.UndoLast()
	}
	if !p.Equal(before) {
		t.Error("undo did not restore the starting position")
	}
	if p.MoveNumber() != 0 {
		t.Errorf("move number: %d", p.MoveNumber())
	}
}

func TestUndoEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("UndoLast on a fresh board did not panic")
		}
	}()
	New(Config{}).UndoLast()
}

func TestGameOverSweep(t *testing.T) {
	pits := [2][]int{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 2, 0, 0, 0, 0, 0},
	}
	p := FromPits(pits, [2]int{10, 5}, North)
	if !p.GameOver() {
		t.Fatal("game should be over")
	}
	if p.FinalStore(South) != 10 || p.FinalStore(North) != 8 {
		t.Errorf("final stores: %d, %d", p.FinalStore(South), p.FinalStore(North))
	}
	if p.Winner() != South {
		t.Errorf("winner: %s", p.Winner())
	}
	if p.LegalMoves(North) != nil {
		t.Error("legal moves in a finished game")
	}
}

func TestEvaluateWithinBounds(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	p := New(Config{})
	min, max := p.StrengthBounds()
	for i := 0; i < 200; i++ {
		for _, pl := range []Player{South, North} {
			v := p.Evaluate(pl)
			if v < min || v > max {
				t.Fatalf("evaluate(%s)=%d outside [%d,%d] at move %d",
					pl, v, min, max, p.MoveNumber())
			}
		}
		ms := p.LegalMoves(p.ToMove())
		if len(ms) == 0 {
			p = New(Config{})
			continue
		}
		p.Apply(ms[r.Intn(len(ms))])
	}
}

func TestEvaluateSymmetry(t *testing.T) {
	p := New(Config{})
	p.Apply(Move{South, 2})
	p.Apply(Move{North, 5})
	if got := p.Evaluate(South) + p.Evaluate(North); got != 0 {
		t.Errorf("zero-sum violated: %d", got)
	}
}
