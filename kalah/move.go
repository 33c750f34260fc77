package kalah

// A Move empties one of the moving player's pits and sows its seeds
// counter-clockwise. Pits are numbered 0..Pits-1 in sowing direction,
// so pit Pits-1 is adjacent to the player's own store.
type Move struct {
	Player Player
	Pit    int
}

// Index is the move's slot in the fixed 0..Pits-1 range. Each legal
// move for a player has a distinct index.
func (m Move) Index() int {
	return m.Pit
}

func (m Move) Equal(rhs Move) bool {
	return m.Player == rhs.Player && m.Pit == rhs.Pit
}
