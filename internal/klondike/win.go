package klondike

// Won reports whether the game is complete: nothing left to draw and every
// card home. On reachable states eight Aces and eight Kings across the
// gap-free foundation runs already imply all 104 cards have arrived; the
// card count is still checked outright so a corrupted position can never
// report a win.
func (s GameState) Won() bool {
	if len(s.Stock) > 0 || len(s.Waste) > 0 {
		return false
	}
	cards, aces, kings := 0, 0, 0
	for _, f := range s.Foundations {
		cards += len(f)
		for _, c := range f {
			switch c.Rank {
			case Ace:
				aces++
			case King:
				kings++
			}
		}
	}
	return cards == NumCards && aces == NumFoundations && kings == NumFoundations
}
