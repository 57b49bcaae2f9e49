package klondike

// Draw advances the stock cycle. With cards in the stock, the front card
// flips face up onto the front of the waste. With an empty stock, the
// waste recycles: every card flips face down and the pile reverses to
// become the new stock, so the original draw order repeats. The two cases
// are mutually exclusive; only when both piles are empty is there nothing
// to do, and the state comes back unchanged with ErrNothingToDraw.
func (s GameState) Draw() (GameState, error) {
	switch {
	case len(s.Stock) > 0:
		card := s.Stock[0]
		card.FaceUp = true
		out := s
		out.Stock = s.Stock[1:]
		if len(out.Stock) == 0 {
			out.Stock = nil
		}
		out.Waste = pushFront(s.Waste, card)
		return out, nil

	case len(s.Waste) > 0:
		stock := make([]Card, len(s.Waste))
		for i, c := range s.Waste {
			c.FaceUp = false
			stock[len(stock)-1-i] = c
		}
		out := s
		out.Stock = stock
		out.Waste = nil
		return out, nil

	default:
		return s, ErrNothingToDraw
	}
}
