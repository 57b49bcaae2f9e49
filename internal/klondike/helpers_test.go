package klondike

// Test fixtures shared across the package tests.

// mustCard builds a face-up card from its identity string, panicking on a
// bad literal so fixture typos fail loudly.
func mustCard(s string) Card {
	id, err := ParseCardID(s)
	if err != nil {
		panic(err)
	}
	return Card{Suit: id.Suit, Rank: id.Rank, Deck: id.Deck, FaceUp: true}
}

// faceDown builds a face-down card from its identity string
func faceDown(s string) Card {
	c := mustCard(s)
	c.FaceUp = false
	return c
}

// pileOf builds a face-up pile bottom to top
func pileOf(ids ...string) []Card {
	out := make([]Card, len(ids))
	for i, id := range ids {
		out[i] = mustCard(id)
	}
	return out
}

// deepCopy clones every pile so later transitions can never share memory
// with the copy. Engine states keep empty piles nil, so append from a nil
// base preserves equality under reflect.DeepEqual.
func deepCopy(s GameState) GameState {
	out := s
	out.Stock = append([]Card(nil), s.Stock...)
	out.Waste = append([]Card(nil), s.Waste...)
	for i := range s.Foundations {
		out.Foundations[i] = append([]Card(nil), s.Foundations[i]...)
	}
	for i := range s.Tableau {
		out.Tableau[i] = append([]Card(nil), s.Tableau[i]...)
	}
	return out
}

// wonState builds the finished position: eight complete foundations, one
// per suit and pack, nothing anywhere else
func wonState() GameState {
	var s GameState
	s.Seed = 1
	i := 0
	for d := uint8(0); d < NumDecks; d++ {
		for suit := Clubs; suit <= Spades; suit++ {
			run := make([]Card, 0, int(King))
			for rank := Ace; rank <= King; rank++ {
				run = append(run, Card{Suit: suit, Rank: rank, Deck: d, FaceUp: true})
			}
			s.Foundations[i] = run
			i++
		}
	}
	return s
}
