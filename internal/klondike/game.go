package klondike

// Pile counts for a two-deck game
const (
	NumDecks       = 2
	NumCards       = NumDecks * CardsPerDeck
	NumFoundations = 8
	NumTableau     = 9
)

// GameState is one immutable snapshot of a game. Transitions return a new
// value and never modify their input, so any retained snapshot stays valid
// for the life of the game (undo history depends on this).
//
// Pile order conventions: Stock[0] is the next card drawn; Waste[0] is the
// most recently drawn card; foundation and tableau piles run bottom to top,
// so the last element is the top. Empty piles are kept nil so snapshots
// compare cleanly with reflect.DeepEqual.
type GameState struct {
	Stock       []Card
	Waste       []Card
	Foundations [NumFoundations][]Card
	Tableau     [NumTableau][]Card

	// Seed reproduces this game's deal via NewGame
	Seed int64
}

// NewGame shuffles two packs with the seed and deals the opening layout.
// Equal seeds produce equal states, card for card.
func NewGame(seed int64) GameState {
	return Deal(BuildDeck(NumDecks, NewRand(seed)), seed)
}

// Deal lays out a shuffled deck: nine tableau piles of 1..9 cards cut from
// the front, the last card of each pile turned face up, and the remaining
// 59 cards left face down as the stock in deck order. Foundations and waste
// start empty.
func Deal(cards []Card, seed int64) GameState {
	s := GameState{Seed: seed}
	next := 0
	for i := 0; i < NumTableau; i++ {
		n := i + 1
		pile := make([]Card, n)
		copy(pile, cards[next:next+n])
		pile[n-1].FaceUp = true
		s.Tableau[i] = pile
		next += n
	}
	s.Stock = append([]Card(nil), cards[next:]...)
	return s
}

// CardCount returns the number of cards across all piles
func (s GameState) CardCount() int {
	n := len(s.Stock) + len(s.Waste)
	for _, f := range s.Foundations {
		n += len(f)
	}
	for _, t := range s.Tableau {
		n += len(t)
	}
	return n
}

// Snapshots share pile slices, so growing a pile in place would bleed into
// retained history. pushCards extends pile on a fresh backing array; the
// builtin append must never touch a pile.
func pushCards(pile []Card, cards ...Card) []Card {
	out := make([]Card, len(pile)+len(cards))
	copy(out, pile)
	copy(out[len(pile):], cards)
	return out
}

// pushFront returns pile with card prepended, on a fresh backing array
func pushFront(pile []Card, card Card) []Card {
	out := make([]Card, len(pile)+1)
	out[0] = card
	copy(out[1:], pile)
	return out
}
