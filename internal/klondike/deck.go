package klondike

// CardsPerDeck is the size of one standard pack
const CardsPerDeck = 52

// BuildDeck returns numberOfDecks standard packs shuffled together. Cards
// start face down and carry the index of the pack they came from, so the
// Ace of Spades from pack 0 and pack 1 are distinct identities. The shuffle
// consumes rng exclusively: equal seeds yield equal orderings.
func BuildDeck(numberOfDecks int, rng *Rand) []Card {
	cards := make([]Card, 0, numberOfDecks*CardsPerDeck)
	for d := 0; d < numberOfDecks; d++ {
		for suit := Clubs; suit <= Spades; suit++ {
			for rank := Ace; rank <= King; rank++ {
				cards = append(cards, NewCard(suit, rank, uint8(d)))
			}
		}
	}
	shuffle(cards, rng)
	return cards
}

// shuffle randomizes cards in place using Fisher-Yates, exactly one rng
// call per position so the draw count per seed is fixed
func shuffle(cards []Card, rng *Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
