package klondike

// SequenceIsValid reports whether cards form a run that may travel as a
// group: each adjacent pair alternates color and descends by exactly one
// rank, checked front to back. Zero or one card is always valid.
func SequenceIsValid(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		prev, cur := cards[i-1], cards[i]
		if cur.Rank != prev.Rank-1 {
			return false
		}
		if cur.IsRed() == prev.IsRed() {
			return false
		}
	}
	return true
}

// FoundationAccepts reports whether card may land on foundation: an Ace
// starts an empty pile, and a non-empty pile takes only the same suit one
// rank above its top.
func FoundationAccepts(card Card, foundation []Card) bool {
	if len(foundation) == 0 {
		return card.Rank == Ace
	}
	top := foundation[len(foundation)-1]
	return card.Suit == top.Suit && card.Rank == top.Rank+1
}

// TableauAccepts reports whether a single card may land on tableau: a King
// claims an empty pile, and a non-empty pile takes only a card of opposite
// color one rank below its face-up top.
func TableauAccepts(card Card, tableau []Card) bool {
	if len(tableau) == 0 {
		return card.Rank == King
	}
	top := tableau[len(tableau)-1]
	if !top.FaceUp {
		return false
	}
	return card.IsRed() != top.IsRed() && card.Rank == top.Rank-1
}

// TableauAcceptsSequence reports whether a run may land on tableau as a
// group: the run itself must be valid and its bottom-most card must be
// individually placeable on the pile top.
func TableauAcceptsSequence(cards []Card, tableau []Card) bool {
	if len(cards) == 0 {
		return false
	}
	return SequenceIsValid(cards) && TableauAccepts(cards[0], tableau)
}
