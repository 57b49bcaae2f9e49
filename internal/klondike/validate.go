package klondike

import "fmt"

// Validate checks the structural invariants every reachable snapshot
// satisfies: all 104 identities present exactly once, stock face down,
// waste and foundations face up, foundations gap-free same-suit runs from
// the Ace, and each tableau pile a face-down prefix under a face-up suffix
// that alternates color and descends in rank. Transitions preserve these
// by construction; tests and the replay tooling call this after every
// applied step to catch conservation bugs early.
func (s GameState) Validate() error {
	seen := make(map[CardID]bool, NumCards)
	count := 0
	track := func(where string, pile []Card) error {
		for i, c := range pile {
			if c.Suit > Spades || c.Rank < Ace || c.Rank > King || c.Deck >= NumDecks {
				return fmt.Errorf("%s[%d]: impossible card %+v", where, i, c)
			}
			id := c.ID()
			if seen[id] {
				return fmt.Errorf("%s[%d]: duplicate card %s", where, i, id)
			}
			seen[id] = true
			count++
		}
		return nil
	}

	if err := track("stock", s.Stock); err != nil {
		return err
	}
	if err := track("waste", s.Waste); err != nil {
		return err
	}
	for i, f := range s.Foundations {
		if err := track(fmt.Sprintf("foundation %d", i), f); err != nil {
			return err
		}
	}
	for i, t := range s.Tableau {
		if err := track(fmt.Sprintf("tableau %d", i), t); err != nil {
			return err
		}
	}
	if count != NumCards {
		return fmt.Errorf("have %d cards, want %d", count, NumCards)
	}

	for i, c := range s.Stock {
		if c.FaceUp {
			return fmt.Errorf("stock[%d]: %s is face up", i, c)
		}
	}
	for i, c := range s.Waste {
		if !c.FaceUp {
			return fmt.Errorf("waste[%d]: %s is face down", i, c)
		}
	}

	for i, f := range s.Foundations {
		for j, c := range f {
			if !c.FaceUp {
				return fmt.Errorf("foundation %d[%d]: %s is face down", i, j, c)
			}
			if j == 0 {
				if c.Rank != Ace {
					return fmt.Errorf("foundation %d starts with %s, want an ace", i, c)
				}
				continue
			}
			below := f[j-1]
			if c.Suit != below.Suit || c.Rank != below.Rank+1 {
				return fmt.Errorf("foundation %d: %s does not continue %s", i, c, below)
			}
		}
	}

	for i, t := range s.Tableau {
		upFrom := -1
		for j, c := range t {
			if c.FaceUp {
				if upFrom == -1 {
					upFrom = j
				}
			} else if upFrom != -1 {
				return fmt.Errorf("tableau %d: face-down %s above face-up cards", i, c)
			}
		}
		if len(t) > 0 && upFrom == -1 {
			return fmt.Errorf("tableau %d: top card is face down", i)
		}
		if upFrom != -1 && !SequenceIsValid(t[upFrom:]) {
			return fmt.Errorf("tableau %d: face-up cards out of sequence", i)
		}
	}

	return nil
}
