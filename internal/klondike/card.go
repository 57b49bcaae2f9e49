package klondike

import "fmt"

// Suit represents a card suit
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const suitChars = "cdhs"

// String returns the single-letter form of the suit ("c", "d", "h", "s")
func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitChars[s])
}

// Symbol returns the pip character for display (e.g. "♠")
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Diamonds or Hearts)
func (s Suit) IsRed() bool {
	return s == Diamonds || s == Hearts
}

// Rank represents a card rank. Aces are low: foundations build A..K and
// tableau piles stack K..A.
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

const rankChars = "A23456789TJQK"

// String returns the single-letter form of the rank ("A", "2", ..., "T", "J", "Q", "K")
func (r Rank) String() string {
	if r < Ace || r > King {
		return "?"
	}
	return string(rankChars[r-1])
}

// Card is a single playing card. Deck disambiguates the two copies of each
// suit/rank pair in a two-deck game. FaceUp is the only field a transition
// ever rewrites, and only by producing a new Card value.
type Card struct {
	Suit   Suit
	Rank   Rank
	Deck   uint8
	FaceUp bool
}

// NewCard creates a face-down card
func NewCard(suit Suit, rank Rank, deck uint8) Card {
	return Card{Suit: suit, Rank: rank, Deck: deck}
}

// ID returns the card's identity, independent of orientation
func (c Card) ID() CardID {
	return CardID{Suit: c.Suit, Rank: c.Rank, Deck: c.Deck}
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// String returns the identity form of the card (e.g. "As0")
func (c Card) String() string {
	return c.ID().String()
}

// CardID identifies one physical card: suit, rank, and which of the packs
// it came from. It is comparable and safe to use as a map key.
type CardID struct {
	Suit Suit
	Rank Rank
	Deck uint8
}

// String returns the text form of the identifier: rank letter, suit letter,
// deck digit (e.g. "As0" is the Ace of Spades from the first pack)
func (id CardID) String() string {
	return fmt.Sprintf("%s%s%d", id.Rank, id.Suit, id.Deck)
}

// ParseCardID parses a string like "As0" or "Td1" into a CardID
func ParseCardID(s string) (CardID, error) {
	if len(s) != 3 {
		return CardID{}, fmt.Errorf("invalid card id %q: want rank, suit, deck", s)
	}

	var rank Rank
	switch s[0] {
	case 'A', 'a':
		rank = Ace
	case '2':
		rank = Two
	case '3':
		rank = Three
	case '4':
		rank = Four
	case '5':
		rank = Five
	case '6':
		rank = Six
	case '7':
		rank = Seven
	case '8':
		rank = Eight
	case '9':
		rank = Nine
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	default:
		return CardID{}, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit Suit
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return CardID{}, fmt.Errorf("invalid suit: %c", s[1])
	}

	if s[2] < '0' || s[2] > '9' {
		return CardID{}, fmt.Errorf("invalid deck index: %c", s[2])
	}

	return CardID{Suit: suit, Rank: rank, Deck: s[2] - '0'}, nil
}
