package klondike

import (
	"errors"
	"fmt"
)

// Move rejection reasons. A rejected transition returns the input state
// unchanged alongside one of these, so callers may branch on errors.Is or
// compare states; both observe the same outcome.
var (
	ErrBadPile           = errors.New("no such pile")
	ErrCardNotFound      = errors.New("card not in source pile")
	ErrCardNotMovable    = errors.New("card may not move from there")
	ErrBadSequence       = errors.New("cards do not form a movable run")
	ErrFoundationRefused = errors.New("foundation refuses the card")
	ErrTableauRefused    = errors.New("tableau pile refuses the cards")
	ErrNothingToDraw     = errors.New("stock and waste are both empty")
)

// PileKind names one of the pile families a move may touch
type PileKind uint8

const (
	PileWaste PileKind = iota
	PileFoundation
	PileTableau
)

// String returns the wire name of the pile kind
func (k PileKind) String() string {
	switch k {
	case PileWaste:
		return "waste"
	case PileFoundation:
		return "foundation"
	case PileTableau:
		return "tableau"
	default:
		return "unknown"
	}
}

// ParsePileKind parses a wire name ("waste", "foundation", "tableau")
func ParsePileKind(s string) (PileKind, error) {
	switch s {
	case "waste":
		return PileWaste, nil
	case "foundation":
		return PileFoundation, nil
	case "tableau":
		return PileTableau, nil
	default:
		return 0, fmt.Errorf("invalid pile kind %q", s)
	}
}

// PileRef addresses a single pile. Index is meaningful for foundations
// (0..7) and tableau piles (0..8) and ignored for the waste.
type PileRef struct {
	Kind  PileKind
	Index int
}

// String returns a readable form like "tableau[3]" or "waste"
func (p PileRef) String() string {
	if p.Kind == PileWaste {
		return p.Kind.String()
	}
	return fmt.Sprintf("%s[%d]", p.Kind, p.Index)
}

// Move transfers the group identified by id from src to dst and returns
// the resulting snapshot. The group is a single card from the waste or a
// foundation top, or the contiguous face-up run from the matched card to
// the top of a tableau pile. Moving a tableau group exposes at most one
// face-down card, which flips face up in the same transition.
//
// On rejection the returned state is s itself, untouched.
func (s GameState) Move(src PileRef, dst PileRef, id CardID) (GameState, error) {
	group, remain, err := s.liftGroup(src, id)
	if err != nil {
		return s, err
	}
	if !SequenceIsValid(group) {
		return s, ErrBadSequence
	}

	switch dst.Kind {
	case PileFoundation:
		if dst.Index < 0 || dst.Index >= NumFoundations {
			return s, ErrBadPile
		}
		// Foundations take exactly one card at a time.
		if len(group) != 1 || !FoundationAccepts(group[0], s.Foundations[dst.Index]) {
			return s, ErrFoundationRefused
		}
	case PileTableau:
		if dst.Index < 0 || dst.Index >= NumTableau {
			return s, ErrBadPile
		}
		if !TableauAcceptsSequence(group, s.Tableau[dst.Index]) {
			return s, ErrTableauRefused
		}
	default:
		return s, ErrBadPile
	}

	out := s
	switch src.Kind {
	case PileWaste:
		out.Waste = remain
	case PileFoundation:
		out.Foundations[src.Index] = remain
	case PileTableau:
		if n := len(remain); n > 0 && !remain[n-1].FaceUp {
			flipped := make([]Card, n)
			copy(flipped, remain)
			flipped[n-1].FaceUp = true
			remain = flipped
		}
		out.Tableau[src.Index] = remain
	}
	switch dst.Kind {
	case PileFoundation:
		out.Foundations[dst.Index] = pushCards(s.Foundations[dst.Index], group...)
	case PileTableau:
		out.Tableau[dst.Index] = pushCards(s.Tableau[dst.Index], group...)
	}
	return out, nil
}

// liftGroup locates the moving group for id in the source pile and splits
// the pile into the group and what remains beneath it. Neither returned
// slice is safe to grow in place; Move copies the group on placement and
// only ever reassigns remain.
func (s GameState) liftGroup(src PileRef, id CardID) (group, remain []Card, err error) {
	var pile []Card
	switch src.Kind {
	case PileWaste:
		pile = s.Waste
	case PileFoundation:
		if src.Index < 0 || src.Index >= NumFoundations {
			return nil, nil, ErrBadPile
		}
		pile = s.Foundations[src.Index]
	case PileTableau:
		if src.Index < 0 || src.Index >= NumTableau {
			return nil, nil, ErrBadPile
		}
		pile = s.Tableau[src.Index]
	default:
		return nil, nil, ErrBadPile
	}

	at := -1
	for i, c := range pile {
		if c.ID() == id {
			at = i
			break
		}
	}
	if at == -1 {
		return nil, nil, ErrCardNotFound
	}

	switch src.Kind {
	case PileWaste:
		// Only the front waste card may move.
		if at != 0 {
			return nil, nil, ErrCardNotMovable
		}
		group = pile[:1]
	default:
		// The group runs from the matched card to the pile top. A match on
		// a face-down tableau card is buried and cannot move. A buried
		// foundation match yields a same-suit ascending suffix, which the
		// sequence check rejects.
		if src.Kind == PileTableau && !pile[at].FaceUp {
			return nil, nil, ErrCardNotMovable
		}
		group = pile[at:]
	}

	if src.Kind == PileWaste {
		remain = pile[1:]
	} else {
		remain = pile[:at]
	}
	if len(remain) == 0 {
		remain = nil
	}
	return group, remain, nil
}
