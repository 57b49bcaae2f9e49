// Package klondike implements the rules of two-deck Klondike solitaire
// (Double Klondike) as pure functions over immutable GameState snapshots.
//
// The layout is nine tableau piles dealt 1..9 cards deep, eight foundations
// building Ace through King by suit, a face-down stock, and a face-up waste.
// Every transition returns a fresh snapshot and leaves its input untouched,
// so callers can retain any number of prior states for undo.
//
// # Determinism
//
// A deal is fully determined by its integer seed:
//
//	state := klondike.NewGame(42)
//
// always produces the same layout, card for card, because the shuffle is
// driven by a small seeded generator rather than any global random source.
// The seed is recorded on the state so a game can be reproduced later.
//
// # Transitions
//
// Moves and draws are value methods that either apply fully or reject:
//
//	next, err := state.Move(
//	    klondike.PileRef{Kind: klondike.PileWaste},
//	    klondike.PileRef{Kind: klondike.PileTableau, Index: 3},
//	    id,
//	)
//	if err != nil {
//	    // next equals state; nothing changed
//	}
//
// A rejected transition returns the input state and a sentinel error such
// as ErrTableauRefused. There is no partial application: a move updates
// the source pile, the destination pile, and at most one implicit card
// flip in the same snapshot, or not at all.
package klondike
