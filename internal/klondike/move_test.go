package klondike

import (
	"errors"
	"reflect"
	"testing"
)

func TestMoveFoundationAceThenTwo(t *testing.T) {
	t.Parallel()
	var s GameState
	s.Waste = pileOf("2h0")
	s.Tableau[0] = pileOf("Ah0")

	// A two cannot start a foundation.
	_, err := s.Move(
		PileRef{Kind: PileWaste},
		PileRef{Kind: PileFoundation, Index: 0},
		CardID{Suit: Hearts, Rank: Two, Deck: 0},
	)
	if !errors.Is(err, ErrFoundationRefused) {
		t.Fatalf("2h onto empty foundation: err = %v, want ErrFoundationRefused", err)
	}

	s1, err := s.Move(
		PileRef{Kind: PileTableau, Index: 0},
		PileRef{Kind: PileFoundation, Index: 0},
		CardID{Suit: Hearts, Rank: Ace, Deck: 0},
	)
	if err != nil {
		t.Fatalf("ace onto empty foundation: %v", err)
	}

	s2, err := s1.Move(
		PileRef{Kind: PileWaste},
		PileRef{Kind: PileFoundation, Index: 0},
		CardID{Suit: Hearts, Rank: Two, Deck: 0},
	)
	if err != nil {
		t.Fatalf("2h onto ace: %v", err)
	}

	want := pileOf("Ah0", "2h0")
	if !reflect.DeepEqual(s2.Foundations[0], want) {
		t.Errorf("foundation = %v, want %v", s2.Foundations[0], want)
	}
	if len(s2.Waste) != 0 || len(s2.Tableau[0]) != 0 {
		t.Error("source piles should be empty after both moves")
	}
}

func TestMoveSequenceGroup(t *testing.T) {
	t.Parallel()
	var s GameState
	s.Tableau[0] = []Card{faceDown("Kd1"), mustCard("8s0"), mustCard("7h0"), mustCard("6c0")}
	s.Tableau[1] = pileOf("9d0")
	before := deepCopy(s)

	got, err := s.Move(
		PileRef{Kind: PileTableau, Index: 0},
		PileRef{Kind: PileTableau, Index: 1},
		CardID{Suit: Spades, Rank: Eight, Deck: 0},
	)
	if err != nil {
		t.Fatalf("group move: %v", err)
	}

	want := pileOf("9d0", "8s0", "7h0", "6c0")
	if !reflect.DeepEqual(got.Tableau[1], want) {
		t.Errorf("destination = %v, want %v (relative order preserved)", got.Tableau[1], want)
	}

	// The exposed card flips face up in the same transition.
	if len(got.Tableau[0]) != 1 || !got.Tableau[0][0].FaceUp {
		t.Errorf("source pile = %v, want exposed Kd1 face up", got.Tableau[0])
	}
	if got.Tableau[0][0].ID() != (CardID{Suit: Diamonds, Rank: King, Deck: 1}) {
		t.Errorf("exposed card = %v, want Kd1", got.Tableau[0][0])
	}

	// The input snapshot is untouched.
	if !reflect.DeepEqual(s, before) {
		t.Error("input state changed")
	}
}

func TestMoveNoFlipWhenTopAlreadyFaceUp(t *testing.T) {
	t.Parallel()
	var s GameState
	s.Tableau[0] = pileOf("9d0", "8s0")
	s.Tableau[1] = pileOf("9h0")

	got, err := s.Move(
		PileRef{Kind: PileTableau, Index: 0},
		PileRef{Kind: PileTableau, Index: 1},
		CardID{Suit: Spades, Rank: Eight, Deck: 0},
	)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !reflect.DeepEqual(got.Tableau[0], pileOf("9d0")) {
		t.Errorf("source = %v, want just 9d0 face up", got.Tableau[0])
	}
}

func TestMoveWasteToTableau(t *testing.T) {
	t.Parallel()
	var s GameState
	s.Waste = pileOf("6h0", "Js1")
	s.Tableau[0] = pileOf("7s0")

	got, err := s.Move(
		PileRef{Kind: PileWaste},
		PileRef{Kind: PileTableau, Index: 0},
		CardID{Suit: Hearts, Rank: Six, Deck: 0},
	)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !reflect.DeepEqual(got.Waste, pileOf("Js1")) {
		t.Errorf("waste = %v, want just Js1", got.Waste)
	}
	if !reflect.DeepEqual(got.Tableau[0], pileOf("7s0", "6h0")) {
		t.Errorf("tableau = %v, want 7s0 then 6h0", got.Tableau[0])
	}
}

func TestMoveFoundationToTableau(t *testing.T) {
	t.Parallel()
	var s GameState
	s.Foundations[0] = pileOf("Ah0", "2h0", "3h0")
	s.Tableau[1] = pileOf("4s0")

	got, err := s.Move(
		PileRef{Kind: PileFoundation, Index: 0},
		PileRef{Kind: PileTableau, Index: 1},
		CardID{Suit: Hearts, Rank: Three, Deck: 0},
	)
	if err != nil {
		t.Fatalf("move back from foundation: %v", err)
	}
	if !reflect.DeepEqual(got.Foundations[0], pileOf("Ah0", "2h0")) {
		t.Errorf("foundation = %v, want Ah0 2h0", got.Foundations[0])
	}
	if !reflect.DeepEqual(got.Tableau[1], pileOf("4s0", "3h0")) {
		t.Errorf("tableau = %v, want 4s0 3h0", got.Tableau[1])
	}
}

func TestMoveKingGroupToEmptyPile(t *testing.T) {
	t.Parallel()
	var s GameState
	s.Tableau[0] = []Card{faceDown("2c1"), mustCard("Ks0"), mustCard("Qh0")}

	got, err := s.Move(
		PileRef{Kind: PileTableau, Index: 0},
		PileRef{Kind: PileTableau, Index: 2},
		CardID{Suit: Spades, Rank: King, Deck: 0},
	)
	if err != nil {
		t.Fatalf("king group to empty pile: %v", err)
	}
	if !reflect.DeepEqual(got.Tableau[2], pileOf("Ks0", "Qh0")) {
		t.Errorf("destination = %v, want Ks0 Qh0", got.Tableau[2])
	}
	if len(got.Tableau[0]) != 1 || !got.Tableau[0][0].FaceUp {
		t.Errorf("source = %v, want exposed 2c1 face up", got.Tableau[0])
	}
}

func TestMoveRejections(t *testing.T) {
	t.Parallel()
	var s GameState
	s.Waste = pileOf("5d0", "9c1")
	s.Foundations[0] = pileOf("Ah0", "2h0")
	s.Tableau[0] = []Card{faceDown("Kd1"), mustCard("8s0"), mustCard("7h0")}
	s.Tableau[1] = pileOf("9d0")

	id := func(text string) CardID {
		cid, err := ParseCardID(text)
		if err != nil {
			panic(err)
		}
		return cid
	}

	tests := []struct {
		name    string
		src     PileRef
		dst     PileRef
		card    CardID
		wantErr error
	}{
		{
			name:    "card absent from source pile",
			src:     PileRef{Kind: PileWaste},
			dst:     PileRef{Kind: PileTableau, Index: 1},
			card:    id("Qs1"),
			wantErr: ErrCardNotFound,
		},
		{
			name:    "buried waste card",
			src:     PileRef{Kind: PileWaste},
			dst:     PileRef{Kind: PileTableau, Index: 1},
			card:    id("9c1"),
			wantErr: ErrCardNotMovable,
		},
		{
			name:    "face-down tableau card",
			src:     PileRef{Kind: PileTableau, Index: 0},
			dst:     PileRef{Kind: PileTableau, Index: 2},
			card:    id("Kd1"),
			wantErr: ErrCardNotMovable,
		},
		{
			name:    "buried foundation card lifts a broken run",
			src:     PileRef{Kind: PileFoundation, Index: 0},
			dst:     PileRef{Kind: PileTableau, Index: 1},
			card:    id("Ah0"),
			wantErr: ErrBadSequence,
		},
		{
			name:    "multi-card group to foundation",
			src:     PileRef{Kind: PileTableau, Index: 0},
			dst:     PileRef{Kind: PileFoundation, Index: 1},
			card:    id("8s0"),
			wantErr: ErrFoundationRefused,
		},
		{
			name:    "foundation refuses wrong card",
			src:     PileRef{Kind: PileWaste},
			dst:     PileRef{Kind: PileFoundation, Index: 0},
			card:    id("5d0"),
			wantErr: ErrFoundationRefused,
		},
		{
			name:    "tableau refuses rank gap",
			src:     PileRef{Kind: PileWaste},
			dst:     PileRef{Kind: PileTableau, Index: 1},
			card:    id("5d0"),
			wantErr: ErrTableauRefused,
		},
		{
			name:    "non-king to empty tableau",
			src:     PileRef{Kind: PileWaste},
			dst:     PileRef{Kind: PileTableau, Index: 2},
			card:    id("5d0"),
			wantErr: ErrTableauRefused,
		},
		{
			name:    "source index out of range",
			src:     PileRef{Kind: PileTableau, Index: NumTableau},
			dst:     PileRef{Kind: PileTableau, Index: 1},
			card:    id("8s0"),
			wantErr: ErrBadPile,
		},
		{
			name:    "destination index out of range",
			src:     PileRef{Kind: PileWaste},
			dst:     PileRef{Kind: PileFoundation, Index: NumFoundations},
			card:    id("5d0"),
			wantErr: ErrBadPile,
		},
		{
			name:    "negative destination index",
			src:     PileRef{Kind: PileWaste},
			dst:     PileRef{Kind: PileTableau, Index: -1},
			card:    id("5d0"),
			wantErr: ErrBadPile,
		},
		{
			name:    "waste is not a destination",
			src:     PileRef{Kind: PileTableau, Index: 0},
			dst:     PileRef{Kind: PileWaste},
			card:    id("8s0"),
			wantErr: ErrBadPile,
		},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			before := deepCopy(s)

			got, err := s.Move(tc.src, tc.dst, tc.card)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if !reflect.DeepEqual(got, s) {
				t.Error("rejected move should return the input state")
			}
			if !reflect.DeepEqual(s, before) {
				t.Error("rejected move modified the input state")
			}

			// Rejection is idempotent: same arguments, same outcome.
			again, err2 := s.Move(tc.src, tc.dst, tc.card)
			if !errors.Is(err2, tc.wantErr) || !reflect.DeepEqual(again, got) {
				t.Error("second rejection differs from the first")
			}
		})
	}
}

func TestMoveLeavesHistoryIntact(t *testing.T) {
	t.Parallel()
	var s0 GameState
	s0.Tableau[0] = []Card{faceDown("Ad1"), mustCard("Ts0"), mustCard("9h0"), mustCard("8c0")}
	s0.Tableau[1] = pileOf("Jd0")
	s0.Waste = pileOf("7d0", "Th1")
	copy0 := deepCopy(s0)

	s1, err := s0.Move(
		PileRef{Kind: PileTableau, Index: 0},
		PileRef{Kind: PileTableau, Index: 1},
		CardID{Suit: Spades, Rank: Ten, Deck: 0},
	)
	if err != nil {
		t.Fatalf("first move: %v", err)
	}
	copy1 := deepCopy(s1)

	s2, err := s1.Move(
		PileRef{Kind: PileWaste},
		PileRef{Kind: PileTableau, Index: 1},
		CardID{Suit: Diamonds, Rank: Seven, Deck: 0},
	)
	if err != nil {
		t.Fatalf("second move: %v", err)
	}

	// Older snapshots survive later transitions byte for byte.
	if !reflect.DeepEqual(s0, copy0) {
		t.Error("first snapshot corrupted by later moves")
	}
	if !reflect.DeepEqual(s1, copy1) {
		t.Error("second snapshot corrupted by a later move")
	}
	want := pileOf("Jd0", "Ts0", "9h0", "8c0", "7d0")
	if !reflect.DeepEqual(s2.Tableau[1], want) {
		t.Errorf("final pile = %v, want %v", s2.Tableau[1], want)
	}
}

func TestPileKindRoundTrip(t *testing.T) {
	t.Parallel()
	for _, k := range []PileKind{PileWaste, PileFoundation, PileTableau} {
		parsed, err := ParsePileKind(k.String())
		if err != nil {
			t.Errorf("ParsePileKind(%q): %v", k, err)
		}
		if parsed != k {
			t.Errorf("round trip failed for %q", k)
		}
	}
	if _, err := ParsePileKind("stock"); err == nil {
		t.Error("stock is not a movable pile kind")
	}
}
