package protocol

import "doubleklondike/internal/klondike"

// CardView is one card on the wire
type CardView struct {
	ID     string `json:"id"`
	Rank   string `json:"rank"`
	Suit   string `json:"suit"`
	FaceUp bool   `json:"face_up"`
}

// GameStateData is the full snapshot sent after every request. Piles are
// ordered as the engine orders them: stock front first, waste top first,
// foundations and tableau bottom to top.
type GameStateData struct {
	GameID      string       `json:"game_id"`
	Seed        int64        `json:"seed"`
	Stock       []CardView   `json:"stock"`
	Waste       []CardView   `json:"waste"`
	Foundations [][]CardView `json:"foundations"`
	Tableau     [][]CardView `json:"tableau"`
	Won         bool         `json:"won"`
	Moves       int          `json:"moves"`
	CanUndo     bool         `json:"can_undo"`

	// Note explains why the request that produced this snapshot was
	// rejected; empty when the request applied.
	Note string `json:"note,omitempty"`
}

// NewCardView converts an engine card to its wire form
func NewCardView(c klondike.Card) CardView {
	return CardView{
		ID:     c.ID().String(),
		Rank:   c.Rank.String(),
		Suit:   c.Suit.String(),
		FaceUp: c.FaceUp,
	}
}

// NewGameStateData builds the snapshot view. Empty piles marshal as [],
// never null, so clients can index without guarding.
func NewGameStateData(gameID string, s klondike.GameState, moves int, note string) GameStateData {
	data := GameStateData{
		GameID:      gameID,
		Seed:        s.Seed,
		Stock:       pileView(s.Stock),
		Waste:       pileView(s.Waste),
		Foundations: make([][]CardView, len(s.Foundations)),
		Tableau:     make([][]CardView, len(s.Tableau)),
		Won:         s.Won(),
		Moves:       moves,
		CanUndo:     moves > 0,
		Note:        note,
	}
	for i, f := range s.Foundations {
		data.Foundations[i] = pileView(f)
	}
	for i, t := range s.Tableau {
		data.Tableau[i] = pileView(t)
	}
	return data
}

func pileView(pile []klondike.Card) []CardView {
	out := make([]CardView, len(pile))
	for i, c := range pile {
		out[i] = NewCardView(c)
	}
	return out
}
