// Package protocol defines the JSON messages exchanged with presentation
// clients over the websocket. Clients render state and translate input
// gestures into requests; every rule lives server-side in the engine.
package protocol

import (
	"encoding/json"

	"doubleklondike/internal/klondike"
)

// Message is the envelope for every WebSocket frame in both directions
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MessageType identifies the payload carried by a message
type MessageType string

// Client to Server message types
const (
	MessageTypeNewGame  MessageType = "new_game"
	MessageTypeMove     MessageType = "move"
	MessageTypeDraw     MessageType = "draw"
	MessageTypeUndo     MessageType = "undo"
	MessageTypeRestart  MessageType = "restart"
	MessageTypeAutoMove MessageType = "auto_move"
	MessageTypeGetState MessageType = "get_state"
)

// Server to Client message types
const (
	MessageTypeGameState MessageType = "game_state"
	MessageTypeError     MessageType = "error"
)

// NewMessage wraps a payload in a typed envelope
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: messageType, Data: dataBytes}, nil
}

// Client to Server payloads

// NewGameData asks for a fresh deal. A nil seed lets the server pick one;
// the reply carries whichever seed was used.
type NewGameData struct {
	Seed *int64 `json:"seed,omitempty"`
}

// PileRefData addresses one pile on the wire
type PileRefData struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
}

// Ref converts the wire form into an engine pile reference
func (p PileRefData) Ref() (klondike.PileRef, error) {
	kind, err := klondike.ParsePileKind(p.Kind)
	if err != nil {
		return klondike.PileRef{}, err
	}
	return klondike.PileRef{Kind: kind, Index: p.Index}, nil
}

// RefData converts an engine pile reference into its wire form
func RefData(ref klondike.PileRef) PileRefData {
	return PileRefData{Kind: ref.Kind.String(), Index: ref.Index}
}

// MoveData requests a card (or run) transfer between piles
type MoveData struct {
	GameID string      `json:"game_id"`
	Source PileRefData `json:"source"`
	Dest   PileRefData `json:"dest"`
	CardID string      `json:"card_id"`
}

// DrawData requests the stock toggle: draw a card, or recycle the waste
// when the stock is out
type DrawData struct {
	GameID string `json:"game_id"`
}

// UndoData requests a pop back to the previous snapshot
type UndoData struct {
	GameID string `json:"game_id"`
}

// RestartData requests a re-deal of the same seed, history cleared
type RestartData struct {
	GameID string `json:"game_id"`
}

// AutoMoveData asks the server to send a card to whichever foundation
// accepts it, the double-click shortcut
type AutoMoveData struct {
	GameID string `json:"game_id"`
	CardID string `json:"card_id"`
}

// GetStateData asks for the current snapshot without changing anything
type GetStateData struct {
	GameID string `json:"game_id"`
}

// Server to Client payloads

// ErrorData reports a failed request: unknown game, malformed payload.
// Rejected moves are not errors; they come back as a game_state whose
// Note explains the rejection.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
