package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"doubleklondike/internal/klondike"
	"doubleklondike/internal/protocol"
	"doubleklondike/internal/session"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// Connection represents a WebSocket connection to a client. One
// connection may drive any number of games; every request names the
// game it addresses.
type Connection struct {
	conn      *websocket.Conn
	send      chan *protocol.Message
	logger    zerolog.Logger
	server    *Server
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger zerolog.Logger, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *protocol.Message, 256),
		logger: logger.With().Str("component", "conn").Logger(),
		server: server,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *protocol.Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug().Interface("recovered", r).Msg("Attempted to send on closed connection")
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn().Msg("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg protocol.Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error().Err(err).Msg("WebSocket error")
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error().Err(err).Msg("Failed to write message")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *protocol.Message) {
	c.logger.Debug().Str("type", string(msg.Type)).Msg("Received message")

	switch msg.Type {
	case protocol.MessageTypeNewGame:
		var data protocol.NewGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse new game data")
			return
		}
		c.handleNewGame(data)

	case protocol.MessageTypeMove:
		var data protocol.MoveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse move data")
			return
		}
		c.handleMove(data)

	case protocol.MessageTypeDraw:
		var data protocol.DrawData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse draw data")
			return
		}
		c.handleDraw(data)

	case protocol.MessageTypeUndo:
		var data protocol.UndoData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse undo data")
			return
		}
		c.handleUndo(data)

	case protocol.MessageTypeRestart:
		var data protocol.RestartData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse restart data")
			return
		}
		c.handleRestart(data)

	case protocol.MessageTypeAutoMove:
		var data protocol.AutoMoveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse auto move data")
			return
		}
		c.handleAutoMove(data)

	case protocol.MessageTypeGetState:
		var data protocol.GetStateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse get state data")
			return
		}
		c.handleGetState(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+string(msg.Type))
	}
}

// sendError sends an error message to the client. Errors cover failed
// requests only; a legal request the rules refuse comes back as a
// game_state whose note explains the refusal.
func (c *Connection) sendError(code, message string) {
	errorMsg, err := protocol.NewMessage(protocol.MessageTypeError, protocol.ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to create error message")
		return
	}

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}

// sendState sends the session's current snapshot, with an optional note
// explaining a rejected transition
func (c *Connection) sendState(sess *session.Session, note string) {
	state, moves := sess.Snapshot()
	response, err := protocol.NewMessage(protocol.MessageTypeGameState,
		protocol.NewGameStateData(sess.ID(), state, moves, note))
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to create state message")
		return
	}

	_ = c.SendMessage(response) // Ignore send errors
}

// lookup resolves a game id, reporting game_not_found to the client on
// a miss
func (c *Connection) lookup(gameID string) (*session.Session, bool) {
	sess, ok := c.server.sessions.Get(gameID)
	if !ok {
		c.sendError("game_not_found", "No such game: "+gameID)
	}
	return sess, ok
}

// checkInvariants validates the snapshot after an applied transition
// when the debug flag asks for it. A violation here is an engine bug,
// not a client mistake, so it is logged rather than returned.
func (c *Connection) checkInvariants(state klondike.GameState) {
	if !c.server.config.Game.ValidateAfterMove {
		return
	}
	if err := state.Validate(); err != nil {
		c.logger.Error().Err(err).Int64("seed", state.Seed).Msg("Invariant violation after transition")
	}
}

func (c *Connection) handleNewGame(data protocol.NewGameData) {
	sess, err := c.server.sessions.Create(data.Seed)
	if err != nil {
		c.sendError("create_failed", err.Error())
		return
	}

	c.server.stats.RecordGame()
	c.sendState(sess, "")
}

func (c *Connection) handleMove(data protocol.MoveData) {
	sess, ok := c.lookup(data.GameID)
	if !ok {
		return
	}

	src, err := data.Source.Ref()
	if err != nil {
		c.sendError("invalid_pile", err.Error())
		return
	}
	dst, err := data.Dest.Ref()
	if err != nil {
		c.sendError("invalid_pile", err.Error())
		return
	}
	id, err := klondike.ParseCardID(data.CardID)
	if err != nil {
		c.sendError("invalid_card", err.Error())
		return
	}

	state, err := sess.Move(src, dst, id)
	if err != nil {
		c.server.stats.RecordRejection()
		c.sendState(sess, err.Error())
		return
	}

	c.server.stats.RecordMove()
	c.checkInvariants(state)
	if state.Won() {
		c.server.stats.RecordWin()
		c.logger.Info().Str("game_id", sess.ID()).Int64("seed", sess.Seed()).Msg("Game won")
	}
	c.sendState(sess, "")
}

func (c *Connection) handleDraw(data protocol.DrawData) {
	sess, ok := c.lookup(data.GameID)
	if !ok {
		return
	}

	state, err := sess.Draw()
	if err != nil {
		c.server.stats.RecordRejection()
		c.sendState(sess, err.Error())
		return
	}

	c.server.stats.RecordDraw()
	c.checkInvariants(state)
	c.sendState(sess, "")
}

func (c *Connection) handleUndo(data protocol.UndoData) {
	sess, ok := c.lookup(data.GameID)
	if !ok {
		return
	}

	state, err := sess.Undo()
	if err != nil {
		c.server.stats.RecordRejection()
		c.sendState(sess, err.Error())
		return
	}

	c.server.stats.RecordUndo()
	c.checkInvariants(state)
	c.sendState(sess, "")
}

func (c *Connection) handleRestart(data protocol.RestartData) {
	sess, ok := c.lookup(data.GameID)
	if !ok {
		return
	}

	state := sess.Restart()
	c.checkInvariants(state)
	c.sendState(sess, "")
}

func (c *Connection) handleAutoMove(data protocol.AutoMoveData) {
	sess, ok := c.lookup(data.GameID)
	if !ok {
		return
	}

	id, err := klondike.ParseCardID(data.CardID)
	if err != nil {
		c.sendError("invalid_card", err.Error())
		return
	}

	state, err := sess.AutoMove(id)
	if err != nil {
		c.server.stats.RecordRejection()
		c.sendState(sess, err.Error())
		return
	}

	c.server.stats.RecordMove()
	c.checkInvariants(state)
	if state.Won() {
		c.server.stats.RecordWin()
		c.logger.Info().Str("game_id", sess.ID()).Int64("seed", sess.Seed()).Msg("Game won")
	}
	c.sendState(sess, "")
}

func (c *Connection) handleGetState(data protocol.GetStateData) {
	sess, ok := c.lookup(data.GameID)
	if !ok {
		return
	}

	c.sendState(sess, "")
}
