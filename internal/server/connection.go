package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/gravitas-games/gridstash/internal/network"
	"github.com/gravitas-games/gridstash/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Time allowed for loading or saving a stash
	storeTimeout = 5 * time.Second
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	// WebSocket connection
	ws *websocket.Conn

	// Server reference
	server *Server

	// Player information (set after authentication)
	player *models.Player

	// Live inventory, set after join. Only the read pump touches it.
	stash *Stash

	// Buffered channel for outbound messages
	send   chan []byte
	sendMu sync.Mutex
	closed bool

	// Is connection authenticated
	authenticated bool

	log logrus.FieldLogger
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:     ws,
		server: server,
		send:   make(chan []byte, 256),
		log:    server.log,
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	// Set up connection parameters
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Start read and write pumps
	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the player's
// stash. Messages are handled one at a time, in order.
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		// Read message
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("websocket read error")
			}
			break
		}

		// Parse message
		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.log.WithError(err).Debug("failed to parse client message")
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		// Handle message based on type
		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Write message
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.WithError(err).Warn("websocket write error")
				return
			}

		case <-ticker.C:
			// Send ping
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	c.log.WithField("type", msg.Type).Trace("received message")

	switch msg.Type {
	case network.MsgTypeJoin:
		c.handleJoin()

	case network.MsgTypeLeave:
		c.handleLeave()

	case network.MsgTypePing:
		c.handlePing()

	case network.MsgTypePointer, network.MsgTypeEquip, network.MsgTypeUnequip,
		network.MsgTypePickup, network.MsgTypeDiscard, network.MsgTypeState:
		if c.stash == nil {
			c.SendError("not_joined", "Join before using the inventory")
			return
		}
		c.handleInventory(msg)

	default:
		c.log.WithField("type", msg.Type).Debug("unknown message type")
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// handleJoin loads the player's stash and adds them to the session
func (c *Connection) handleJoin() {
	if !c.authenticated || c.player == nil {
		c.SendError("not_authenticated", "Connection not authenticated")
		return
	}
	if c.stash != nil {
		c.SendError("already_joined", "Already joined")
		return
	}

	srv := c.server
	stash, err := NewStash(c.player.Stash(), srv.config.Inventory, srv.catalog, srv.store, c, c.log)
	if err != nil {
		c.log.WithError(err).Error("failed to create stash")
		c.SendError("join_failed", "Failed to create inventory")
		return
	}

	ctx, cancel := context.WithTimeout(srv.ctx, storeTimeout)
	rep, err := stash.Load(ctx)
	cancel()
	if err != nil {
		c.log.WithError(err).Error("failed to load stash")
		c.SendError("join_failed", "Failed to load inventory")
		return
	}

	// Update player connection state
	c.player.Connected = true
	c.player.ConnectedAt = time.Now()
	c.player.SessionID = srv.session.ID

	if err := srv.session.AddPlayer(c.player, stash); err != nil {
		c.log.WithError(err).Warn("failed to add player to session")
		c.SendError("join_failed", err.Error())
		return
	}
	c.stash = stash

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			PlayerID:  c.player.ID,
			Username:  c.player.Username,
			SessionID: srv.session.ID,
			Catalog:   catalogEntries(srv.catalog),
			Layout:    layoutPayload(srv.config.Inventory),
			State:     stash.State(),
			Skipped:   len(rep.Skipped),
			Session:   srv.session.GetStatus().payload(),
		},
	})
}

// handleLeave saves the stash and removes the player from the session
func (c *Connection) handleLeave() {
	if c.player == nil || c.stash == nil {
		return
	}
	stash := c.server.session.RemovePlayer(c.player.ID)
	if stash == nil {
		stash = c.stash
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := stash.Save(ctx); err != nil {
		c.log.WithError(err).Error("failed to save stash")
	}
	c.stash = nil
	c.player.Connected = false
	c.player.LastSeen = time.Now()
}

// handleInventory applies one inventory request to the stash
func (c *Connection) handleInventory(msg *network.ClientMessage) {
	var err error
	switch msg.Type {
	case network.MsgTypePointer:
		var p network.PointerPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			c.stash.Pointer(p)
			return
		}

	case network.MsgTypeEquip:
		var p network.EquipPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = c.stash.Equip(p.Item)
		}

	case network.MsgTypeUnequip:
		var p network.UnequipPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = c.stash.Unequip(p.Category)
		}

	case network.MsgTypePickup:
		var p network.PickupPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			_, err = c.stash.Pickup(p.ItemID)
		}

	case network.MsgTypeDiscard:
		var p network.DiscardPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = c.stash.Discard(p.Item)
		}

	case network.MsgTypeState:
		c.SendMessage(&network.ServerMessage{Type: network.MsgTypeStateSnapshot, Payload: c.stash.State()})
		return
	}

	if err != nil {
		c.log.WithError(err).WithField("type", msg.Type).Debug("inventory request rejected")
		c.SendError(errorCode(err), err.Error())
	}
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.WithError(err).Error("failed to marshal message")
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close saves the player's stash and closes the connection. It runs on the
// read pump once the socket stops delivering messages.
func (c *Connection) Close() {
	c.handleLeave()
	c.closeSend()
	c.ws.Close()
}

// closeSend stops accepting outbound messages. The write pump flushes what is
// already queued, sends a close frame and closes the socket.
func (c *Connection) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
