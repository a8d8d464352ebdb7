package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"hiinakas-server/auth"
	"hiinakas-server/lobby"
	"hiinakas-server/lobbyerrors"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the lobby
// registry. UID is empty until the connection identifies itself.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
	UID  string
	Name string

	// SessionUID is the lobby the player last joined; used to vacate the
	// seat when the connection drops.
	SessionUID string
}

// ReadPump pumps messages from the websocket connection to the hub.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read", "tag", "ws", "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket
// connection. It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	switch envelope.Type {
	case "auth":
		c.handleAuth(envelope.Raw)
	case "set_name":
		c.handleSetName(envelope.Raw)
	case "lobby_join":
		c.handleLobbyJoin(envelope.Raw)
	case "lobby_ready":
		c.handleLobbyReady(envelope.Raw)
	case "lobby_leave":
		c.handleLobbyLeave(envelope.Raw)
	case "lobby_start":
		c.handleLobbyStart(envelope.Raw)
	case "lobby_max_players":
		c.handleLobbyMaxPlayers(envelope.Raw)
	case "lobby_invite":
		c.handleLobbyInvite(envelope.Raw)
	case "game_turn":
		c.handleGameTurn(envelope.Raw)
	default:
		c.sendError("Unknown message type: " + envelope.Type)
	}
}

// handleAuth identifies the connection from a validated JWT. Only available
// when an auth base URL is configured.
func (c *Client) handleAuth(raw json.RawMessage) {
	var msg AuthMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid auth message.")
		return
	}
	if c.Hub.Config.AuthBaseURL == "" {
		c.sendError("Server auth not configured.")
		return
	}
	claims, err := auth.ValidateToken(c.Hub.Config.AuthBaseURL, msg.Token)
	if err != nil {
		c.sendError("Authentication failed.")
		return
	}
	uid := auth.UserIDFromClaims(claims)
	if uid == "" {
		c.sendError("Authentication failed.")
		return
	}
	c.UID = uid
	c.Name = auth.NameFromClaims(claims)
	c.Hub.bindPlayer(uid, c)
	c.sendIdentity()
}

// handleSetName identifies the connection with a server-assigned uid; the
// local-play path when auth is not configured.
func (c *Client) handleSetName(raw json.RawMessage) {
	var msg SetNameMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid set_name message.")
		return
	}
	if c.Hub.Config.AuthBaseURL != "" {
		c.sendError("This server requires auth.")
		return
	}
	if len(msg.Name) < 1 || len(msg.Name) > c.Hub.Config.MaxNameLength {
		c.sendError("Invalid name length.")
		return
	}
	if c.UID == "" {
		c.UID = uuid.NewString()
	}
	c.Name = msg.Name
	c.Hub.bindPlayer(c.UID, c)
	c.sendIdentity()
}

func (c *Client) handleLobbyJoin(raw json.RawMessage) {
	var msg LobbyMsg
	if !c.decodeIdentified(raw, &msg) || msg.UID == "" {
		return
	}
	if err := c.Hub.Registry.Join(msg.UID, c.UID, c.Name); err != nil {
		c.sendError(err.Error())
		return
	}
	// A connection holds one seat at a time; moving to a new session
	// vacates the old one so it does not linger until disconnect.
	if c.SessionUID != "" && c.SessionUID != msg.UID {
		c.Hub.Registry.Leave(c.SessionUID, c.UID)
	}
	c.SessionUID = msg.UID
}

func (c *Client) handleLobbyReady(raw json.RawMessage) {
	var msg LobbyMsg
	if !c.decodeIdentified(raw, &msg) {
		return
	}
	if err := c.Hub.Registry.SetReady(msg.UID, c.UID); err != nil {
		c.sendError(err.Error())
	}
}

func (c *Client) handleLobbyLeave(raw json.RawMessage) {
	var msg LobbyMsg
	if !c.decodeIdentified(raw, &msg) {
		return
	}
	c.Hub.Registry.Leave(msg.UID, c.UID)
	if c.SessionUID == msg.UID {
		c.SessionUID = ""
	}
}

func (c *Client) handleLobbyStart(raw json.RawMessage) {
	var msg LobbyMsg
	if !c.decodeIdentified(raw, &msg) {
		return
	}
	err := c.Hub.Registry.Start(msg.UID, c.UID)
	switch {
	case err == nil:
	case err == lobbyerrors.ErrNotReady:
		c.send(LobbyStartPendingMsg{Type: "lobby_start", UID: msg.UID, Message: "Waiting players..."})
	default:
		c.sendError(err.Error())
	}
}

func (c *Client) handleLobbyMaxPlayers(raw json.RawMessage) {
	var msg LobbyMaxPlayersMsg
	if !c.decodeIdentified(raw, &msg) {
		return
	}
	if err := c.Hub.Registry.SetMaxPlayers(msg.UID, c.UID, msg.MaxPlayers); err != nil {
		c.sendError(err.Error())
	}
}

// handleLobbyInvite forwards an invite to the target player's connection.
// Pure routing; the lobby is not touched until the invitee joins.
func (c *Client) handleLobbyInvite(raw json.RawMessage) {
	var msg LobbyInviteMsg
	if !c.decodeIdentified(raw, &msg) {
		return
	}
	out, err := json.Marshal(LobbyInviteOutMsg{Type: "lobby_invite", UID: msg.UID, FromName: c.Name})
	if err != nil {
		return
	}
	c.Hub.SendToPlayer(msg.ToPlayerUID, out)
}

func (c *Client) handleGameTurn(raw json.RawMessage) {
	var msg GameTurnReqMsg
	if !c.decodeIdentified(raw, &msg) {
		return
	}
	c.Hub.Registry.HandleGameTurn(lobby.TurnRequest{
		SessionUID: msg.UID,
		PlayerUID:  c.UID,
		Action:     msg.Action,
		CardID:     msg.CardID,
	})
}

// decodeIdentified unmarshals raw into v and checks the connection has an
// identity. Sends an error to the client and returns false otherwise.
func (c *Client) decodeIdentified(raw json.RawMessage, v any) bool {
	if err := json.Unmarshal(raw, v); err != nil {
		c.sendError("Invalid message payload.")
		return false
	}
	if c.UID == "" {
		c.sendError("Identify first.")
		return false
	}
	return true
}

func (c *Client) sendIdentity() {
	c.send(IdentityMsg{Type: "identity", UID: c.UID, Name: c.Name})
}

func (c *Client) sendError(message string) {
	c.send(ErrorMsg{Type: "error", Message: message})
}

func (c *Client) send(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}
