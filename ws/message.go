package ws

import (
	"encoding/json"

	"hiinakas-server/game"
)

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// AuthMsg is sent as the first message with a JWT when server auth is
// configured.
type AuthMsg struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// SetNameMsg declares a display name. Only accepted when server auth is not
// configured (local play); the server assigns the player uid.
type SetNameMsg struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// LobbyMsg addresses one session: join, ready, leave, start.
type LobbyMsg struct {
	Type string `json:"type"`
	UID  string `json:"uid"`
}

// LobbyMaxPlayersMsg changes a lobby's seat count before the game starts.
type LobbyMaxPlayersMsg struct {
	Type       string `json:"type"`
	UID        string `json:"uid"`
	MaxPlayers int    `json:"maxPlayers"`
}

// LobbyInviteMsg asks the server to forward an invite to another player.
type LobbyInviteMsg struct {
	Type        string `json:"type"`
	UID         string `json:"uid"`
	ToPlayerUID string `json:"toPlayerUid"`
}

// GameTurnReqMsg carries one action request into a session. The acting seat
// is the connection's identity; CardID is required only for PLAY_CARD.
type GameTurnReqMsg struct {
	Type   string          `json:"type"`
	UID    string          `json:"uid"`
	Action game.GameAction `json:"action"`
	CardID string          `json:"cardId,omitempty"`
}

// --- Server-to-Client messages ---

// ErrorMsg is sent when a client message is invalid.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// IdentityMsg confirms the connection's player identity.
type IdentityMsg struct {
	Type string `json:"type"`
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// LobbyStartPendingMsg tells the requester the lobby is not ready yet.
type LobbyStartPendingMsg struct {
	Type    string `json:"type"`
	UID     string `json:"uid"`
	Message string `json:"message"`
}

// LobbyInviteOutMsg is the invite delivered to the target player.
type LobbyInviteOutMsg struct {
	Type     string `json:"type"`
	UID      string `json:"uid"`
	FromName string `json:"fromName"`
}
