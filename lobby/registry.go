package lobby

import (
	"encoding/json"
	"log/slog"
	"sync"

	"hiinakas-server/config"
	"hiinakas-server/game"
	"hiinakas-server/lobbyerrors"
)

// Sender routes an encoded message to one seat's connection. Implemented by
// the ws hub; test doubles use plain channels.
type Sender interface {
	SendToPlayer(uid string, data []byte)
}

// SeatResult is one seat's outcome in a concluded game.
type SeatResult struct {
	UID  string
	Name string
	Won  bool
}

// ResultSink records concluded games. Optional; may be nil.
type ResultSink interface {
	RecordGameEnd(sessionUID string, winnerUID string, seats []SeatResult)
}

// StatusMsg announces the lobby's seat list.
type StatusMsg struct {
	Type    string       `json:"type"`
	UID     string       `json:"uid"`
	Players []PublicSeat `json:"players"`
}

// GameTurnMsg wraps one seat's snapshot of the session state.
type GameTurnMsg struct {
	Type     string        `json:"type"`
	UID      string        `json:"uid"`
	GameTurn game.GameTurn `json:"gameTurn"`
}

// Registry is the process-wide collection of active lobbies, keyed by
// session id. It is the single owner of every lobby; all access goes
// through a session id lookup.
type Registry struct {
	mu      sync.RWMutex
	lobbies map[string]*Lobby
	config  *config.Config
	sender  Sender
	results ResultSink
}

// NewRegistry creates an empty registry. results may be nil.
func NewRegistry(cfg *config.Config, sender Sender, results ResultSink) *Registry {
	return &Registry{
		lobbies: make(map[string]*Lobby),
		config:  cfg,
		sender:  sender,
		results: results,
	}
}

// Lobby returns the lobby for the session id, or nil.
func (r *Registry) Lobby(sessionUID string) *Lobby {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lobbies[sessionUID]
}

// Count returns the number of active lobbies.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lobbies)
}

// Join attaches a player to the session's lobby, creating the lobby on the
// first join (that joiner becomes owner and is auto-readied). The updated
// seat list is broadcast to every seat.
func (r *Registry) Join(sessionUID, playerUID, name string) error {
	for {
		r.mu.Lock()
		l, ok := r.lobbies[sessionUID]
		if !ok {
			l = newLobby(sessionUID, r.config.DefaultMaxPlayers)
			r.lobbies[sessionUID] = l
		}
		r.mu.Unlock()

		l.mu.Lock()
		// The lobby may have emptied out and been removed between the two
		// lock acquisitions; seating here would strand the player in a
		// detached lobby. Removal happens under l.mu, so a live check now
		// stays true for the rest of this critical section.
		r.mu.RLock()
		live := r.lobbies[sessionUID] == l
		r.mu.RUnlock()
		if !live {
			l.mu.Unlock()
			continue
		}
		if !l.addSeat(playerUID, name) {
			l.mu.Unlock()
			return lobbyerrors.ErrLobbyFull
		}
		seats := l.seatList()
		status := l.publicSeats()
		l.mu.Unlock()

		slog.Info("player joined", "tag", "lobby", "session", sessionUID, "player", name)
		r.broadcastStatus(sessionUID, seats, status)
		return nil
	}
}

// SetReady marks a seat ready and broadcasts the updated seat list.
func (r *Registry) SetReady(sessionUID, playerUID string) error {
	l := r.Lobby(sessionUID)
	if l == nil {
		return lobbyerrors.ErrLobbyNotFound
	}
	l.mu.Lock()
	seat, ok := l.seats[playerUID]
	if !ok {
		l.mu.Unlock()
		return lobbyerrors.ErrSeatNotFound
	}
	seat.Ready = true
	seats := l.seatList()
	status := l.publicSeats()
	l.mu.Unlock()

	r.broadcastStatus(sessionUID, seats, status)
	return nil
}

// IsReady reports whether the session's lobby is full and every seat ready.
func (r *Registry) IsReady(sessionUID string) bool {
	l := r.Lobby(sessionUID)
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isReady()
}

// SetMaxPlayers changes the lobby's target seat count. Owner only, 2-5,
// and only before the game starts or below the current seat count.
func (r *Registry) SetMaxPlayers(sessionUID, playerUID string, n int) error {
	l := r.Lobby(sessionUID)
	if l == nil {
		return lobbyerrors.ErrLobbyNotFound
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ownerUID != playerUID {
		return lobbyerrors.ErrNotOwner
	}
	if n < 2 || n > 5 || n < len(l.seats) {
		return lobbyerrors.ErrBadSeatCount
	}
	if l.instance != nil {
		return lobbyerrors.ErrNotReady
	}
	l.maxPlayers = n
	return nil
}

// Start instantiates the game for a ready lobby. Owner only. Idempotent:
// a second start on an already-initialized instance is a no-op.
func (r *Registry) Start(sessionUID, playerUID string) error {
	l := r.Lobby(sessionUID)
	if l == nil {
		return lobbyerrors.ErrLobbyNotFound
	}
	l.mu.Lock()
	if !l.isReady() {
		l.mu.Unlock()
		return lobbyerrors.ErrNotReady
	}
	if l.ownerUID != playerUID {
		l.mu.Unlock()
		return lobbyerrors.ErrNotOwner
	}
	inst := l.startInstance()
	if inst.Initialized() {
		l.mu.Unlock()
		return nil
	}
	inst.InitInstance()
	feedback := game.TurnFeedback{
		Action:  game.ActionInit,
		Message: game.GameMessage{Type: game.MessageInfo, Message: "Game started!"},
	}
	r.broadcastGameTurnLocked(l, feedback)
	r.restartTurnTimerLocked(l)
	l.mu.Unlock()

	slog.Info("game started", "tag", "lobby", "session", sessionUID, "instance", inst.UID())
	return nil
}

// Leave detaches a player. A lobby with no seats left is destroyed, along
// with any live instance. Destruction happens under l.mu so a concurrent
// Join cannot seat anyone in the removed lobby.
func (r *Registry) Leave(sessionUID, playerUID string) {
	l := r.Lobby(sessionUID)
	if l == nil {
		return
	}
	l.mu.Lock()
	l.removeSeat(playerUID)
	if len(l.seats) == 0 {
		l.cancelTurnTimer()
		l.instance = nil
		r.removeLobby(sessionUID)
		l.mu.Unlock()
		return
	}
	seats := l.seatList()
	status := l.publicSeats()
	l.mu.Unlock()

	r.broadcastStatus(sessionUID, seats, status)
}

func (r *Registry) removeLobby(sessionUID string) {
	r.mu.Lock()
	delete(r.lobbies, sessionUID)
	r.mu.Unlock()
	slog.Info("lobby removed", "tag", "lobby", "session", sessionUID)
}

// broadcastStatus sends the seat list to every seat in the lobby.
func (r *Registry) broadcastStatus(sessionUID string, seats []*Seat, status []PublicSeat) {
	msg := StatusMsg{Type: "lobby_status", UID: sessionUID, Players: status}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshaling lobby status", "tag", "lobby", "err", err)
		return
	}
	for _, seat := range seats {
		r.sender.SendToPlayer(seat.UID, data)
	}
}

// broadcastGameTurnLocked fans a fresh per-seat snapshot to every seat.
// Redaction happens inside GenerateGameTurn, per requesting seat. Caller
// holds l.mu.
func (r *Registry) broadcastGameTurnLocked(l *Lobby, feedback game.TurnFeedback) {
	for _, seat := range l.seatList() {
		turn := l.instance.GenerateGameTurn(seat.UID, feedback)
		msg := GameTurnMsg{Type: "game_turn", UID: l.uid, GameTurn: turn}
		data, err := json.Marshal(msg)
		if err != nil {
			slog.Error("marshaling game turn", "tag", "lobby", "err", err)
			continue
		}
		r.sender.SendToPlayer(seat.UID, data)
	}
}

// sendGameTurnToLocked sends a snapshot to a single seat (turn rejections).
// Caller holds l.mu.
func (r *Registry) sendGameTurnToLocked(l *Lobby, seatUID string, feedback game.TurnFeedback) {
	turn := l.instance.GenerateGameTurn(seatUID, feedback)
	msg := GameTurnMsg{Type: "game_turn", UID: l.uid, GameTurn: turn}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshaling game turn", "tag", "lobby", "err", err)
		return
	}
	r.sender.SendToPlayer(seatUID, data)
}
