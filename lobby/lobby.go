package lobby

import (
	"sync"

	"hiinakas-server/game"
)

// Seat is one participant slot in a lobby.
type Seat struct {
	UID   string
	Name  string
	Ready bool
}

// PublicSeat is the client-facing view of a seat. UID is the opaque hash.
type PublicSeat struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Owner bool   `json:"owner"`
}

// Lobby is one matchmaking/staging room. It owns its seats and at most one
// live game instance. All mutation goes through mu: a lobby is the unit of
// serialization, different lobbies never share state.
type Lobby struct {
	uid        string
	mu         sync.Mutex
	seats      map[string]*Seat
	order      []string
	maxPlayers int
	ownerUID   string
	instance   *game.Instance

	// turnGen invalidates pending turn timers whenever the turn advances.
	turnGen     int
	timerCancel chan struct{}
}

func newLobby(uid string, maxPlayers int) *Lobby {
	return &Lobby{
		uid:        uid,
		seats:      make(map[string]*Seat),
		maxPlayers: maxPlayers,
	}
}

// UID returns the session id.
func (l *Lobby) UID() string { return l.uid }

// addSeat attaches a player; the first joiner becomes the owner and is
// auto-readied. Rejoining under the same uid refreshes the name. Caller
// holds mu.
func (l *Lobby) addSeat(uid, name string) bool {
	if seat, ok := l.seats[uid]; ok {
		seat.Name = name
		return true
	}
	if len(l.seats) >= l.maxPlayers {
		return false
	}
	seat := &Seat{UID: uid, Name: name}
	if len(l.seats) == 0 {
		l.ownerUID = uid
		seat.Ready = true
	}
	l.seats[uid] = seat
	l.order = append(l.order, uid)
	return true
}

// removeSeat detaches a player. Caller holds mu.
func (l *Lobby) removeSeat(uid string) {
	if _, ok := l.seats[uid]; !ok {
		return
	}
	delete(l.seats, uid)
	for i, id := range l.order {
		if id == uid {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// seatList returns the seats in join order. Caller holds mu.
func (l *Lobby) seatList() []*Seat {
	out := make([]*Seat, 0, len(l.order))
	for _, uid := range l.order {
		out = append(out, l.seats[uid])
	}
	return out
}

// publicSeats projects the seat map into the client-facing list. Caller
// holds mu.
func (l *Lobby) publicSeats() []PublicSeat {
	out := make([]PublicSeat, 0, len(l.order))
	for _, seat := range l.seatList() {
		out = append(out, PublicSeat{
			UID:   game.HashUID(seat.UID),
			Name:  seat.Name,
			Ready: seat.Ready,
			Owner: seat.UID == l.ownerUID,
		})
	}
	return out
}

// isReady reports whether the lobby is full and every seat is ready.
// Caller holds mu.
func (l *Lobby) isReady() bool {
	if len(l.seats) != l.maxPlayers {
		return false
	}
	for _, seat := range l.seats {
		if !seat.Ready {
			return false
		}
	}
	return true
}

// startInstance creates the game instance once; repeated calls return the
// existing one. Caller holds mu.
func (l *Lobby) startInstance() *game.Instance {
	if l.instance == nil {
		players := make([]*game.Player, 0, len(l.order))
		for _, seat := range l.seatList() {
			players = append(players, game.NewPlayer(seat.UID, seat.Name))
		}
		l.instance = game.NewInstance(players)
	}
	return l.instance
}

// cancelTurnTimer stops any pending turn timer. Caller holds mu.
func (l *Lobby) cancelTurnTimer() {
	l.turnGen++
	if l.timerCancel != nil {
		close(l.timerCancel)
		l.timerCancel = nil
	}
}
