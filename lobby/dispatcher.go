package lobby

import (
	"log/slog"

	"hiinakas-server/game"
)

// TurnRequest is an inbound action request routed to a session.
type TurnRequest struct {
	SessionUID string
	PlayerUID  string
	Action     game.GameAction
	CardID     string
}

// HandleGameTurn validates and dispatches one action request. Requests for
// unknown sessions or seats are dropped (structural errors stay at this
// layer). A request from a seat that does not hold the turn is rejected to
// that seat only, with no state change. Accepted actions mutate the
// instance and fan a fresh snapshot to every seat.
func (r *Registry) HandleGameTurn(req TurnRequest) {
	l := r.Lobby(req.SessionUID)
	if l == nil {
		slog.Debug("turn request for unknown session", "tag", "game", "session", req.SessionUID)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	inst := l.instance
	if inst == nil {
		return
	}
	if _, ok := l.seats[req.PlayerUID]; !ok {
		return
	}

	if !inst.IsMyTurn(req.PlayerUID) {
		r.sendGameTurnToLocked(l, req.PlayerUID, game.TurnFeedback{
			Action:  req.Action,
			Message: game.GameMessage{Type: game.MessageError, Message: "It's not your turn"},
		})
		return
	}

	switch req.Action {
	case game.ActionPlayCard:
		r.playCardLocked(l, req)
	case game.ActionEndTurn:
		r.endTurnLocked(l, req)
	case game.ActionPickUp:
		r.pickupTurnLocked(l, req)
	}
}

func (r *Registry) playCardLocked(l *Lobby, req TurnRequest) {
	inst := l.instance
	curr := inst.CurrentPlayer()
	if inst.PlayCard(req.CardID) {
		r.broadcastGameTurnLocked(l, game.TurnFeedback{
			Action:  req.Action,
			Message: game.GameMessage{Type: game.MessageInfo, Message: "Card played"},
		})
		inst.LookNextTurn(curr)
		return
	}
	// Failed placements are broadcast so opponents see the attempt.
	r.broadcastGameTurnLocked(l, game.TurnFeedback{
		Action:  req.Action,
		Message: game.GameMessage{Type: game.MessageError, Message: "Failed to play card"},
	})
}

func (r *Registry) endTurnLocked(l *Lobby, req TurnRequest) {
	inst := l.instance
	curr := inst.CurrentPlayer()

	if inst.IsWinCondition(curr) {
		r.broadcastGameTurnLocked(l, game.TurnFeedback{
			Action:  req.Action,
			Message: game.GameMessage{Type: game.MessageWin, Message: "Game over"},
			HasWon:  true,
		})
		r.concludeGameLocked(l, curr)
		return
	}

	if inst.EndTurn(false) {
		r.broadcastGameTurnLocked(l, game.TurnFeedback{
			Action:  req.Action,
			Message: game.GameMessage{Type: game.MessageInfo, Message: "Turn ended"},
		})
		r.restartTurnTimerLocked(l)
		return
	}
	r.broadcastGameTurnLocked(l, game.TurnFeedback{
		Action:  req.Action,
		Message: game.GameMessage{Type: game.MessageError, Message: "Failed to end turn"},
	})
}

func (r *Registry) pickupTurnLocked(l *Lobby, req TurnRequest) {
	inst := l.instance
	if inst.TurnMoves() > 0 {
		r.broadcastGameTurnLocked(l, game.TurnFeedback{
			Action:  req.Action,
			Message: game.GameMessage{Type: game.MessageError, Message: "Cannot pick up after playing"},
		})
		return
	}
	inst.PickupTurn()
	inst.EndTurn(true)
	r.broadcastGameTurnLocked(l, game.TurnFeedback{
		Action:  req.Action,
		Message: game.GameMessage{Type: game.MessageInfo, Message: "Cards picked up"},
	})
	r.restartTurnTimerLocked(l)
}

// concludeGameLocked records the result and applies the end-of-game policy:
// either the lobby is torn down, or it is kept with its instance cleared so
// the same group can ready up again. Caller holds l.mu.
func (r *Registry) concludeGameLocked(l *Lobby, winner *game.Player) {
	slog.Info("game won", "tag", "game", "session", l.uid, "winner", winner.Name())

	if r.results != nil {
		seats := make([]SeatResult, 0, len(l.order))
		for _, seat := range l.seatList() {
			seats = append(seats, SeatResult{
				UID:  seat.UID,
				Name: seat.Name,
				Won:  seat.UID == winner.UID(),
			})
		}
		r.results.RecordGameEnd(l.uid, winner.UID(), seats)
	}

	l.cancelTurnTimer()
	l.instance = nil

	if !r.config.KeepLobbyAfterGame {
		r.removeLobby(l.uid)
		return
	}

	// Rematch path: everyone but the owner must ready up again.
	for _, seat := range l.seats {
		seat.Ready = seat.UID == l.ownerUID
	}
	r.broadcastStatus(l.uid, l.seatList(), l.publicSeats())
}
