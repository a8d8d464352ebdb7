package lobby

import (
	"log/slog"
	"time"

	"hiinakas-server/game"
)

// restartTurnTimerLocked arms the per-turn clock for the seat now holding
// the turn. When it expires the seat is forced to pick up the pile and the
// turn passes. No-op when TurnLimitSec <= 0. Caller holds l.mu.
func (r *Registry) restartTurnTimerLocked(l *Lobby) {
	if r.config.TurnLimitSec <= 0 {
		return
	}
	l.cancelTurnTimer()
	gen := l.turnGen
	cancel := make(chan struct{})
	l.timerCancel = cancel
	limit := time.Duration(r.config.TurnLimitSec) * time.Second

	go func() {
		select {
		case <-time.After(limit):
			r.forceTurnTimeout(l.uid, gen)
		case <-cancel:
		}
	}()
}

// forceTurnTimeout acts on an expired turn clock. The generation check
// discards timers that lost a race with a normal turn advance.
func (r *Registry) forceTurnTimeout(sessionUID string, gen int) {
	l := r.Lobby(sessionUID)
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.turnGen != gen || l.instance == nil {
		return
	}
	l.timerCancel = nil

	inst := l.instance
	stalled := inst.CurrentPlayer()
	slog.Info("turn time expired", "tag", "game", "session", sessionUID, "player", stalled.Name())

	inst.PickupTurn()
	inst.EndTurn(true)
	r.broadcastGameTurnLocked(l, game.TurnFeedback{
		Action:  game.ActionPickUp,
		Message: game.GameMessage{Type: game.MessageInfo, Message: "Turn time expired, cards picked up"},
	})
	r.restartTurnTimerLocked(l)
}
