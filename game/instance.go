package game

import "github.com/google/uuid"

const (
	handRefillSize = 3
	blindDealSize  = 3
	floorDealSize  = 3
)

// Instance orchestrates the players, deck and table through the turn cycle
// of one game session. Turn order is fixed at creation. All methods must be
// called under the owning lobby's serialization boundary.
type Instance struct {
	uid       string
	players   []*Player
	table     *Table
	deck      *Deck
	turnIndex int
	turnMoves int
	init      bool

	// canPlayMove implements the doubles chain: after a placement it stays
	// true only while the acting seat still holds another card of the same
	// rank.
	canPlayMove bool
}

// NewInstance creates a session for the given seats, shuffles one deck and
// deals 3 hand, 3 blind and 3 floor cards to every seat.
func NewInstance(players []*Player) *Instance {
	in := &Instance{
		uid:         uuid.NewString(),
		players:     players,
		table:       NewTable(),
		deck:        NewDeck(),
		canPlayMove: true,
	}
	in.dealAll()
	return in
}

// UID returns the instance identity.
func (in *Instance) UID() string { return in.uid }

// InitInstance marks the first turn snapshot as broadcast. A second start
// of the same instance is a no-op gated on this flag.
func (in *Instance) InitInstance() { in.init = true }

// Initialized reports whether InitInstance has been called.
func (in *Instance) Initialized() bool { return in.init }

// IsMyTurn reports whether the seat identified by uid holds the turn.
func (in *Instance) IsMyTurn(uid string) bool {
	return in.CurrentPlayer().UID() == uid
}

// CurrentPlayer returns the acting seat.
func (in *Instance) CurrentPlayer() *Player {
	return in.players[in.turnIndex]
}

// Players returns the seats in turn order.
func (in *Instance) Players() []*Player { return in.players }

// Table returns the shared play pile.
func (in *Instance) Table() *Table { return in.table }

// Deck returns the draw pile.
func (in *Instance) Deck() *Deck { return in.deck }

// TurnMoves returns the number of cards placed since the last legality reset.
func (in *Instance) TurnMoves() int { return in.turnMoves }

// PlayCard attempts to play the named card from the acting seat's hand.
// On failure no state changes. On success the card either lands on the
// table (move count advances) or, for a DESTROY card, clears the table and
// re-opens the same seat's turn.
func (in *Instance) PlayCard(cardID string) bool {
	curr := in.CurrentPlayer()
	card, ok := curr.Card(cardID)
	if !ok {
		return false
	}
	playable, resetMoves := in.table.Playable(card, in.turnMoves)
	if !playable || !in.canPlayMove {
		return false
	}
	if resetMoves {
		in.turnMoves = 0
	}

	played, _ := curr.Play(cardID)

	// The seat may chain another placement only while it still holds a card
	// of the rank just played.
	in.canPlayMove = false
	for _, c := range curr.Hand() {
		if c.Rank == card.Rank {
			in.canPlayMove = true
			break
		}
	}

	if card.Effect() == Destroy {
		in.table.Clear()
		in.canPlayMove = true
		in.turnMoves = 0
		in.LookNextTurn(curr)
	} else {
		in.table.PlaceCard(played)
		in.turnMoves++
	}
	return true
}

// LookNextTurn promotes reserve zones into the hand once the hand and the
// deck are both exhausted: the whole floor first, then exactly one blind
// card. Invoked after every play and at end of turn so a seat is never
// stuck with an empty hand while reserve zones remain.
func (in *Instance) LookNextTurn(player *Player) {
	if !player.IsHandEmpty() || !in.deck.IsEmpty() {
		return
	}
	if !player.IsFloorEmpty() {
		player.PickUpFloor()
	} else if !player.IsBlindEmpty() {
		player.PickUpOneBlind()
	}
}

// IsWinCondition reports whether the seat has shed every card from every
// zone and the deck is empty.
func (in *Instance) IsWinCondition(player *Player) bool {
	return player.IsHandEmpty() && in.deck.IsEmpty() &&
		player.IsFloorEmpty() && player.IsBlindEmpty()
}

// CanEndTurn reports whether the acting seat has made at least one play.
func (in *Instance) CanEndTurn() bool {
	return in.turnMoves > 0
}

// PickupTurn moves the entire pile into the acting seat's hand and clears
// the table. Callers pair this with EndTurn(true).
func (in *Instance) PickupTurn() {
	curr := in.CurrentPlayer()
	curr.PickUpTable(in.table.Cards())
	in.table.Clear()
}

// EndTurn closes the acting seat's turn: promote reserve zones, refill the
// hand up to 3 from the deck, advance to the next seat and reset the move
// count. Fails (no-op) when no play was made and the end is not forced by
// a pickup.
func (in *Instance) EndTurn(forced bool) bool {
	if !in.CanEndTurn() && !forced {
		return false
	}
	curr := in.CurrentPlayer()
	in.LookNextTurn(curr)
	in.refillHand(curr)
	in.turnIndex = (in.turnIndex + 1) % len(in.players)
	in.turnMoves = 0
	in.canPlayMove = true
	return true
}

func (in *Instance) refillHand(player *Player) {
	for player.HandSize() < handRefillSize && !in.deck.IsEmpty() {
		card, ok := in.deck.Draw()
		if !ok {
			return
		}
		player.Draw(card)
	}
}

func (in *Instance) dealAll() {
	for _, player := range in.players {
		in.refillHand(player)
		for i := 0; i < blindDealSize; i++ {
			if card, ok := in.deck.Draw(); ok {
				player.DrawBlind(card)
			}
		}
		for i := 0; i < floorDealSize; i++ {
			if card, ok := in.deck.Draw(); ok {
				player.DrawFloor(card)
			}
		}
	}
}
