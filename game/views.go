package game

// GameAction enumerates the actions a seat can request. The numeric values
// are part of the wire format.
type GameAction int

const (
	ActionInit GameAction = iota
	ActionPlayCard
	ActionEndTurn
	ActionPickUp
)

// MessageType classifies a turn feedback message.
type MessageType int

const (
	MessageError MessageType = iota
	MessageInfo
	MessageWin
)

// GameMessage is the feedback for the action just processed.
type GameMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// TurnFeedback describes the outcome of an action; it is attached to every
// snapshot fanned out after the action.
type TurnFeedback struct {
	Action  GameAction
	Message GameMessage
	HasWon  bool
}

// PlayerStatus is the owner view of a seat: full hand identities, public
// floor, opaque blind.
type PlayerStatus struct {
	UIDHash     string           `json:"uidHash"`
	Name        string           `json:"name"`
	HandCards   []CardJSON       `json:"handCards"`
	FloorCards  []FloorCardJSON  `json:"floorCards"`
	HiddenCards []HiddenCardJSON `json:"hiddenCards"`
}

// OpponentStatus is the observer view of a seat: hand and blind reduced to
// opaque placeholders (count preserved), floor public.
type OpponentStatus struct {
	Name        string           `json:"name"`
	HandCards   []HiddenCardJSON `json:"handCards"`
	FloorCards  []FloorCardJSON  `json:"floorCards"`
	HiddenCards []HiddenCardJSON `json:"hiddenCards"`
}

// TurnStatus pairs the requesting seat's own view with the redacted views
// of every other seat.
type TurnStatus struct {
	PlayerStatus PlayerStatus     `json:"playerStatus"`
	OtherPlayers []OpponentStatus `json:"otherPlayers"`
}

// TurnPlayer identifies whose turn it now is, with the feedback message.
type TurnPlayer struct {
	Name    string      `json:"name"`
	UIDHash string      `json:"uidHash"`
	Action  GameAction  `json:"action"`
	Message GameMessage `json:"message"`
}

// GameWin names the winning seat, by opaque hash.
type GameWin struct {
	WinnerUIDHash string `json:"winnerUidHash"`
}

// GameTurn is the per-seat snapshot broadcast after every processed action.
type GameTurn struct {
	Status    TurnStatus `json:"gameTurnStatus"`
	Player    TurnPlayer `json:"gameTurnPlayer"`
	Table     []CardJSON `json:"gameTurnTable"`
	DeckCount int        `json:"gameTurnDeckCount"`
	Winner    *GameWin   `json:"gameTurnWinner,omitempty"`
}

// GenerateGameTurn projects the canonical session state into the view for
// one seat. Redaction happens here and only here: a seat never receives
// another seat's hand or blind identities, and the deck is exposed as a
// count only.
func (in *Instance) GenerateGameTurn(seatUID string, feedback TurnFeedback) GameTurn {
	curr := in.CurrentPlayer()
	turn := GameTurn{
		Status: in.generateTurnStatus(seatUID),
		Player: TurnPlayer{
			Name:    curr.Name(),
			UIDHash: HashUID(curr.UID()),
			Action:  feedback.Action,
			Message: feedback.Message,
		},
		Table:     cardsToJSON(in.table.Cards()),
		DeckCount: in.deck.Size(),
	}
	if feedback.HasWon {
		turn.Winner = &GameWin{WinnerUIDHash: HashUID(curr.UID())}
	}
	return turn
}

func (in *Instance) generateTurnStatus(seatUID string) TurnStatus {
	var own *Player
	for _, p := range in.players {
		if p.UID() == seatUID {
			own = p
			break
		}
	}
	if own == nil {
		// Structural error; the dispatcher only routes known seats.
		return TurnStatus{OtherPlayers: []OpponentStatus{}}
	}

	status := TurnStatus{
		PlayerStatus: PlayerStatus{
			UIDHash:     HashUID(own.UID()),
			Name:        own.Name(),
			HandCards:   cardsToJSON(own.Hand()),
			FloorCards:  cardsToFloorJSON(own.Floor()),
			HiddenCards: cardsToHiddenJSON(own.Blind()),
		},
		OtherPlayers: make([]OpponentStatus, 0, len(in.players)-1),
	}
	for _, p := range in.players {
		if p.UID() == seatUID {
			continue
		}
		status.OtherPlayers = append(status.OtherPlayers, OpponentStatus{
			Name:        p.Name(),
			HandCards:   cardsToHiddenJSON(p.Hand()),
			FloorCards:  cardsToFloorJSON(p.Floor()),
			HiddenCards: cardsToHiddenJSON(p.Blind()),
		})
	}
	return status
}

func cardsToJSON(cards []Card) []CardJSON {
	out := make([]CardJSON, len(cards))
	for i, c := range cards {
		out[i] = c.ToJSON()
	}
	return out
}

func cardsToFloorJSON(cards []Card) []FloorCardJSON {
	out := make([]FloorCardJSON, len(cards))
	for i, c := range cards {
		out[i] = c.ToFloorJSON()
	}
	return out
}

func cardsToHiddenJSON(cards []Card) []HiddenCardJSON {
	out := make([]HiddenCardJSON, len(cards))
	for i, c := range cards {
		out[i] = c.ToHiddenJSON()
	}
	return out
}
