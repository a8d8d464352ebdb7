package game

// Player is one seat in a game instance. It owns three disjoint card zones:
// hand (playable, visible to the holder), floor (three cards, publicly
// known, used only after hand and deck are exhausted) and blind (three
// cards, unknown even to the holder until drawn).
type Player struct {
	uid   string
	name  string
	hand  []Card
	floor []Card
	blind []Card
}

// NewPlayer creates an empty seat for the given identity.
func NewPlayer(uid, name string) *Player {
	return &Player{uid: uid, name: name}
}

// UID returns the seat's identity.
func (p *Player) UID() string { return p.uid }

// Name returns the seat's display name.
func (p *Player) Name() string { return p.name }

// Play removes and returns the named card from the hand. ok is false when
// the card is not in the hand; legality against the table is not checked
// here, that is the table's job.
func (p *Player) Play(cardID string) (Card, bool) {
	for i, c := range p.hand {
		if c.UID == cardID {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// Card returns the named hand card without removing it.
func (p *Player) Card(cardID string) (Card, bool) {
	for _, c := range p.hand {
		if c.UID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// Draw inserts a card into the hand.
func (p *Player) Draw(card Card) {
	p.hand = append(p.hand, card)
}

// DrawBlind inserts a card into the blind zone.
func (p *Player) DrawBlind(card Card) {
	p.blind = append(p.blind, card)
}

// DrawFloor inserts a card into the floor zone.
func (p *Player) DrawFloor(card Card) {
	p.floor = append(p.floor, card)
}

// PickUpTable bulk-inserts cards into the hand. Used when a seat forfeits
// the turn by picking up the pile.
func (p *Player) PickUpTable(cards []Card) {
	p.hand = append(p.hand, cards...)
}

// PickUpFloor moves the entire floor zone into the hand.
func (p *Player) PickUpFloor() {
	p.hand = append(p.hand, p.floor...)
	p.floor = nil
}

// PickUpOneBlind moves the first blind card into the hand. No-op when the
// blind zone is empty.
func (p *Player) PickUpOneBlind() {
	if len(p.blind) == 0 {
		return
	}
	p.hand = append(p.hand, p.blind[0])
	p.blind = p.blind[1:]
}

// HandSize returns the number of hand cards.
func (p *Player) HandSize() int { return len(p.hand) }

// IsHandEmpty reports whether the hand is empty.
func (p *Player) IsHandEmpty() bool { return len(p.hand) == 0 }

// IsFloorEmpty reports whether the floor zone is empty.
func (p *Player) IsFloorEmpty() bool { return len(p.floor) == 0 }

// IsBlindEmpty reports whether the blind zone is empty.
func (p *Player) IsBlindEmpty() bool { return len(p.blind) == 0 }

// Hand returns the hand cards in order.
func (p *Player) Hand() []Card { return p.hand }

// Floor returns the floor cards in order.
func (p *Player) Floor() []Card { return p.floor }

// Blind returns the blind cards in order.
func (p *Player) Blind() []Card { return p.blind }
