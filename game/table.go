package game

// Table is the shared play pile and the card-legality rule engine. The pile
// is ordered, newest card last. Every card in the pile was validated against
// its predecessor when placed, except a DESTROY card, which always lands and
// is immediately followed by a clear.
type Table struct {
	cards []Card
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// PlaceCard puts a card on top of the pile. Legality must already have been
// checked via Playable.
func (t *Table) PlaceCard(card Card) {
	t.cards = append(t.cards, card)
}

// Cards returns the pile in placement order.
func (t *Table) Cards() []Card {
	return t.cards
}

// LastCard returns the top of the pile. ok is false when the pile is empty.
func (t *Table) LastCard() (Card, bool) {
	if len(t.cards) == 0 {
		return Card{}, false
	}
	return t.cards[len(t.cards)-1], true
}

// Clear empties the pile. Fired after a DESTROY play or a forfeit pickup.
func (t *Table) Clear() {
	t.cards = nil
}

// beneathTransparent returns the first non-TRANSPARENT card under the top run
// of TRANSPARENT cards. ok is false when the pile is transparent all the way
// down.
func (t *Table) beneathTransparent() (Card, bool) {
	for i := len(t.cards) - 1; i >= 0; i-- {
		if t.cards[i].Effect() != Transparent {
			return t.cards[i], true
		}
	}
	return Card{}, false
}

// Playable decides whether card may be placed on the pile right now.
// turnMoves is the number of cards the acting seat has placed since the last
// legality reset. resetMoves is true when the placement matched the top
// card's rank, which restarts the per-turn move count.
//
// The rules are an ordered list of guards; the first match wins:
//
//  1. empty pile or a DESTROY card: always legal (DESTROY is a universal
//     reset, even mid-chain).
//  2. rank matches the top card: legal, move count restarts.
//  3. a card was already placed this turn: illegal.
//  4. effect-pair resolution between the candidate and the top card.
func (t *Table) Playable(card Card, turnMoves int) (ok, resetMoves bool) {
	top, hasTop := t.LastCard()
	if !hasTop || card.Effect() == Destroy {
		return true, false
	}

	if card.Rank == top.Rank {
		return true, true
	}

	if turnMoves > 0 {
		return false, false
	}

	candEffect := card.Effect()
	topEffect := top.Effect()

	switch {
	case candEffect == NoEffect && topEffect == NoEffect:
		return card.Rank >= top.Rank, false

	case candEffect != NoEffect && topEffect == NoEffect:
		// Any effect card may be laid over a plain card.
		return true, false

	case candEffect == NoEffect && topEffect != NoEffect:
		switch topEffect {
		case AceKiller:
			return true, false
		case Transparent:
			beneath, found := t.beneathTransparent()
			if !found {
				return true, false
			}
			switch beneath.Effect() {
			case AceKiller:
				return true, false
			case Constraint:
				return card.Rank < beneath.Rank, false
			default:
				return card.Rank >= beneath.Rank, false
			}
		case Constraint:
			return card.Rank < top.Rank, false
		}
	}

	// Two differently ranked effect cards: legal unconditionally.
	return candEffect != NoEffect && topEffect != NoEffect, false
}
