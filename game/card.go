package game

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/google/uuid"
)

// Rank orders the thirteen card ranks from Two (lowest) to Ace (highest).
// The numeric values are part of the wire format; do not reorder.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit has no ranking significance; it only disambiguates cards.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Effect is a rule-modifying property derived from a card's rank.
type Effect int

const (
	AceKiller Effect = iota // Two: anything may be played on top of it
	Constraint              // Seven: the next card must be lower
	Transparent             // Eight: legality defers to the card beneath
	Destroy                 // Ten: clears the pile, always legal
	NoEffect
)

// Card is an immutable value. A card is owned by exactly one holder
// (deck, a seat zone, or the table) at any time.
type Card struct {
	UID  string
	Rank Rank
	Suit Suit
}

// NewCard creates a card with a fresh UID.
func NewCard(rank Rank, suit Suit) Card {
	return Card{UID: uuid.NewString(), Rank: rank, Suit: suit}
}

// Effect derives the card's effect from its rank. Total over all ranks.
func (c Card) Effect() Effect {
	switch c.Rank {
	case Two:
		return AceKiller
	case Seven:
		return Constraint
	case Eight:
		return Transparent
	case Ten:
		return Destroy
	default:
		return NoEffect
	}
}

// CardJSON is the full client-facing representation of a card. Only sent
// for cards the receiving seat is allowed to identify.
type CardJSON struct {
	UID    string `json:"uid"`
	Rank   Rank   `json:"rank"`
	Suit   Suit   `json:"suit"`
	Effect Effect `json:"effect"`
}

// FloorCardJSON carries full identity under an opaque uid hash. Floor cards
// are public knowledge but their UIDs must not be playable by opponents.
type FloorCardJSON struct {
	UIDHash string `json:"uidHash"`
	Rank    Rank   `json:"rank"`
	Suit    Suit   `json:"suit"`
	Effect  Effect `json:"effect"`
}

// HiddenCardJSON is an opaque placeholder for a card whose identity the
// receiving seat must not learn (opponent hands, blind cards).
type HiddenCardJSON struct {
	UIDHash string `json:"uidHash"`
}

// HashUID returns the opaque wire form of a card or player uid.
func HashUID(uid string) string {
	sum := md5.Sum([]byte(uid))
	return hex.EncodeToString(sum[:])
}

// ToJSON returns the full identity view of the card.
func (c Card) ToJSON() CardJSON {
	return CardJSON{UID: c.UID, Rank: c.Rank, Suit: c.Suit, Effect: c.Effect()}
}

// ToFloorJSON returns the public-but-opaque view used for floor cards.
func (c Card) ToFloorJSON() FloorCardJSON {
	return FloorCardJSON{UIDHash: HashUID(c.UID), Rank: c.Rank, Suit: c.Suit, Effect: c.Effect()}
}

// ToHiddenJSON returns the fully redacted view of the card.
func (c Card) ToHiddenJSON() HiddenCardJSON {
	return HiddenCardJSON{UIDHash: HashUID(c.UID)}
}
