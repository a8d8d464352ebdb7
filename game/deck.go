package game

import "math/rand"

// Deck is the shuffled draw pile. It is filled once at instance creation
// and only ever shrinks.
type Deck struct {
	cards []Card
}

// NewDeck builds all 52 rank×suit combinations and shuffles them uniformly.
func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Draw removes and returns the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Size returns the number of undrawn cards.
func (d *Deck) Size() int {
	return len(d.cards)
}

// IsEmpty reports whether the deck has no cards left.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
