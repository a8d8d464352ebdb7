package game

import "testing"

// bareInstance builds an instance with an empty deck and table so tests can
// stage zones directly.
func bareInstance(players ...*Player) *Instance {
	return &Instance{
		uid:         "test-instance",
		players:     players,
		table:       NewTable(),
		deck:        &Deck{},
		canPlayMove: true,
	}
}

func TestNewInstanceDealsThreePerZone(t *testing.T) {
	for _, n := range []int{2, 3, 5} {
		players := make([]*Player, n)
		for i := range players {
			players[i] = NewPlayer("p", "Player")
		}
		in := NewInstance(players)
		for i, p := range in.Players() {
			if p.HandSize() != 3 {
				t.Errorf("n=%d seat %d: hand = %d, want 3", n, i, p.HandSize())
			}
			if len(p.Blind()) != 3 {
				t.Errorf("n=%d seat %d: blind = %d, want 3", n, i, len(p.Blind()))
			}
			if len(p.Floor()) != 3 {
				t.Errorf("n=%d seat %d: floor = %d, want 3", n, i, len(p.Floor()))
			}
		}
		if want := 52 - 9*n; in.Deck().Size() != want {
			t.Errorf("n=%d: deck = %d, want %d", n, in.Deck().Size(), want)
		}
		if len(in.Table().Cards()) != 0 {
			t.Errorf("n=%d: table not empty at start", n)
		}
	}
}

func TestPlayCardPlacesAndCountsMove(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	card := NewCard(Nine, Hearts)
	p1.Draw(card)
	in := bareInstance(p1, p2)

	if !in.PlayCard(card.UID) {
		t.Fatal("legal play rejected")
	}
	if in.TurnMoves() != 1 {
		t.Errorf("turnMoves = %d, want 1", in.TurnMoves())
	}
	if top, ok := in.Table().LastCard(); !ok || top.UID != card.UID {
		t.Error("played card is not on top of the table")
	}
	if !p1.IsHandEmpty() {
		t.Error("played card still in hand")
	}
}

func TestPlayCardRejectsUnknownAndIllegal(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	low := NewCard(Three, Hearts)
	p1.Draw(low)
	in := bareInstance(p1, p2)
	in.table.PlaceCard(NewCard(King, Clubs))

	if in.PlayCard("no-such-card") {
		t.Error("play of a card not in hand succeeded")
	}
	if in.PlayCard(low.UID) {
		t.Error("three played onto a king")
	}
	if p1.HandSize() != 1 || in.TurnMoves() != 0 {
		t.Error("failed play mutated state")
	}
}

func TestDoublesChainAllowsSecondSameRank(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	first := NewCard(Nine, Hearts)
	second := NewCard(Nine, Spades)
	other := NewCard(King, Clubs)
	p1.Draw(first)
	p1.Draw(second)
	p1.Draw(other)
	in := bareInstance(p1, p2)

	if !in.PlayCard(first.UID) {
		t.Fatal("first nine rejected")
	}
	// The move counter would block a non-matching king now.
	if in.PlayCard(other.UID) {
		t.Error("king played mid-chain")
	}
	if !in.PlayCard(second.UID) {
		t.Error("second nine rejected")
	}
	// No nines remain: the chain is closed for every card.
	third := NewCard(Nine, Diamonds)
	p1.Draw(third)
	if in.PlayCard(third.UID) {
		t.Error("play allowed after the chain closed")
	}
}

func TestDestroyClearsTableAndKeepsTurn(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	ten := NewCard(Ten, Hearts)
	follow := NewCard(Four, Spades)
	p1.Draw(ten)
	p1.Draw(follow)
	in := bareInstance(p1, p2)
	in.table.PlaceCard(NewCard(King, Clubs))
	in.turnMoves = 1

	if !in.PlayCard(ten.UID) {
		t.Fatal("destroy rejected mid-chain")
	}
	if len(in.Table().Cards()) != 0 {
		t.Error("table not cleared by destroy")
	}
	if in.TurnMoves() != 0 {
		t.Errorf("turnMoves = %d after destroy, want 0", in.TurnMoves())
	}
	if !in.IsMyTurn("a") {
		t.Error("destroy handed the turn away")
	}
	if !in.PlayCard(follow.UID) {
		t.Error("follow-up play after destroy rejected")
	}
}

func TestEndTurnRequiresAMove(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	p1.Draw(NewCard(Nine, Hearts))
	in := bareInstance(p1, p2)

	if in.EndTurn(false) {
		t.Error("turn ended without a play")
	}
	if !in.IsMyTurn("a") {
		t.Error("failed end advanced the turn")
	}
	in.turnMoves = 1
	if !in.EndTurn(false) {
		t.Error("turn with a play did not end")
	}
	if !in.IsMyTurn("b") {
		t.Error("turn did not pass to the next seat")
	}
	if in.TurnMoves() != 0 {
		t.Error("move count not reset at end of turn")
	}
}

func TestEndTurnRefillsHandToThree(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	p1.Draw(NewCard(Nine, Hearts))
	in := bareInstance(p1, p2)
	in.deck = &Deck{cards: []Card{
		NewCard(Three, Clubs), NewCard(Four, Clubs), NewCard(Five, Clubs),
	}}
	in.turnMoves = 1

	in.EndTurn(false)
	if p1.HandSize() != 3 {
		t.Errorf("hand after refill = %d, want 3", p1.HandSize())
	}
	if in.Deck().Size() != 1 {
		t.Errorf("deck after refill = %d, want 1", in.Deck().Size())
	}
}

func TestTurnOrderIsCircular(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	p3 := NewPlayer("c", "Carol")
	in := bareInstance(p1, p2, p3)

	for _, want := range []string{"b", "c", "a", "b"} {
		in.EndTurn(true)
		if !in.IsMyTurn(want) {
			t.Fatalf("turn is %s, want %s", in.CurrentPlayer().UID(), want)
		}
	}
}

func TestLookNextTurnPromotesFloorBeforeBlind(t *testing.T) {
	p := NewPlayer("a", "Alice")
	p.DrawFloor(NewCard(Three, Clubs))
	p.DrawFloor(NewCard(Four, Clubs))
	p.DrawBlind(NewCard(Five, Clubs))
	in := bareInstance(p, NewPlayer("b", "Bob"))

	in.LookNextTurn(p)
	if p.HandSize() != 2 {
		t.Fatalf("hand = %d after floor pickup, want 2", p.HandSize())
	}
	if !p.IsFloorEmpty() {
		t.Error("floor not emptied")
	}
	if p.IsBlindEmpty() {
		t.Error("blind consumed while floor cards remained")
	}

	p.hand = nil
	in.LookNextTurn(p)
	if p.HandSize() != 1 {
		t.Errorf("hand = %d after blind pickup, want 1", p.HandSize())
	}
	if !p.IsBlindEmpty() {
		t.Error("blind card not promoted")
	}
}

func TestLookNextTurnNoopWhileHandOrDeckRemain(t *testing.T) {
	p := NewPlayer("a", "Alice")
	p.Draw(NewCard(Nine, Hearts))
	p.DrawFloor(NewCard(Three, Clubs))
	in := bareInstance(p, NewPlayer("b", "Bob"))

	in.LookNextTurn(p)
	if p.IsFloorEmpty() {
		t.Error("floor promoted while the hand was not empty")
	}

	p.hand = nil
	in.deck = &Deck{cards: []Card{NewCard(Four, Clubs)}}
	in.LookNextTurn(p)
	if p.IsFloorEmpty() {
		t.Error("floor promoted while the deck was not empty")
	}
}

func TestLastCardPromotesFloorInsteadOfWinning(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	last := NewCard(Ace, Spades)
	p1.Draw(last)
	for i := 0; i < 3; i++ {
		p1.DrawFloor(NewCard(Three, Suit(i)))
		p1.DrawBlind(NewCard(Four, Suit(i)))
	}
	in := bareInstance(p1, p2)

	if !in.PlayCard(last.UID) {
		t.Fatal("ace rejected on empty table")
	}
	in.LookNextTurn(p1)
	if in.IsWinCondition(p1) {
		t.Error("win declared with reserve zones remaining")
	}
	if p1.HandSize() != 3 {
		t.Errorf("hand = %d after floor promotion, want 3", p1.HandSize())
	}
	if !p1.IsFloorEmpty() {
		t.Error("floor not promoted")
	}
}

func TestIsWinCondition(t *testing.T) {
	p := NewPlayer("a", "Alice")
	in := bareInstance(p, NewPlayer("b", "Bob"))
	if !in.IsWinCondition(p) {
		t.Error("empty seat with empty deck is not a win")
	}

	p.DrawBlind(NewCard(Three, Clubs))
	if in.IsWinCondition(p) {
		t.Error("win declared with a blind card left")
	}

	p.blind = nil
	in.deck = &Deck{cards: []Card{NewCard(Four, Clubs)}}
	if in.IsWinCondition(p) {
		t.Error("win declared with the deck non-empty")
	}
}

func TestPickupTurnTakesWholePile(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	in := bareInstance(p1, p2)
	in.table.PlaceCard(NewCard(King, Clubs))
	in.table.PlaceCard(NewCard(Ace, Clubs))

	in.PickupTurn()
	if p1.HandSize() != 2 {
		t.Errorf("hand = %d after pickup, want 2", p1.HandSize())
	}
	if len(in.Table().Cards()) != 0 {
		t.Error("table not cleared by pickup")
	}
	if !in.EndTurn(true) {
		t.Error("forced end after pickup failed")
	}
	if !in.IsMyTurn("b") {
		t.Error("pickup did not hand the turn over")
	}
}

func TestGenerateGameTurnRedactsOpponents(t *testing.T) {
	players := []*Player{NewPlayer("a", "Alice"), NewPlayer("b", "Bob")}
	in := NewInstance(players)

	turn := in.GenerateGameTurn("a", TurnFeedback{
		Action:  ActionInit,
		Message: GameMessage{Type: MessageInfo, Message: "Game started!"},
	})

	own := turn.Status.PlayerStatus
	if len(own.HandCards) != 3 {
		t.Fatalf("own hand = %d cards, want 3", len(own.HandCards))
	}
	for _, c := range own.HandCards {
		if c.UID == "" {
			t.Error("own hand card has no identity")
		}
	}
	for _, c := range own.HiddenCards {
		if c.UIDHash == "" {
			t.Error("own blind card has no placeholder")
		}
	}

	if len(turn.Status.OtherPlayers) != 1 {
		t.Fatalf("opponents = %d, want 1", len(turn.Status.OtherPlayers))
	}
	opp := turn.Status.OtherPlayers[0]
	if len(opp.HandCards) != 3 {
		t.Errorf("opponent hand count = %d, want 3", len(opp.HandCards))
	}
	realUIDs := make(map[string]bool)
	for _, c := range players[1].Hand() {
		realUIDs[c.UID] = true
	}
	for _, c := range opp.HandCards {
		if realUIDs[c.UIDHash] {
			t.Error("opponent view leaks a raw card UID")
		}
	}
	for _, c := range opp.FloorCards {
		if c.UIDHash == "" {
			t.Error("opponent floor card should stay public")
		}
	}

	if turn.DeckCount != in.Deck().Size() {
		t.Errorf("deck count = %d, want %d", turn.DeckCount, in.Deck().Size())
	}
	if turn.Winner != nil {
		t.Error("winner set without a win")
	}
}

func TestGenerateGameTurnMarksWinner(t *testing.T) {
	p1 := NewPlayer("a", "Alice")
	p2 := NewPlayer("b", "Bob")
	in := bareInstance(p1, p2)

	turn := in.GenerateGameTurn("b", TurnFeedback{
		Action:  ActionEndTurn,
		Message: GameMessage{Type: MessageWin, Message: "Game over"},
		HasWon:  true,
	})
	if turn.Winner == nil {
		t.Fatal("winner missing from win snapshot")
	}
	if turn.Winner.WinnerUIDHash != HashUID("a") {
		t.Error("winner hash does not name the acting seat")
	}
}

func TestInitInstanceIsSticky(t *testing.T) {
	in := bareInstance(NewPlayer("a", "Alice"), NewPlayer("b", "Bob"))
	if in.Initialized() {
		t.Error("fresh instance reports initialized")
	}
	in.InitInstance()
	if !in.Initialized() {
		t.Error("InitInstance did not stick")
	}
}
