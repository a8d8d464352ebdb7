package game

import "testing"

func tableWith(ranks ...Rank) *Table {
	table := NewTable()
	for _, r := range ranks {
		table.PlaceCard(NewCard(r, Clubs))
	}
	return table
}

func TestEmptyPileAcceptsAnything(t *testing.T) {
	table := NewTable()
	for rank := Two; rank <= Ace; rank++ {
		if ok, _ := table.Playable(NewCard(rank, Hearts), 0); !ok {
			t.Errorf("rank %d not playable on empty pile", rank)
		}
	}
}

func TestPlainCardsMustNotDecrease(t *testing.T) {
	// For plain ranks r1 < r2: r2 on r1 is legal, r1 on r2 is not.
	plain := []Rank{Three, Four, Five, Six, Nine, Jack, Queen, King, Ace}
	for i, low := range plain {
		for _, high := range plain[i+1:] {
			up := tableWith(low)
			if ok, _ := up.Playable(NewCard(high, Hearts), 0); !ok {
				t.Errorf("rank %d should be playable on %d", high, low)
			}
			down := tableWith(high)
			if ok, _ := down.Playable(NewCard(low, Hearts), 0); ok {
				t.Errorf("rank %d should not be playable on %d", low, high)
			}
		}
	}
}

func TestEqualRankIsPlayable(t *testing.T) {
	table := tableWith(Nine)
	ok, reset := table.Playable(NewCard(Nine, Hearts), 0)
	if !ok {
		t.Error("equal rank not playable")
	}
	if !reset {
		t.Error("equal rank did not request a move reset")
	}
}

func TestRankMatchBeatsMoveCounter(t *testing.T) {
	table := tableWith(Nine)
	ok, reset := table.Playable(NewCard(Nine, Hearts), 2)
	if !ok || !reset {
		t.Error("rank match must be legal mid-chain and reset the counter")
	}
}

func TestMoveCounterBlocksSecondPlacement(t *testing.T) {
	table := tableWith(Three)
	if ok, _ := table.Playable(NewCard(King, Hearts), 1); ok {
		t.Error("non-matching card playable with moves already made")
	}
}

func TestDestroyIsAlwaysPlayable(t *testing.T) {
	tops := []Rank{Two, Seven, Eight, Ace, Three}
	for _, top := range tops {
		table := tableWith(top)
		// Even mid-chain: DESTROY is checked before the move counter.
		for _, moves := range []int{0, 1, 3} {
			if ok, _ := table.Playable(NewCard(Ten, Hearts), moves); !ok {
				t.Errorf("DESTROY not playable on rank %d with %d moves", top, moves)
			}
		}
	}
}

func TestEffectCardOverPlainCard(t *testing.T) {
	for _, rank := range []Rank{Two, Seven, Eight} {
		table := tableWith(King)
		if ok, _ := table.Playable(NewCard(rank, Hearts), 0); !ok {
			t.Errorf("effect rank %d should land on a plain king", rank)
		}
	}
}

func TestAceKillerAcceptsAnything(t *testing.T) {
	table := tableWith(Two)
	for _, rank := range []Rank{Three, Nine, Ace} {
		if ok, _ := table.Playable(NewCard(rank, Hearts), 0); !ok {
			t.Errorf("rank %d should be playable on an ace killer", rank)
		}
	}
}

func TestConstraintRequiresLowerRank(t *testing.T) {
	table := tableWith(Seven)
	if ok, _ := table.Playable(NewCard(Nine, Hearts), 0); ok {
		t.Error("nine playable on a constraint seven")
	}
	if ok, _ := table.Playable(NewCard(Three, Hearts), 0); !ok {
		t.Error("three not playable on a constraint seven")
	}
}

func TestTransparentDefersToCardBeneath(t *testing.T) {
	// Five under a transparent eight: legality must match playing on the five.
	table := tableWith(Five, Eight)
	if ok, _ := table.Playable(NewCard(Four, Hearts), 0); ok {
		t.Error("four playable over transparent on a five")
	}
	if ok, _ := table.Playable(NewCard(Six, Hearts), 0); !ok {
		t.Error("six not playable over transparent on a five")
	}
}

func TestTransparentChainIsLegalityTransparent(t *testing.T) {
	single := tableWith(Five, Eight)
	triple := tableWith(Five, Eight, Eight, Eight)
	for rank := Two; rank <= Ace; rank++ {
		if rank == Eight {
			continue
		}
		okSingle, _ := single.Playable(NewCard(rank, Hearts), 0)
		okTriple, _ := triple.Playable(NewCard(rank, Hearts), 0)
		if okSingle != okTriple {
			t.Errorf("rank %d: one transparent=%v, three transparents=%v", rank, okSingle, okTriple)
		}
	}
}

func TestTransparentOverConstraint(t *testing.T) {
	table := tableWith(Seven, Eight)
	if ok, _ := table.Playable(NewCard(Nine, Hearts), 0); ok {
		t.Error("nine playable through transparent onto a constraint seven")
	}
	if ok, _ := table.Playable(NewCard(Three, Hearts), 0); !ok {
		t.Error("three not playable through transparent onto a constraint seven")
	}
}

func TestAllTransparentPileAcceptsAnything(t *testing.T) {
	table := tableWith(Eight, Eight)
	for _, rank := range []Rank{Three, Nine, Ace} {
		if ok, _ := table.Playable(NewCard(rank, Hearts), 0); !ok {
			t.Errorf("rank %d not playable on an all-transparent pile", rank)
		}
	}
}

func TestTwoEffectCardsAreCompatible(t *testing.T) {
	table := tableWith(Seven)
	if ok, _ := table.Playable(NewCard(Two, Hearts), 0); !ok {
		t.Error("ace killer not playable on a constraint")
	}
	table = tableWith(Two)
	if ok, _ := table.Playable(NewCard(Eight, Hearts), 0); !ok {
		t.Error("transparent not playable on an ace killer")
	}
}

func TestClearEmptiesPile(t *testing.T) {
	table := tableWith(Three, Nine, King)
	table.Clear()
	if _, ok := table.LastCard(); ok {
		t.Error("cleared table still has a last card")
	}
	if len(table.Cards()) != 0 {
		t.Error("cleared table still holds cards")
	}
}
