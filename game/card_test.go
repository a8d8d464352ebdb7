package game

import "testing"

func TestCardEffects(t *testing.T) {
	tests := []struct {
		rank Rank
		want Effect
	}{
		{Two, AceKiller},
		{Three, NoEffect},
		{Four, NoEffect},
		{Five, NoEffect},
		{Six, NoEffect},
		{Seven, Constraint},
		{Eight, Transparent},
		{Nine, NoEffect},
		{Ten, Destroy},
		{Jack, NoEffect},
		{Queen, NoEffect},
		{King, NoEffect},
		{Ace, NoEffect},
	}
	for _, tt := range tests {
		card := NewCard(tt.rank, Spades)
		if got := card.Effect(); got != tt.want {
			t.Errorf("rank %d: effect = %d, want %d", tt.rank, got, tt.want)
		}
	}
}

func TestCardUIDsAreUnique(t *testing.T) {
	a := NewCard(Three, Hearts)
	b := NewCard(Three, Hearts)
	if a.UID == b.UID {
		t.Error("two cards share a UID")
	}
}

func TestHiddenViewRedactsIdentity(t *testing.T) {
	card := NewCard(Ace, Spades)
	hidden := card.ToHiddenJSON()
	if hidden.UIDHash == card.UID {
		t.Error("hidden view leaks the raw UID")
	}
	if hidden.UIDHash == "" {
		t.Error("hidden view has no placeholder hash")
	}
	if hidden.UIDHash != HashUID(card.UID) {
		t.Error("hidden view hash is not stable")
	}
}
