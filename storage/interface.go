package storage

import (
	"context"

	"hiinakas-server/lobby"
)

// HistoryStore abstracts persistence for game history and the leaderboard.
// Implementations can be swapped for testing (mocks) or different backends.
type HistoryStore interface {
	lobby.ResultSink

	ListByUserID(ctx context.Context, userID string) ([]GameRecord, error)
	ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error)

	Close()
}

// Ensure *Store implements HistoryStore at compile time.
var _ HistoryStore = (*Store)(nil)
