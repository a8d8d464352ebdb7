package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"hiinakas-server/lobby"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS game_history (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	session_uid TEXT NOT NULL,
	played_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	winner_user_id TEXT NOT NULL,
	winner_name TEXT NOT NULL,
	player_count INT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_game_history_winner ON game_history(winner_user_id);
CREATE TABLE IF NOT EXISTS game_history_seat (
	history_id UUID NOT NULL REFERENCES game_history(id),
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	won        BOOLEAN NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_game_history_seat_user ON game_history_seat(user_id);
CREATE TABLE IF NOT EXISTS player_ratings (
	user_id      TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	wins         INT  NOT NULL DEFAULT 0,
	losses       INT  NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_player_ratings_wins ON player_ratings(wins DESC);
`

// Store persists and retrieves game history.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the history tables exist.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence
// occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// RecordGameEnd implements lobby.ResultSink. It runs the writes in the
// background so game conclusion never blocks on the database.
func (s *Store) RecordGameEnd(sessionUID, winnerUID string, seats []lobby.SeatResult) {
	if s == nil || s.pool == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.insertGameResult(ctx, sessionUID, winnerUID, seats); err != nil {
			slog.Error("recording game result", "tag", "storage", "session", sessionUID, "err", err)
		}
	}()
}

func (s *Store) insertGameResult(ctx context.Context, sessionUID, winnerUID string, seats []lobby.SeatResult) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var winnerName string
	for _, seat := range seats {
		if seat.Won {
			winnerName = seat.Name
		}
	}

	var historyID string
	err = tx.QueryRow(ctx,
		`INSERT INTO game_history (session_uid, winner_user_id, winner_name, player_count)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		sessionUID, winnerUID, winnerName, len(seats)).Scan(&historyID)
	if err != nil {
		return err
	}

	for _, seat := range seats {
		if _, err := tx.Exec(ctx,
			`INSERT INTO game_history_seat (history_id, user_id, name, won) VALUES ($1, $2, $3, $4)`,
			historyID, seat.UID, seat.Name, seat.Won); err != nil {
			return err
		}
		winInc, lossInc := 0, 1
		if seat.Won {
			winInc, lossInc = 1, 0
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO player_ratings (user_id, display_name, wins, losses, updated_at)
			 VALUES ($1, $2, $3, $4, now())
			 ON CONFLICT (user_id) DO UPDATE SET
			   display_name = EXCLUDED.display_name,
			   wins = player_ratings.wins + EXCLUDED.wins,
			   losses = player_ratings.losses + EXCLUDED.losses,
			   updated_at = now()`,
			seat.UID, seat.Name, winInc, lossInc); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GameRecord is one row of a player's match history.
type GameRecord struct {
	ID          string    `json:"id"`
	SessionUID  string    `json:"sessionUid"`
	PlayedAt    time.Time `json:"playedAt"`
	WinnerName  string    `json:"winnerName"`
	PlayerCount int       `json:"playerCount"`
	Won         bool      `json:"won"`
}

// ListByUserID returns the most recent games the user took part in.
func (s *Store) ListByUserID(ctx context.Context, userID string) ([]GameRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT h.id, h.session_uid, h.played_at, h.winner_name, h.player_count, seat.won
		 FROM game_history h
		 JOIN game_history_seat seat ON seat.history_id = h.id
		 WHERE seat.user_id = $1
		 ORDER BY h.played_at DESC
		 LIMIT 100`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var rec GameRecord
		if err := rows.Scan(&rec.ID, &rec.SessionUID, &rec.PlayedAt, &rec.WinnerName, &rec.PlayerCount, &rec.Won); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LeaderboardEntry is one row of the win-count leaderboard.
type LeaderboardEntry struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

// ListLeaderboard returns players ordered by wins.
func (s *Store) ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, display_name, wins, losses
		 FROM player_ratings
		 ORDER BY wins DESC, losses ASC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Wins, &e.Losses); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
