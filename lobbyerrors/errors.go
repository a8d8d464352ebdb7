package lobbyerrors

import "errors"

// Lobby/session sentinel errors. Used by both the lobby and ws packages
// to avoid circular imports.
var (
	ErrLobbyNotFound = errors.New("lobby not found")
	ErrSeatNotFound  = errors.New("seat not found in lobby")
	ErrLobbyFull     = errors.New("lobby is full")
	ErrNotOwner      = errors.New("only the lobby owner may do that")
	ErrNotReady      = errors.New("lobby is not ready")
	ErrBadSeatCount  = errors.New("seat count must be between 2 and 5")
)
