package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds all configurable server parameters.
type Config struct {
	WSPort        int `json:"ws_port"`
	MaxNameLength int `json:"max_name_length"`

	// DefaultMaxPlayers is the seat count a new lobby starts with. The owner
	// may change it (2-5) before the game starts.
	DefaultMaxPlayers int `json:"default_max_players"`

	// TurnLimitSec is the per-turn clock. When it expires the stalled seat
	// is forced to pick up the pile and the turn passes. 0 disables it.
	TurnLimitSec int `json:"turn_limit_sec"`

	// KeepLobbyAfterGame retains a lobby (with its instance cleared) after a
	// win so the same group can ready up and play again. When false the
	// lobby is removed and players must rejoin under a new session id.
	KeepLobbyAfterGame bool `json:"keep_lobby_after_game"`

	// DatabaseURL enables match history persistence when set.
	DatabaseURL string `json:"database_url"`

	// AuthBaseURL is the JWKS issuer base URL. When empty, clients may
	// identify with a plain set_name style handshake (local play).
	AuthBaseURL string `json:"auth_base_url"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		WSPort:             8080,
		MaxNameLength:      24,
		DefaultMaxPlayers:  2,
		TurnLimitSec:       0,
		KeepLobbyAfterGame: false,
	}
}

// Load reads configuration from an optional config.json file, then applies
// environment variable overrides. Fields not set in either source retain
// their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			log.Printf("Warning: failed to parse config.json: %v", err)
		}
	}

	overrideInt(&cfg.WSPort, "WS_PORT")
	overrideInt(&cfg.MaxNameLength, "MAX_NAME_LENGTH")
	overrideInt(&cfg.DefaultMaxPlayers, "DEFAULT_MAX_PLAYERS")
	overrideInt(&cfg.TurnLimitSec, "TURN_LIMIT_SEC")
	overrideBool(&cfg.KeepLobbyAfterGame, "KEEP_LOBBY_AFTER_GAME")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.AuthBaseURL, "AUTH_BASE_URL")

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*field = b
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
