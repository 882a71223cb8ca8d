// Package store abstracts durable CRUD access to games, players and
// submissions. The state machine only depends on the Store interface,
// so the storage engine (and the client-trusted device-identity scheme
// keyed through it) can be swapped without touching game logic.
package store

import (
	"errors"

	"github.com/jeffmcelheran/the-name-game/internal/models"
)

// ErrCodeTaken signals a duplicate game code on insert; the caller
// retries with a fresh code.
var ErrCodeTaken = errors.New("game code already in use")

type Store interface {
	// CreateGame inserts a new game row. Returns ErrCodeTaken when the
	// code collides with an existing game.
	CreateGame(game *models.Game) error

	GetGameByID(id string) (*models.Game, error)
	GetGameByCode(code string) (*models.Game, error)

	// UpdateGame writes a subset of game columns in a single atomic
	// update. Recognized keys: status, reveal_order, reveal_index.
	UpdateGame(id string, fields map[string]interface{}) error

	// UpsertPlayer inserts a player or, when (gameID, clientID) already
	// exists, updates the display name. Returns the surviving row.
	UpsertPlayer(gameID, clientID, displayName string) (*models.Player, error)

	GetPlayerByID(id string) (*models.Player, error)

	// ListPlayers returns a game's players ordered by join time,
	// ascending and stable.
	ListPlayers(gameID string) ([]models.Player, error)

	// UpsertSubmission inserts a submission or, when (gameID, playerID)
	// already exists, overwrites the text.
	UpsertSubmission(gameID, playerID, text string) error

	ListSubmissionTexts(gameID string) ([]string, error)
	CountSubmissions(gameID string) (int64, error)

	// DeleteSubmissions removes every submission for a game.
	DeleteSubmissions(gameID string) error
}
