package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jeffmcelheran/the-name-game/internal/apperr"
	"github.com/jeffmcelheran/the-name-game/internal/gamecode"
	"github.com/jeffmcelheran/the-name-game/internal/models"
	"github.com/jeffmcelheran/the-name-game/internal/store"
)

// createCodeAttempts bounds retries when a generated code collides with
// an existing game.
const createCodeAttempts = 10

const (
	minNameLen = 2
	maxNameLen = 80
)

// Reveal-step directions.
const (
	StepNext  = "next"
	StepPrev  = "prev"
	StepReset = "reset"
)

// GameService drives the game state machine:
// lobby -> revealed -> cleared -> lobby. Every method is a stateless
// read-modify-write against the store; concurrent callers are serialized
// only by the store's single-row write atomicity (see StepReveal).
type GameService struct {
	store store.Store
	auth  *HostAuthService
}

func NewGameService(st store.Store, auth *HostAuthService) *GameService {
	return &GameService{store: st, auth: auth}
}

type CreateResult struct {
	GameID string `json:"game_id"`
	Code   string `json:"code"`
	// HostToken is returned in plaintext exactly once, at creation.
	HostToken string `json:"host_token"`
}

type JoinResult struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

// GameState is the polling snapshot assembled from three independent
// reads (game, players, submission count). It is not a transactional
// snapshot; clients poll and converge on the next cycle.
type GameState struct {
	GameID         string            `json:"game_id"`
	Code           string            `json:"code"`
	Status         string            `json:"status"`
	RevealOrder    models.StringList `json:"reveal_order"`
	RevealIndex    int               `json:"reveal_index"`
	Players        []models.Player   `json:"players"`
	PlayerCount    int               `json:"player_count"`
	SubmittedCount int               `json:"submitted_count"`
}

// Create allocates a new game in the lobby state. Code generation is
// retried on collision up to createCodeAttempts times.
func (s *GameService) Create() (*CreateResult, error) {
	for attempt := 0; attempt < createCodeAttempts; attempt++ {
		code, err := gamecode.NewCode(gamecode.CodeLength)
		if err != nil {
			return nil, fmt.Errorf("%w: generate code: %v", apperr.ErrStore, err)
		}
		token, err := gamecode.NewHostToken()
		if err != nil {
			return nil, fmt.Errorf("%w: generate token: %v", apperr.ErrStore, err)
		}

		game := models.Game{
			ID:              uuid.NewString(),
			Code:            code,
			HostTokenDigest: gamecode.Digest(token),
			Status:          models.GameStatusLobby,
			CreatedAt:       time.Now(),
		}
		err = s.store.CreateGame(&game)
		if errors.Is(err, store.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &CreateResult{GameID: game.ID, Code: code, HostToken: token}, nil
	}
	return nil, apperr.ErrCodeExhausted
}

// Join adds a player to the game named by code, or refreshes the display
// name when the same client identity joins again. Joining is allowed in
// any status.
func (s *GameService) Join(code, displayName, clientID string) (*JoinResult, error) {
	game, err := s.store.GetGameByCode(gamecode.NormalizeCode(code))
	if err != nil {
		return nil, err
	}

	player, err := s.store.UpsertPlayer(game.ID, clientID, displayName)
	if err != nil {
		return nil, err
	}
	return &JoinResult{GameID: game.ID, PlayerID: player.ID}, nil
}

// Submit records a player's name for the current round, overwriting any
// prior submission by the same player.
func (s *GameService) Submit(gameID, playerID, text string) error {
	cleaned := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(cleaned); n < minNameLen || n > maxNameLen {
		return fmt.Errorf("%w: name must be %d-%d characters", apperr.ErrValidation, minNameLen, maxNameLen)
	}

	player, err := s.store.GetPlayerByID(playerID)
	if err != nil {
		return err
	}
	if player.GameID != gameID {
		return fmt.Errorf("%w: player does not belong to this game", apperr.ErrNotAuthorized)
	}

	game, err := s.store.GetGameByID(gameID)
	if err != nil {
		return err
	}
	if game.Status != models.GameStatusLobby {
		return fmt.Errorf("%w: submissions are only accepted in the lobby", apperr.ErrInvalidState)
	}

	return s.store.UpsertSubmission(gameID, playerID, cleaned)
}

// Reveal snapshots all submitted names into a uniformly random order and
// moves the game to revealed. It requires every player to have submitted
// and at least two players.
func (s *GameService) Reveal(gameID, hostToken string) error {
	if err := s.auth.VerifyHost(gameID, hostToken); err != nil {
		return err
	}

	game, err := s.store.GetGameByID(gameID)
	if err != nil {
		return err
	}
	if game.Status != models.GameStatusLobby {
		return fmt.Errorf("%w: game is not in the lobby", apperr.ErrInvalidState)
	}

	players, err := s.store.ListPlayers(gameID)
	if err != nil {
		return err
	}
	if len(players) < 2 {
		return fmt.Errorf("%w: need at least 2 players to reveal", apperr.ErrPrecondition)
	}

	count, err := s.store.CountSubmissions(gameID)
	if err != nil {
		return err
	}
	if count != int64(len(players)) {
		return fmt.Errorf("%w: waiting for all players to submit", apperr.ErrPrecondition)
	}

	texts, err := s.store.ListSubmissionTexts(gameID)
	if err != nil {
		return err
	}

	order := make(models.StringList, len(texts))
	copy(order, texts)
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	return s.store.UpdateGame(gameID, map[string]interface{}{
		"status":       models.GameStatusRevealed,
		"reveal_order": order,
		"reveal_index": 0,
	})
}

// StepReveal moves the reveal cursor. next and prev clamp to the ends of
// the order; reset returns to the start. Concurrent steps can race
// read-then-write and lose an update; the last single-row write wins,
// which is acceptable for a party game. A conditional update keyed on
// the expected prior index is the upgrade path if that ever matters.
func (s *GameService) StepReveal(gameID, hostToken, dir string) (int, error) {
	if err := s.auth.VerifyHost(gameID, hostToken); err != nil {
		return 0, err
	}

	game, err := s.store.GetGameByID(gameID)
	if err != nil {
		return 0, err
	}
	if game.Status != models.GameStatusRevealed {
		return 0, fmt.Errorf("%w: nothing is being revealed", apperr.ErrInvalidState)
	}
	if len(game.RevealOrder) == 0 {
		return game.RevealIndex, nil
	}

	index := game.RevealIndex
	switch dir {
	case StepNext:
		if index < len(game.RevealOrder)-1 {
			index++
		}
	case StepPrev:
		if index > 0 {
			index--
		}
	case StepReset:
		index = 0
	default:
		return 0, fmt.Errorf("%w: dir must be next, prev or reset", apperr.ErrValidation)
	}

	if err := s.store.UpdateGame(gameID, map[string]interface{}{
		"reveal_index": index,
	}); err != nil {
		return 0, err
	}
	return index, nil
}

// Clear discards the reveal order and marks the game cleared. It is
// callable from any status.
func (s *GameService) Clear(gameID, hostToken string) error {
	if err := s.auth.VerifyHost(gameID, hostToken); err != nil {
		return err
	}

	return s.store.UpdateGame(gameID, map[string]interface{}{
		"status":       models.GameStatusCleared,
		"reveal_order": nil,
		"reveal_index": 0,
	})
}

// NewRound purges the previous round's submissions and re-enters the
// lobby. Purging keeps a stale submission count from satisfying the
// reveal precondition the moment the new round opens.
func (s *GameService) NewRound(gameID, hostToken string) error {
	if err := s.auth.VerifyHost(gameID, hostToken); err != nil {
		return err
	}

	if err := s.store.DeleteSubmissions(gameID); err != nil {
		return err
	}
	return s.store.UpdateGame(gameID, map[string]interface{}{
		"status":       models.GameStatusLobby,
		"reveal_order": nil,
		"reveal_index": 0,
	})
}

// State assembles the polling snapshot for the game named by code.
func (s *GameService) State(code string) (*GameState, error) {
	normalized := gamecode.NormalizeCode(code)
	if !gamecode.ValidCode(normalized) {
		return nil, fmt.Errorf("%w: invalid game code", apperr.ErrValidation)
	}

	game, err := s.store.GetGameByCode(normalized)
	if err != nil {
		return nil, err
	}

	players, err := s.store.ListPlayers(game.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.store.CountSubmissions(game.ID)
	if err != nil {
		return nil, err
	}

	return &GameState{
		GameID:         game.ID,
		Code:           game.Code,
		Status:         game.Status,
		RevealOrder:    game.RevealOrder,
		RevealIndex:    game.RevealIndex,
		Players:        players,
		PlayerCount:    len(players),
		SubmittedCount: int(count),
	}, nil
}
