package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeffmcelheran/the-name-game/internal/apperr"
	"github.com/jeffmcelheran/the-name-game/internal/models"
)

// MemoryStore implements Store with mutex-guarded maps. It backs tests
// and local development without a database; it honors the same
// uniqueness contracts as the postgres schema.
type MemoryStore struct {
	mu          sync.RWMutex
	games       map[string]*models.Game       // id -> game
	players     map[string]*models.Player     // id -> player
	submissions map[string]*models.Submission // id -> submission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:       make(map[string]*models.Game),
		players:     make(map[string]*models.Player),
		submissions: make(map[string]*models.Submission),
	}
}

func (s *MemoryStore) CreateGame(game *models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.games {
		if g.Code == game.Code {
			return ErrCodeTaken
		}
	}
	cp := *game
	s.games[cp.ID] = &cp
	return nil
}

func (s *MemoryStore) GetGameByID(id string) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: game", apperr.ErrNotFound)
	}
	cp := *game
	return &cp, nil
}

func (s *MemoryStore) GetGameByCode(code string) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, game := range s.games {
		if game.Code == code {
			cp := *game
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: game", apperr.ErrNotFound)
}

func (s *MemoryStore) UpdateGame(id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[id]
	if !ok {
		return fmt.Errorf("%w: game", apperr.ErrNotFound)
	}
	// Validate every field before touching the row so a bad update is
	// rejected whole, like a single-row write would be.
	for key, value := range fields {
		switch key {
		case "status":
			if _, ok := value.(string); !ok {
				return fmt.Errorf("%w: status must be a string, got %T", apperr.ErrStore, value)
			}
		case "reveal_order":
			if value == nil {
				continue
			}
			if _, ok := value.(models.StringList); !ok {
				return fmt.Errorf("%w: reveal_order must be a StringList, got %T", apperr.ErrStore, value)
			}
		case "reveal_index":
			if _, ok := value.(int); !ok {
				return fmt.Errorf("%w: reveal_index must be an int, got %T", apperr.ErrStore, value)
			}
		default:
			return fmt.Errorf("%w: unknown game column %q", apperr.ErrStore, key)
		}
	}

	for key, value := range fields {
		switch key {
		case "status":
			game.Status = value.(string)
		case "reveal_order":
			if value == nil {
				game.RevealOrder = nil
			} else {
				game.RevealOrder = value.(models.StringList)
			}
		case "reveal_index":
			game.RevealIndex = value.(int)
		}
	}
	return nil
}

func (s *MemoryStore) UpsertPlayer(gameID, clientID, displayName string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.players {
		if p.GameID == gameID && p.ClientID == clientID {
			p.DisplayName = displayName
			cp := *p
			return &cp, nil
		}
	}
	player := &models.Player{
		ID:          uuid.NewString(),
		GameID:      gameID,
		ClientID:    clientID,
		DisplayName: displayName,
		JoinedAt:    time.Now(),
	}
	s.players[player.ID] = player
	cp := *player
	return &cp, nil
}

func (s *MemoryStore) GetPlayerByID(id string) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: player", apperr.ErrNotFound)
	}
	cp := *player
	return &cp, nil
}

func (s *MemoryStore) ListPlayers(gameID string) ([]models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var players []models.Player
	for _, p := range s.players {
		if p.GameID == gameID {
			players = append(players, *p)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].ID < players[j].ID
		}
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})
	return players, nil
}

func (s *MemoryStore) UpsertSubmission(gameID, playerID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.submissions {
		if sub.GameID == gameID && sub.PlayerID == playerID {
			sub.Text = text
			sub.UpdatedAt = time.Now()
			return nil
		}
	}
	now := time.Now()
	sub := &models.Submission{
		ID:        uuid.NewString(),
		GameID:    gameID,
		PlayerID:  playerID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.submissions[sub.ID] = sub
	return nil
}

func (s *MemoryStore) ListSubmissionTexts(gameID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var texts []string
	for _, sub := range s.submissions {
		if sub.GameID == gameID {
			texts = append(texts, sub.Text)
		}
	}
	return texts, nil
}

func (s *MemoryStore) CountSubmissions(gameID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, sub := range s.submissions {
		if sub.GameID == gameID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteSubmissions(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sub := range s.submissions {
		if sub.GameID == gameID {
			delete(s.submissions, id)
		}
	}
	return nil
}
