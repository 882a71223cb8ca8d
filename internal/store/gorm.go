package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jeffmcelheran/the-name-game/internal/apperr"
	"github.com/jeffmcelheran/the-name-game/internal/models"
)

// GormStore implements Store on a gorm connection. Single-row writes are
// atomic at the database, which is the only ordering guarantee the game
// service relies on.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateGame(game *models.Game) error {
	if err := s.db.Create(game).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCodeTaken
		}
		return fmt.Errorf("%w: create game: %v", apperr.ErrStore, err)
	}
	return nil
}

func (s *GormStore) GetGameByID(id string) (*models.Game, error) {
	var game models.Game
	if err := s.db.Where("id = ?", id).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: get game: %v", apperr.ErrStore, err)
	}
	return &game, nil
}

func (s *GormStore) GetGameByCode(code string) (*models.Game, error) {
	var game models.Game
	if err := s.db.Where("code = ?", code).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: get game by code: %v", apperr.ErrStore, err)
	}
	return &game, nil
}

func (s *GormStore) UpdateGame(id string, fields map[string]interface{}) error {
	res := s.db.Model(&models.Game{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("%w: update game: %v", apperr.ErrStore, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: game", apperr.ErrNotFound)
	}
	return nil
}

func (s *GormStore) UpsertPlayer(gameID, clientID, displayName string) (*models.Player, error) {
	player := models.Player{
		ID:          uuid.NewString(),
		GameID:      gameID,
		ClientID:    clientID,
		DisplayName: displayName,
		JoinedAt:    time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name"}),
	}).Create(&player).Error
	if err != nil {
		return nil, fmt.Errorf("%w: upsert player: %v", apperr.ErrStore, err)
	}

	// On conflict the generated id above never hit the table; re-read the
	// surviving row so callers get the real player id.
	var out models.Player
	if err := s.db.Where("game_id = ? AND client_id = ?", gameID, clientID).
		First(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: reload player: %v", apperr.ErrStore, err)
	}
	return &out, nil
}

func (s *GormStore) GetPlayerByID(id string) (*models.Player, error) {
	var player models.Player
	if err := s.db.Where("id = ?", id).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: player", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: get player: %v", apperr.ErrStore, err)
	}
	return &player, nil
}

func (s *GormStore) ListPlayers(gameID string) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.Where("game_id = ?", gameID).
		Order("joined_at ASC, id ASC").
		Find(&players).Error; err != nil {
		return nil, fmt.Errorf("%w: list players: %v", apperr.ErrStore, err)
	}
	return players, nil
}

func (s *GormStore) UpsertSubmission(gameID, playerID, text string) error {
	sub := models.Submission{
		ID:       uuid.NewString(),
		GameID:   gameID,
		PlayerID: playerID,
		Text:     text,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
	}).Create(&sub).Error
	if err != nil {
		return fmt.Errorf("%w: upsert submission: %v", apperr.ErrStore, err)
	}
	return nil
}

func (s *GormStore) ListSubmissionTexts(gameID string) ([]string, error) {
	var texts []string
	if err := s.db.Model(&models.Submission{}).
		Where("game_id = ?", gameID).
		Pluck("text", &texts).Error; err != nil {
		return nil, fmt.Errorf("%w: list submissions: %v", apperr.ErrStore, err)
	}
	return texts, nil
}

func (s *GormStore) CountSubmissions(gameID string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Submission{}).
		Where("game_id = ?", gameID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: count submissions: %v", apperr.ErrStore, err)
	}
	return count, nil
}

func (s *GormStore) DeleteSubmissions(gameID string) error {
	if err := s.db.Where("game_id = ?", gameID).
		Delete(&models.Submission{}).Error; err != nil {
		return fmt.Errorf("%w: delete submissions: %v", apperr.ErrStore, err)
	}
	return nil
}
