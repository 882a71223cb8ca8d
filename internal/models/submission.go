package models

import "time"

type Submission struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	GameID    string    `gorm:"size:36;not null;index;uniqueIndex:idx_game_player" json:"game_id"`
	PlayerID  string    `gorm:"size:36;not null;uniqueIndex:idx_game_player" json:"player_id"`
	Text      string    `gorm:"size:80;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
