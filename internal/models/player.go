package models

import "time"

type Player struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	GameID      string    `gorm:"size:36;not null;index;uniqueIndex:idx_game_client" json:"game_id"`
	ClientID    string    `gorm:"size:64;not null;uniqueIndex:idx_game_client" json:"-"`
	DisplayName string    `gorm:"size:100;not null" json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}
