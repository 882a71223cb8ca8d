package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Game struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Code            string     `gorm:"size:4;uniqueIndex;not null" json:"code"`
	HostTokenDigest string     `gorm:"size:64;not null" json:"-"`
	Status          string     `gorm:"size:20;not null;default:'lobby'" json:"status"`
	RevealOrder     StringList `gorm:"type:text" json:"reveal_order"`
	RevealIndex     int        `gorm:"not null;default:0" json:"reveal_index"`
	CreatedAt       time.Time  `json:"created_at"`
}

const (
	GameStatusLobby    = "lobby"
	GameStatusRevealed = "revealed"
	GameStatusCleared  = "cleared"
)

// StringList stores a JSON-encoded string slice in a single text column.
// A nil list round-trips as SQL NULL.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}
