package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/jeffmcelheran/the-name-game/internal/apperr"
	"github.com/jeffmcelheran/the-name-game/internal/gamecode"
	"github.com/jeffmcelheran/the-name-game/internal/store"
)

// HostAuthService checks a presented bearer token against a game's
// stored token digest. The plaintext token lives only on the host's
// device and is replayed per action; the server keeps only the digest.
type HostAuthService struct {
	store store.Store
}

func NewHostAuthService(st store.Store) *HostAuthService {
	return &HostAuthService{store: st}
}

// VerifyHost returns nil when token is the game's host token. An unknown
// game id and a wrong token both come back as ErrNotAuthorized so
// host-gated endpoints never reveal which game ids exist.
func (s *HostAuthService) VerifyHost(gameID, token string) error {
	game, err := s.store.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: not the host of this game", apperr.ErrNotAuthorized)
		}
		return err
	}

	digest := gamecode.Digest(token)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(game.HostTokenDigest)) != 1 {
		return fmt.Errorf("%w: not the host of this game", apperr.ErrNotAuthorized)
	}
	return nil
}
