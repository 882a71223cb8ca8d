package services

import (
	"errors"
	"testing"
	"time"

	"github.com/jeffmcelheran/the-name-game/internal/apperr"
	"github.com/jeffmcelheran/the-name-game/internal/gamecode"
	"github.com/jeffmcelheran/the-name-game/internal/models"
	"github.com/jeffmcelheran/the-name-game/internal/store"
)

func TestVerifyHost(t *testing.T) {
	st := store.NewMemoryStore()
	auth := NewHostAuthService(st)

	token, err := gamecode.NewHostToken()
	if err != nil {
		t.Fatalf("NewHostToken: %v", err)
	}
	err = st.CreateGame(&models.Game{
		ID:              "g1",
		Code:            "ABCD",
		HostTokenDigest: gamecode.Digest(token),
		Status:          models.GameStatusLobby,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	if err := auth.VerifyHost("g1", token); err != nil {
		t.Fatalf("correct token rejected: %v", err)
	}

	if err := auth.VerifyHost("g1", "wrong-token"); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("wrong token: want ErrNotAuthorized, got %v", err)
	}

	// unknown game must be indistinguishable from a wrong token
	unknownErr := auth.VerifyHost("missing", token)
	wrongErr := auth.VerifyHost("g1", "wrong-token")
	if !errors.Is(unknownErr, apperr.ErrNotAuthorized) {
		t.Fatalf("unknown game: want ErrNotAuthorized, got %v", unknownErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("responses differ: %q vs %q", unknownErr, wrongErr)
	}
}
