package store

import (
	"errors"
	"testing"
	"time"

	"github.com/jeffmcelheran/the-name-game/internal/apperr"
	"github.com/jeffmcelheran/the-name-game/internal/models"
)

func newGame(t *testing.T, s *MemoryStore, id, code string) {
	t.Helper()
	err := s.CreateGame(&models.Game{
		ID:        id,
		Code:      code,
		Status:    models.GameStatusLobby,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
}

func TestMemoryStore_DuplicateCode(t *testing.T) {
	s := NewMemoryStore()
	newGame(t, s, "g1", "ABCD")

	err := s.CreateGame(&models.Game{ID: "g2", Code: "ABCD"})
	if !errors.Is(err, ErrCodeTaken) {
		t.Fatalf("want ErrCodeTaken, got %v", err)
	}
}

func TestMemoryStore_UpsertPlayer_Idempotent(t *testing.T) {
	s := NewMemoryStore()
	newGame(t, s, "g1", "ABCD")

	first, err := s.UpsertPlayer("g1", "device-1", "Sam")
	if err != nil {
		t.Fatalf("UpsertPlayer: %v", err)
	}
	second, err := s.UpsertPlayer("g1", "device-1", "Sammy")
	if err != nil {
		t.Fatalf("UpsertPlayer again: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("rejoin created a new row: %s vs %s", first.ID, second.ID)
	}
	if second.DisplayName != "Sammy" {
		t.Fatalf("want display name updated to Sammy, got %q", second.DisplayName)
	}

	players, err := s.ListPlayers("g1")
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("want 1 player, got %d", len(players))
	}
}

func TestMemoryStore_ListPlayers_OrderedByJoin(t *testing.T) {
	s := NewMemoryStore()
	newGame(t, s, "g1", "ABCD")

	for _, name := range []string{"first", "second", "third"} {
		if _, err := s.UpsertPlayer("g1", name, name); err != nil {
			t.Fatalf("UpsertPlayer %s: %v", name, err)
		}
		time.Sleep(time.Millisecond)
	}

	players, err := s.ListPlayers("g1")
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, p := range players {
		if p.DisplayName != want[i] {
			t.Fatalf("position %d: want %s, got %s", i, want[i], p.DisplayName)
		}
	}
}

func TestMemoryStore_UpsertSubmission_Overwrites(t *testing.T) {
	s := NewMemoryStore()
	newGame(t, s, "g1", "ABCD")
	p, _ := s.UpsertPlayer("g1", "device-1", "Sam")

	if err := s.UpsertSubmission("g1", p.ID, "Alice"); err != nil {
		t.Fatalf("UpsertSubmission: %v", err)
	}
	if err := s.UpsertSubmission("g1", p.ID, "Bob"); err != nil {
		t.Fatalf("UpsertSubmission again: %v", err)
	}

	count, _ := s.CountSubmissions("g1")
	if count != 1 {
		t.Fatalf("want 1 submission after overwrite, got %d", count)
	}
	texts, _ := s.ListSubmissionTexts("g1")
	if len(texts) != 1 || texts[0] != "Bob" {
		t.Fatalf("want [Bob], got %v", texts)
	}
}

func TestMemoryStore_UpdateGame_PartialFields(t *testing.T) {
	s := NewMemoryStore()
	newGame(t, s, "g1", "ABCD")

	err := s.UpdateGame("g1", map[string]interface{}{
		"status":       models.GameStatusRevealed,
		"reveal_order": models.StringList{"a", "b"},
		"reveal_index": 1,
	})
	if err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}

	game, _ := s.GetGameByID("g1")
	if game.Status != models.GameStatusRevealed || game.RevealIndex != 1 || len(game.RevealOrder) != 2 {
		t.Fatalf("update not applied: %+v", game)
	}

	// reveal_order nil clears the column
	if err := s.UpdateGame("g1", map[string]interface{}{"reveal_order": nil}); err != nil {
		t.Fatalf("UpdateGame nil order: %v", err)
	}
	game, _ = s.GetGameByID("g1")
	if game.RevealOrder != nil {
		t.Fatalf("want nil reveal order, got %v", game.RevealOrder)
	}
}

func TestMemoryStore_UpdateGame_RejectsBadValueTypes(t *testing.T) {
	s := NewMemoryStore()
	newGame(t, s, "g1", "ABCD")

	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"status not a string", map[string]interface{}{"status": 7}},
		{"order not a StringList", map[string]interface{}{"reveal_order": "oops"}},
		{"index not an int", map[string]interface{}{"reveal_index": "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.UpdateGame("g1", tt.fields); !errors.Is(err, apperr.ErrStore) {
				t.Fatalf("want ErrStore, got %v", err)
			}
		})
	}

	// a rejected update must not half-apply
	err := s.UpdateGame("g1", map[string]interface{}{
		"status":       models.GameStatusRevealed,
		"reveal_index": "3",
	})
	if !errors.Is(err, apperr.ErrStore) {
		t.Fatalf("want ErrStore, got %v", err)
	}
	game, _ := s.GetGameByID("g1")
	if game.Status != models.GameStatusLobby {
		t.Fatalf("rejected update mutated the row: %+v", game)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.GetGameByID("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetGameByID: want ErrNotFound, got %v", err)
	}
	if _, err := s.GetGameByCode("ZZZZ"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetGameByCode: want ErrNotFound, got %v", err)
	}
	if _, err := s.GetPlayerByID("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetPlayerByID: want ErrNotFound, got %v", err)
	}
	if err := s.UpdateGame("missing", map[string]interface{}{"status": "lobby"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("UpdateGame: want ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_DeleteSubmissions_ScopedToGame(t *testing.T) {
	s := NewMemoryStore()
	newGame(t, s, "g1", "ABCD")
	newGame(t, s, "g2", "EFGH")
	p1, _ := s.UpsertPlayer("g1", "d1", "one")
	p2, _ := s.UpsertPlayer("g2", "d2", "two")
	_ = s.UpsertSubmission("g1", p1.ID, "keepout")
	_ = s.UpsertSubmission("g2", p2.ID, "survives")

	if err := s.DeleteSubmissions("g1"); err != nil {
		t.Fatalf("DeleteSubmissions: %v", err)
	}

	c1, _ := s.CountSubmissions("g1")
	c2, _ := s.CountSubmissions("g2")
	if c1 != 0 || c2 != 1 {
		t.Fatalf("want counts 0 and 1, got %d and %d", c1, c2)
	}
}
