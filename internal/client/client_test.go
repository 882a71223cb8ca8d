package client

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeffmcelheran/the-name-game/internal/handlers"
	"github.com/jeffmcelheran/the-name-game/internal/services"
	"github.com/jeffmcelheran/the-name-game/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	gameService := services.NewGameService(st, services.NewHostAuthService(st))
	srv := httptest.NewServer(handlers.SetupRouter(handlers.NewGameHandler(gameService)))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FullRound(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	created, err := c.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	p1, err := c.Join(created.Code, "One", "device-1")
	if err != nil {
		t.Fatalf("Join one: %v", err)
	}
	p2, err := c.Join(created.Code, "Two", "device-2")
	if err != nil {
		t.Fatalf("Join two: %v", err)
	}

	if err := c.Submit(created.GameID, p1.PlayerID, "Alice"); err != nil {
		t.Fatalf("Submit one: %v", err)
	}
	if err := c.Submit(created.GameID, p2.PlayerID, "Bob"); err != nil {
		t.Fatalf("Submit two: %v", err)
	}

	if err := c.Reveal(created.GameID, created.HostToken); err != nil {
		t.Fatalf("Reveal: %v", err)
	}

	index, err := c.RevealStep(created.GameID, created.HostToken, "next")
	if err != nil {
		t.Fatalf("RevealStep: %v", err)
	}
	if index != 1 {
		t.Fatalf("want index 1, got %d", index)
	}

	state, err := c.State(created.Code)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.Status != "revealed" || len(state.RevealOrder) != 2 || state.RevealIndex != 1 {
		t.Fatalf("unexpected state: %+v", state)
	}

	if err := c.Clear(created.GameID, created.HostToken); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := c.NewRound(created.GameID, created.HostToken); err != nil {
		t.Fatalf("NewRound: %v", err)
	}
}

func TestClient_SurfacesAPIErrors(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	created, err := c.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	if err := c.Reveal(created.GameID, "wrong-token"); err == nil {
		t.Fatal("want an error for a wrong host token")
	}

	if _, err := c.State("ZZZZ"); err == nil {
		t.Fatal("want an error for an unknown code")
	}
}

func TestPoller_DeliversSnapshots(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	created, err := c.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := c.Join(created.Code, "One", "device-1"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	snapshots := make(chan *services.GameState, 8)
	p := NewPoller(c, created.Code, 10*time.Millisecond, func(s *services.GameState) {
		select {
		case snapshots <- s:
		default:
		}
	})
	go p.Start()
	defer p.Stop()

	select {
	case snap := <-snapshots:
		if snap.Code != created.Code || snap.PlayerCount != 1 {
			t.Fatalf("unexpected snapshot: %+v", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a snapshot")
	}
}

func TestPoller_BusyFlagRejectsOverlappingActions(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	p := NewPoller(c, "ABCD", time.Second, func(*services.GameState) {})

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = p.Do(func(*Client) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	if err := p.Do(func(*Client) error { return nil }); err != ErrActionInFlight {
		t.Fatalf("want ErrActionInFlight, got %v", err)
	}
	close(release)
}
