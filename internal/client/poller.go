package client

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jeffmcelheran/the-name-game/internal/services"
)

// ErrActionInFlight is returned by Do when the previous action has not
// finished. The busy flag is a client-side courtesy, not a server lock.
var ErrActionInFlight = errors.New("another action is still in flight")

// Poller re-fetches a game's state projection on a fixed interval and
// hands each snapshot to the render callback. Snapshots may be
// transiently inconsistent across their three underlying reads; the
// callback must render idempotently from whatever it is given, and the
// next tick converges.
type Poller struct {
	client   *Client
	code     string
	interval time.Duration
	onState  func(*services.GameState)

	busy     atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewPoller(c *Client, code string, interval time.Duration, onState func(*services.GameState)) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		client:   c,
		code:     code,
		interval: interval,
		onState:  onState,
		stopCh:   make(chan struct{}),
	}
}

// Start polls until Stop is called. A failed fetch is logged and
// retried on the next tick; the poll itself never mutates anything.
func (p *Poller) Start() {
	p.tick()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *Poller) tick() {
	state, err := p.client.State(p.code)
	if err != nil {
		log.Printf("poll %s: %v", p.code, err)
		return
	}
	p.onState(state)
}

// Do runs one user-triggered action, rejecting it while a previous one
// is still in flight so a double-tap cannot issue overlapping requests.
func (p *Poller) Do(action func(*Client) error) error {
	if !p.busy.CompareAndSwap(false, true) {
		return ErrActionInFlight
	}
	defer p.busy.Store(false)

	return action(p.client)
}
