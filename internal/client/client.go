// Package client is the consuming side of the game API: a thin JSON
// client plus the fixed-interval polling loop that keeps a display in
// sync with the server's state projection.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jeffmcelheran/the-name-game/internal/services"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) post(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	return decode(resp, out)
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	return decode(resp, out)
}

func decode(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("api: %s", apiErr.Error)
		}
		return fmt.Errorf("api: status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

func (c *Client) CreateGame() (*services.CreateResult, error) {
	var result services.CreateResult
	if err := c.post("/api/v1/games", struct{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Join(code, displayName, clientID string) (*services.JoinResult, error) {
	req := map[string]string{
		"code":         code,
		"display_name": displayName,
		"client_id":    clientID,
	}
	var result services.JoinResult
	if err := c.post("/api/v1/games/join", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Submit(gameID, playerID, text string) error {
	req := map[string]string{
		"game_id":   gameID,
		"player_id": playerID,
		"text":      text,
	}
	return c.post("/api/v1/games/submit", req, nil)
}

func (c *Client) Reveal(gameID, hostToken string) error {
	return c.post("/api/v1/games/reveal", hostAction(gameID, hostToken), nil)
}

func (c *Client) RevealStep(gameID, hostToken, dir string) (int, error) {
	req := map[string]string{
		"game_id":    gameID,
		"host_token": hostToken,
		"dir":        dir,
	}
	var result struct {
		RevealIndex int `json:"reveal_index"`
	}
	if err := c.post("/api/v1/games/reveal-step", req, &result); err != nil {
		return 0, err
	}
	return result.RevealIndex, nil
}

func (c *Client) Clear(gameID, hostToken string) error {
	return c.post("/api/v1/games/clear", hostAction(gameID, hostToken), nil)
}

func (c *Client) NewRound(gameID, hostToken string) error {
	return c.post("/api/v1/games/new-round", hostAction(gameID, hostToken), nil)
}

func (c *Client) State(code string) (*services.GameState, error) {
	var state services.GameState
	if err := c.get("/api/v1/games/state?code="+url.QueryEscape(code), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func hostAction(gameID, hostToken string) map[string]string {
	return map[string]string{
		"game_id":    gameID,
		"host_token": hostToken,
	}
}
