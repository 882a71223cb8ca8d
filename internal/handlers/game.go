package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffmcelheran/the-name-game/internal/services"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type JoinRequest struct {
	Code        string `json:"code" binding:"required"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	ClientID    string `json:"client_id" binding:"required,max=64"`
}

type SubmitRequest struct {
	GameID   string `json:"game_id" binding:"required"`
	PlayerID string `json:"player_id" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

type HostActionRequest struct {
	GameID    string `json:"game_id" binding:"required"`
	HostToken string `json:"host_token" binding:"required"`
}

type RevealStepRequest struct {
	GameID    string `json:"game_id" binding:"required"`
	HostToken string `json:"host_token" binding:"required"`
	Dir       string `json:"dir" binding:"required"`
}

// Create starts a new game and returns the shareable code plus the host
// token. The token is never returned again.
func (h *GameHandler) Create(c *gin.Context) {
	result, err := h.gameService.Create()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *GameHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.gameService.Join(req.Code, req.DisplayName, req.ClientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GameHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.gameService.Submit(req.GameID, req.PlayerID, req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "submission accepted"})
}

func (h *GameHandler) Reveal(c *gin.Context) {
	var req HostActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.gameService.Reveal(req.GameID, req.HostToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "revealed"})
}

func (h *GameHandler) RevealStep(c *gin.Context) {
	var req RevealStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	index, err := h.gameService.StepReveal(req.GameID, req.HostToken, req.Dir)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reveal_index": index})
}

func (h *GameHandler) Clear(c *gin.Context) {
	var req HostActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.gameService.Clear(req.GameID, req.HostToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "cleared"})
}

func (h *GameHandler) NewRound(c *gin.Context) {
	var req HostActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.gameService.NewRound(req.GameID, req.HostToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "new round started"})
}

// State serves the polling snapshot for ?code=XXXX.
func (h *GameHandler) State(c *gin.Context) {
	state, err := h.gameService.State(c.Query("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
