package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthbuddy/internal/store"
)

// SessionController serves the device-session routes. At most one session
// is active at a time; the store enforces that on create.
type SessionController struct {
	store store.Store
}

func NewSessionController(s store.Store) *SessionController {
	return &SessionController{store: s}
}

type createSessionRequest struct {
	UserID string `json:"userId"`
}

func (sc *SessionController) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	if err := sc.store.CreateSession(c.Request.Context(), req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (sc *SessionController) GetActiveSession(c *gin.Context) {
	user, err := sc.store.GetActiveSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active session"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (sc *SessionController) ClearSession(c *gin.Context) {
	if err := sc.store.ClearSession(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
