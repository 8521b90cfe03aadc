package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/auth"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	users      *service.UserService
	secret     string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthHandler(users *service.UserService, secret string, ttl time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: users, secret: secret, sessionTTL: ttl, log: log}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. On success the token travels both in the
// session cookie and in the body, for non-browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.IssueToken(h.secret, u, h.sessionTTL)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", u.ID).Msg("token issue failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.SetCookie(auth.SessionCookie, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me handles GET /auth/me: the authenticated actor's own record.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	u, err := h.users.Get(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
