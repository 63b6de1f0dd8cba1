package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/career-compass/internal/apperr"
	"github.com/justsurfingit/career-compass/internal/dtos"
	"github.com/justsurfingit/career-compass/internal/identity"
	"github.com/justsurfingit/career-compass/internal/tracker"
)

// AuthHandler exposes the identity gate: register, login, logout and
// password reset. Known provider failures map to the inline banner messages;
// anything else gets the generic one.
type AuthHandler struct {
	Gate   *identity.Gate
	Router *tracker.Router
}

func NewAuthHandler(gate *identity.Gate, router *tracker.Router) *AuthHandler {
	return &AuthHandler{Gate: gate, Router: router}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	user, err := h.Gate.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	h.respondSession(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	user, err := h.Gate.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	h.respondSession(c, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Gate.Logout()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dtos.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if err := h.Gate.ResetPassword(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send password reset email."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset email sent."})
}

// Session is GET /session: the screen the router has resolved plus the
// current user, if any.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"screen": h.Router.Screen(),
		"user":   h.Router.User(),
	})
}

func (h *AuthHandler) respondSession(c *gin.Context, user *identity.UserIdentity) {
	token, err := h.Gate.IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

func respondAuthError(c *gin.Context, err error) {
	status := http.StatusUnauthorized
	if e, ok := err.(*apperr.Error); ok {
		status = e.HTTPStatus()
	}
	c.JSON(status, gin.H{"error": apperr.UserMessage(err)})
}
