// Package api provides authentication handlers
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/theeace/dashboard-go/config"
	"github.com/theeace/dashboard-go/userdir"
	"github.com/theeace/dashboard-go/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	UserID   string `json:"userId" binding:"required"`
	Passkey  string `json:"passkey" binding:"required"`
}

// LoginHandler authenticates the username/userId/passkey triple. There
// is no permissive fallback: unknown credentials are rejected.
func (a *API) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	user, err := a.Users.Authenticate(req.Username, req.UserID, req.Passkey)
	if errors.Is(err, userdir.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error during login"})
		return
	}

	claims := jwt.MapClaims{
		"username": user.Username,
		"userId":   user.UserID,
		"type":     "user_session",
	}
	token, err := utils.GenerateJWT(claims, a.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
		return
	}

	c.SetCookie(
		"loggedInUser",              // name
		token,                       // value
		config.SessionMaxAgeSeconds, // maxAge (24 hours)
		"/",                         // path
		"",                          // domain (empty for current domain)
		false,                       // secure (set to true in production with HTTPS)
		true,                        // httpOnly
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// DecodeSessionHandler returns the session claims for a bearer token,
// or a null session for a missing or invalid token.
func (a *API) DecodeSessionHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}

	claims, err := utils.ValidateJWT(authHeader[7:], a.JWTSecret)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": gin.H{
		"username": claims["username"],
		"userId":   claims["userId"],
	}})
}

// LogoutHandler clears the session cookie and redirects to the login
// page.
func (a *API) LogoutHandler(c *gin.Context) {
	c.SetCookie("loggedInUser", "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
