// Package api provides user directory handlers
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theeace/dashboard-go/userdir"
)

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	UserID   string `json:"userId" binding:"required"`
	Passkey  string `json:"passkey" binding:"required"`
}

// ListUsersHandler returns all accounts, newest first, passkeys omitted.
func (a *API) ListUsersHandler(c *gin.Context) {
	users, err := a.Users.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error reading users", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUserHandler adds a single account.
func (a *API) CreateUserHandler(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	user, err := a.Users.Create(req.Username, req.UserID, req.Passkey)
	if errors.Is(err, userdir.ErrConflict) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username or User ID already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding user", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// DeleteUserHandler removes an account.
func (a *API) DeleteUserHandler(c *gin.Context) {
	userID := c.Param("userId")
	if err := a.Users.Delete(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting user", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// BulkImportHandler imports accounts from an uploaded CSV file with
// header username,userId,passkey. Results are reported per row.
func (a *API) BulkImportHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("csv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error reading uploaded file", "error": err.Error()})
		return
	}
	defer file.Close()

	results, err := a.Users.BulkImport(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error processing CSV file", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Import completed",
		"results": results,
	})
}
