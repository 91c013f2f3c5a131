// Package api provides email marketing handlers
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theeace/dashboard-go/models"
)

const emailStatsCollection = "email-stats"

func defaultEmailStats() models.EmailStats {
	return models.EmailStats{
		Sent:        0,
		Total:       0,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// GetEmailStatsHandler returns the user's email marketing stats,
// creating the zeroed default on first access.
func (a *API) GetEmailStatsHandler(c *gin.Context) {
	var stats models.EmailStats
	err := a.Store.GetOrDefault(emailStatsCollection, c.Param("userId"), &stats, defaultEmailStats())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch email stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

type EmailStatsRequest struct {
	Sent  *float64 `json:"sent" binding:"required"`
	Total *float64 `json:"total" binding:"required"`
}

// UpdateEmailStatsHandler overwrites the user's email stats. Sent may
// never exceed total: invalid updates are rejected and the stored
// stats stay unchanged. Valid updates are mirrored into the metric
// snapshot and trigger a best-effort team notification.
func (a *API) UpdateEmailStatsHandler(c *gin.Context) {
	var req EmailStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both sent and total values are required"})
		return
	}

	if *req.Sent > *req.Total {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sent emails cannot be greater than total emails"})
		return
	}

	userID := c.Param("userId")
	stats := models.EmailStats{
		Sent:        *req.Sent,
		Total:       *req.Total,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	if err := a.Store.Put(emailStatsCollection, userID, stats); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update email stats"})
		return
	}

	// Keep the dashboard snapshot in sync.
	if err := a.Metrics.SetEmailStats(userID, stats); err != nil {
		log.Printf("Failed to mirror email stats into metrics for %s: %v", userID, err)
	}

	username := userID
	if users, err := a.Users.List(); err == nil {
		for _, u := range users {
			if u.UserID == userID {
				username = u.Username
				break
			}
		}
	}
	if err := a.Notifier.EmailStatsUpdated(username, stats); err != nil {
		log.Printf("Email stats notification failed for %s: %v", userID, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

type SuggestionRequest struct {
	UserID     string `json:"userId" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Suggestion string `json:"suggestion" binding:"required"`
}

// GetSuggestionsHandler returns the global suggestion list, optionally
// filtered by the userId query parameter.
func (a *API) GetSuggestionsHandler(c *gin.Context) {
	var suggestions []models.EmailSuggestion
	found, err := a.Store.GetList("email-suggestions", &suggestions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}
	if !found {
		suggestions = []models.EmailSuggestion{}
	}

	if userID := c.Query("userId"); userID != "" {
		filtered := []models.EmailSuggestion{}
		for _, s := range suggestions {
			if s.UserID == userID {
				filtered = append(filtered, s)
			}
		}
		suggestions = filtered
	}

	c.JSON(http.StatusOK, suggestions)
}

// SubmitSuggestionHandler appends to the global suggestion list.
func (a *API) SubmitSuggestionHandler(c *gin.Context) {
	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var suggestions []models.EmailSuggestion
	if _, err := a.Store.GetList("email-suggestions", &suggestions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save suggestion"})
		return
	}

	suggestions = append(suggestions, models.EmailSuggestion{
		UserID:     req.UserID,
		Username:   req.Username,
		Suggestion: req.Suggestion,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})

	if err := a.Store.PutList("email-suggestions", suggestions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save suggestion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
}
