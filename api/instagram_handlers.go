// Package api provides Instagram marketing handlers
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theeace/dashboard-go/models"
)

const instagramCollection = "instagram-marketing"

func defaultInstagramData() models.InstagramMarketing {
	return models.InstagramMarketing{
		AccountsReached: 0,
		LeadsConverted:  0,
		Preferences:     []models.NichePreference{},
		LastUpdated:     time.Now().UTC().Format(time.RFC3339),
	}
}

// GetInstagramHandler returns the user's Instagram marketing data,
// creating the zeroed default on first access.
func (a *API) GetInstagramHandler(c *gin.Context) {
	var data models.InstagramMarketing
	err := a.Store.GetOrDefault(instagramCollection, c.Param("userId"), &data, defaultInstagramData())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get Instagram marketing data"})
		return
	}
	c.JSON(http.StatusOK, data)
}

type InstagramUpdateRequest struct {
	AccountsReached *float64 `json:"accountsReached"`
	LeadsConverted  *float64 `json:"leadsConverted"`
}

// UpdateInstagramHandler updates the reach counters. Absent fields are
// left untouched.
func (a *API) UpdateInstagramHandler(c *gin.Context) {
	var req InstagramUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := c.Param("userId")
	var data models.InstagramMarketing
	if err := a.Store.GetOrDefault(instagramCollection, userID, &data, defaultInstagramData()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update Instagram marketing data"})
		return
	}

	if req.AccountsReached != nil {
		data.AccountsReached = *req.AccountsReached
	}
	if req.LeadsConverted != nil {
		data.LeadsConverted = *req.LeadsConverted
	}
	data.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if err := a.Store.Put(instagramCollection, userID, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update Instagram marketing data"})
		return
	}
	c.JSON(http.StatusOK, data)
}

type NicheRequest struct {
	Niche string `json:"niche" binding:"required"`
}

// AddNichePreferenceHandler appends a niche preference.
func (a *API) AddNichePreferenceHandler(c *gin.Context) {
	var req NicheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Niche is required"})
		return
	}

	userID := c.Param("userId")
	var data models.InstagramMarketing
	if err := a.Store.GetOrDefault(instagramCollection, userID, &data, defaultInstagramData()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add Instagram marketing preference"})
		return
	}

	data.Preferences = append(data.Preferences, models.NichePreference{
		Niche:     req.Niche,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	data.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if err := a.Store.Put(instagramCollection, userID, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add Instagram marketing preference"})
		return
	}
	c.JSON(http.StatusOK, data)
}
