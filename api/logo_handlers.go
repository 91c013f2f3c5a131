// Package api provides logo preference handlers
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theeace/dashboard-go/config"
	"github.com/theeace/dashboard-go/services"
	"github.com/theeace/dashboard-go/utils/images"
)

// GetLogoPreferenceHandler returns the user's logo preference,
// creating the default on first access.
func (a *API) GetLogoPreferenceHandler(c *gin.Context) {
	pref, err := a.LogoPrefs.GetOrDefault(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logo preferences"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

// UpdateLogoPreferenceHandler merges a partial update; a noteText
// field appends to the note trail.
func (a *API) UpdateLogoPreferenceHandler(c *gin.Context) {
	var update services.LogoUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pref, err := a.LogoPrefs.Update(c.Param("userId"), update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update logo preferences"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

// SetLogoStateHandler overwrites the logo workflow state directly.
func (a *API) SetLogoStateHandler(c *gin.Context) {
	var req StateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "State is required"})
		return
	}

	pref, err := a.LogoPrefs.SetState(c.Param("userId"), *req.State)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update logo state"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

// UploadLogoHandler accepts a multipart logo image (field name "logo",
// 5MB limit, image types including SVG) and replaces any previous logo.
func (a *API) UploadLogoHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fileHeader.Size > config.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5MB limit"})
		return
	}
	if !images.ValidLogoExtension(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed!"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	urlPath, err := a.Images.SaveUpload(file, fileHeader.Filename, "logos")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload logo"})
		return
	}

	pref, err := a.LogoPrefs.SetLogo(c.Param("userId"), urlPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload logo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        urlPath,
		"preference": pref,
	})
}

// RemoveLogoHandler deletes the logo and its file.
func (a *API) RemoveLogoHandler(c *gin.Context) {
	removed, err := a.LogoPrefs.RemoveLogo(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove logo"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "No logo found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
