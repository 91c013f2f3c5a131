// Package api provides website configuration workflow handlers
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theeace/dashboard-go/config"
	"github.com/theeace/dashboard-go/services"
	"github.com/theeace/dashboard-go/utils/images"
)

// GetWebsiteConfigHandler returns the user's configuration, creating
// the default on first access.
func (a *API) GetWebsiteConfigHandler(c *gin.Context) {
	cfg, err := a.Configs.GetOrDefault(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch website configuration"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateWebsiteConfigHandler merges a partial update into the user's
// configuration.
func (a *API) UpdateWebsiteConfigHandler(c *gin.Context) {
	var update services.ConfigUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cfg, err := a.Configs.Update(c.Param("userId"), update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update website configuration"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type StateRequest struct {
	State *int `json:"state" binding:"required"`
}

// SetWebsiteStateHandler overwrites the workflow state directly.
func (a *API) SetWebsiteStateHandler(c *gin.Context) {
	var req StateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "State is required"})
		return
	}

	cfg, err := a.Configs.SetState(c.Param("userId"), *req.State)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update website state"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type ChangeRequestBody struct {
	Changes string `json:"changes" binding:"required"`
}

// SubmitQueryHandler appends a change request to the user's queue.
func (a *API) SubmitQueryHandler(c *gin.Context) {
	var req ChangeRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Changes description is required"})
		return
	}

	query, err := a.Configs.SubmitChangeRequest(c.Param("userId"), req.Changes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit website query"})
		return
	}
	c.JSON(http.StatusCreated, query)
}

// GetQueriesHandler returns the user's change-request queue.
func (a *API) GetQueriesHandler(c *gin.Context) {
	queries, err := a.Configs.Queries(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch website queries"})
		return
	}
	c.JSON(http.StatusOK, queries)
}

type WebsiteURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// UpdateWebsiteURLHandler stores the live site URL and forces the Live
// state.
func (a *API) UpdateWebsiteURLHandler(c *gin.Context) {
	var req WebsiteURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	cfg, err := a.Configs.SetWebsiteURL(c.Param("userId"), req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update website URL"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UploadPreviewHandler accepts a multipart preview image (field name
// "preview", 5MB limit, raster image types), replaces any previous
// preview and generates a WebP thumbnail.
func (a *API) UploadPreviewHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("preview")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fileHeader.Size > config.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5MB limit"})
		return
	}
	if !images.ValidPreviewExtension(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed!"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	urlPath, err := a.Images.SaveUpload(file, fileHeader.Filename, "previews")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload preview"})
		return
	}

	// Thumbnail generation is best-effort: the original remains the
	// canonical preview when encoding fails.
	if _, err := a.Images.GenerateWebPThumbnail(urlPath, config.PreviewThumbWidth); err != nil {
		c.Error(err)
	}

	cfg, err := a.Configs.SetPreviewImage(c.Param("userId"), urlPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload preview"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    urlPath,
		"config": cfg,
	})
}

// RemovePreviewHandler deletes the preview image and its file.
func (a *API) RemovePreviewHandler(c *gin.Context) {
	removed, err := a.Configs.RemovePreviewImage(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove preview"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "No preview image found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
