// Package api provides dashboard widget and custom content handlers
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theeace/dashboard-go/models"
	"github.com/theeace/dashboard-go/utils"
)

const (
	widgetsCollection = "widgets"
	contentCollection = "content"
)

type WidgetRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// GetWidgetsHandler returns the user's dashboard widgets.
func (a *API) GetWidgetsHandler(c *gin.Context) {
	var widgets []models.Widget
	found, err := a.Store.Get(widgetsCollection, c.Param("userId"), &widgets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching widgets"})
		return
	}
	if !found {
		widgets = []models.Widget{}
	}
	c.JSON(http.StatusOK, widgets)
}

// AddWidgetHandler appends a widget to the user's dashboard.
func (a *API) AddWidgetHandler(c *gin.Context) {
	var req WidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and content are required"})
		return
	}

	userID := c.Param("userId")
	var widgets []models.Widget
	if _, err := a.Store.Get(widgetsCollection, userID, &widgets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding widget"})
		return
	}

	widget := models.Widget{
		ID:        utils.GenerateULID(),
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	widgets = append(widgets, widget)

	if err := a.Store.Put(widgetsCollection, userID, widgets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding widget"})
		return
	}
	c.JSON(http.StatusCreated, widget)
}

// DeleteWidgetHandler removes one widget.
func (a *API) DeleteWidgetHandler(c *gin.Context) {
	userID := c.Param("userId")
	widgetID := c.Param("widgetId")

	var widgets []models.Widget
	found, err := a.Store.Get(widgetsCollection, userID, &widgets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting widget"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	index := -1
	for i, w := range widgets {
		if w.ID == widgetID {
			index = i
			break
		}
	}
	if index == -1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Widget not found"})
		return
	}

	widgets = append(widgets[:index], widgets[index+1:]...)
	if err := a.Store.Put(widgetsCollection, userID, widgets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting widget"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Widget deleted successfully"})
}

type ContentRequest struct {
	HTML *string `json:"html" binding:"required"`
}

// GetContentHandler returns the user's custom dashboard content.
func (a *API) GetContentHandler(c *gin.Context) {
	var html string
	if _, err := a.Store.Get(contentCollection, c.Param("userId"), &html); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": html})
}

// SaveContentHandler overwrites the user's custom dashboard content.
func (a *API) SaveContentHandler(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "HTML content is required"})
		return
	}

	if err := a.Store.Put(contentCollection, c.Param("userId"), *req.HTML); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content saved successfully"})
}
