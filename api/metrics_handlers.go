// Package api provides dashboard metrics handlers
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theeace/dashboard-go/models"
)

type MetricUpdateRequest struct {
	Metric string   `json:"metric" binding:"required"`
	Value  *float64 `json:"value" binding:"required"`
	Change *float64 `json:"change" binding:"required"`
}

// GetMetricsHandler returns the user's metric snapshot, creating the
// zeroed default on first access.
func (a *API) GetMetricsHandler(c *gin.Context) {
	snapshot, err := a.Metrics.Snapshot(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metrics"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// UpdateMetricsHandler overwrites a single snapshot entry.
func (a *API) UpdateMetricsHandler(c *gin.Context) {
	var req MetricUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	snapshot, ok, err := a.Metrics.UpdateSnapshotField(c.Param("userId"), req.Metric, *req.Value, *req.Change)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update metrics"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown metric key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "metrics": snapshot})
}

type HistoricalEntryRequest struct {
	Date       string   `json:"date" binding:"required"`
	Sessions   *float64 `json:"sessions" binding:"required"`
	Sales      *float64 `json:"sales" binding:"required"`
	Orders     *float64 `json:"orders" binding:"required"`
	Conversion *float64 `json:"conversion" binding:"required"`
}

// GetHistoricalHandler returns the dated series, oldest first.
func (a *API) GetHistoricalHandler(c *gin.Context) {
	entries, err := a.Metrics.Historical(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch historical data"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// SaveHistoricalHandler records an entry for a date, replacing any
// existing same-date entry, and recomputes the snapshot.
func (a *API) SaveHistoricalHandler(c *gin.Context) {
	var req HistoricalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	entries, err := a.Metrics.RecordHistoricalEntry(c.Param("userId"), models.HistoricalEntry{
		Date:       req.Date,
		Sessions:   *req.Sessions,
		Sales:      *req.Sales,
		Orders:     *req.Orders,
		Conversion: *req.Conversion,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save historical data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "historical": entries})
}

// DeleteHistoricalHandler removes the entry for a date.
func (a *API) DeleteHistoricalHandler(c *gin.Context) {
	entries, found, err := a.Metrics.DeleteHistoricalEntry(c.Param("userId"), c.Param("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete historical data"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "No historical data found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "historical": entries})
}
