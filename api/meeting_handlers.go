// Package api provides upcoming-meeting handlers
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theeace/dashboard-go/models"
)

const meetingsCollection = "meetings"

const (
	defaultMeetingSubtitle = "With our experts who will guide you in building a profitable business"
	defaultMeetingHeading  = "Strategy Session"
	defaultMeetingText     = "Join us for a personalized strategy session to analyze your business goals and create an action plan."
	defaultMeetingLink     = "#schedule"
	defaultProfileImage    = "https://via.placeholder.com/80"
)

func defaultMeetingInfo() models.MeetingInfo {
	return models.MeetingInfo{
		Heading:      defaultMeetingHeading,
		Subtitle:     defaultMeetingSubtitle,
		Description:  defaultMeetingText,
		DateTime:     "Next available slot",
		ProfileImage: defaultProfileImage,
		MeetingLink:  defaultMeetingLink,
	}
}

// GetMeetingHandler returns the user's upcoming-meeting info, creating
// the default on first access.
func (a *API) GetMeetingHandler(c *gin.Context) {
	var meeting models.MeetingInfo
	err := a.Store.GetOrDefault(meetingsCollection, c.Param("userId"), &meeting, defaultMeetingInfo())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meeting data"})
		return
	}
	c.JSON(http.StatusOK, meeting)
}

type MeetingRequest struct {
	Heading      string `json:"heading" binding:"required"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description" binding:"required"`
	DateTime     string `json:"dateTime" binding:"required"`
	ProfileImage string `json:"profileImage"`
	MeetingLink  string `json:"meetingLink"`
}

// UpdateMeetingHandler stores the user's upcoming-meeting info, with
// optional fields defaulted.
func (a *API) UpdateMeetingHandler(c *gin.Context) {
	var req MeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required meeting fields"})
		return
	}

	meeting := models.MeetingInfo{
		Heading:      req.Heading,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		DateTime:     req.DateTime,
		ProfileImage: req.ProfileImage,
		MeetingLink:  req.MeetingLink,
	}
	if meeting.Subtitle == "" {
		meeting.Subtitle = defaultMeetingSubtitle
	}
	if meeting.ProfileImage == "" {
		meeting.ProfileImage = defaultProfileImage
	}
	if meeting.MeetingLink == "" {
		meeting.MeetingLink = defaultMeetingLink
	}

	if err := a.Store.Put(meetingsCollection, c.Param("userId"), meeting); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meeting data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meeting data updated successfully"})
}
