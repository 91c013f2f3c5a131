// Package templates provides notification email bodies
package templates

import "fmt"

type ConfigUpdatedProps struct {
	UserID          string
	State           int
	BrandName       string
	WebsiteType     string
	WebsiteURL      string
	PreviewImageURL string
	LastUpdated     string
}

func GetConfigUpdatedContent(props ConfigUpdatedProps) string {
	if props.State == 1 {
		return GetHeading("Website Configuration Updated") +
			GetParagraph(fmt.Sprintf("Website configuration has been updated for user %s.", props.UserID)) +
			GetDetailRow("Brand Name", props.BrandName) +
			GetDetailRow("Website Type", props.WebsiteType) +
			GetDetailRow("Last Updated", props.LastUpdated)
	}
	return GetHeading("Website Preview Updated") +
		GetParagraph(fmt.Sprintf("Website preview has been updated for user %s.", props.UserID)) +
		GetDetailRow("Website URL", props.WebsiteURL) +
		GetDetailRow("Preview Image URL", props.PreviewImageURL) +
		GetDetailRow("Last Updated", props.LastUpdated)
}

type ChangeRequestProps struct {
	UserID    string
	Changes   string
	Timestamp string
}

func GetChangeRequestContent(props ChangeRequestProps) string {
	return GetHeading("Website Change Request Received") +
		GetParagraph(fmt.Sprintf("A new website change request has been submitted by user %s.", props.UserID)) +
		GetDetailRow("Changes Requested", props.Changes) +
		GetDetailRow("Timestamp", props.Timestamp)
}

type EmailStatsProps struct {
	Username    string
	Sent        float64
	Total       float64
	LastUpdated string
}

func GetEmailStatsContent(props EmailStatsProps) string {
	return GetHeading("Email Marketing Stats Updated") +
		GetParagraph(fmt.Sprintf("Email marketing stats have been updated for user %s.", props.Username)) +
		GetDetailRow("Sent Emails", fmt.Sprintf("%.0f", props.Sent)) +
		GetDetailRow("Total Emails", fmt.Sprintf("%.0f", props.Total)) +
		GetDetailRow("Last Updated", props.LastUpdated)
}
