// Package email provides best-effort outbound notification email
package email

import (
	"fmt"
	"log"

	"github.com/resendlabs/resend-go"

	"github.com/theeace/dashboard-go/email/templates"
	"github.com/theeace/dashboard-go/models"
)

// Notifier sends team notifications on dashboard writes. Every send is
// best-effort: callers log failures and never propagate them.
type Notifier interface {
	ConfigUpdated(userID string, config models.WebsiteConfig) error
	ChangeRequestReceived(userID, changes, timestamp string) error
	EmailStatsUpdated(username string, stats models.EmailStats) error
}

// Client sends notifications through Resend.
type Client struct {
	resend    *resend.Client
	fromEmail string
	fromName  string
	notifyTo  string
}

// NewClient creates a Resend-backed Notifier. With an empty API key a
// disabled no-op client is returned, so notification wiring never
// blocks startup.
func NewClient(apiKey, fromEmail, fromName, notifyTo string) Notifier {
	if apiKey == "" {
		log.Println("RESEND_API_KEY not set -- email notifications disabled")
		return Disabled{}
	}
	return &Client{
		resend:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		notifyTo:  notifyTo,
	}
}

func (c *Client) send(subject, content string) error {
	html := templates.GetEmailLayout(templates.EmailLayoutProps{Content: content})

	request := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{c.notifyTo},
		Subject: subject,
		Html:    html,
	}

	_, err := c.resend.Emails.Send(request)
	if err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}

func (c *Client) ConfigUpdated(userID string, config models.WebsiteConfig) error {
	content := templates.GetConfigUpdatedContent(templates.ConfigUpdatedProps{
		UserID:          userID,
		State:           config.State,
		BrandName:       config.BrandName,
		WebsiteType:     config.WebsiteType,
		WebsiteURL:      config.WebsiteURL,
		PreviewImageURL: config.PreviewImageURL,
		LastUpdated:     config.LastUpdated,
	})
	return c.send("Website Configuration Updated", content)
}

func (c *Client) ChangeRequestReceived(userID, changes, timestamp string) error {
	content := templates.GetChangeRequestContent(templates.ChangeRequestProps{
		UserID:    userID,
		Changes:   changes,
		Timestamp: timestamp,
	})
	return c.send("Website Change Request Received", content)
}

func (c *Client) EmailStatsUpdated(username string, stats models.EmailStats) error {
	content := templates.GetEmailStatsContent(templates.EmailStatsProps{
		Username:    username,
		Sent:        stats.Sent,
		Total:       stats.Total,
		LastUpdated: stats.LastUpdated,
	})
	return c.send("Email Marketing Stats Updated", content)
}

// Disabled is a Notifier that drops every notification.
type Disabled struct{}

func (Disabled) ConfigUpdated(string, models.WebsiteConfig) error   { return nil }
func (Disabled) ChangeRequestReceived(string, string, string) error { return nil }
func (Disabled) EmailStatsUpdated(string, models.EmailStats) error  { return nil }
