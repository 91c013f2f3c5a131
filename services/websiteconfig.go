// Package services implements the dashboard record workflows on top of
// the JSON record store.
package services

import (
	"log"
	"time"

	"github.com/theeace/dashboard-go/email"
	"github.com/theeace/dashboard-go/models"
	"github.com/theeace/dashboard-go/store"
)

const websiteConfigCollection = "website-configs"

// ConfigUpdate is a partial website configuration update. Nil fields
// are left untouched by the merge.
type ConfigUpdate struct {
	State            *int                `json:"state"`
	WebsiteURL       *string             `json:"websiteUrl"`
	PreviewImageURL  *string             `json:"previewImageUrl"`
	BrandName        *string             `json:"brandName"`
	WebsiteType      *string             `json:"websiteType"`
	Colors           *models.ColorScheme `json:"colors"`
	ReferenceWebsite *string             `json:"referenceWebsite"`
	Timestamp        string              `json:"timestamp"`
}

// RemoveUploadFunc deletes a previously uploaded file by its
// /uploads/... URL path.
type RemoveUploadFunc func(urlPath string)

// WebsiteConfigService manages the per-user website configuration
// workflow: the Configuring/Live state, submission history and the
// change-request queue.
type WebsiteConfigService struct {
	store        *store.Store
	notifier     email.Notifier
	removeUpload RemoveUploadFunc
}

// NewWebsiteConfigService creates a WebsiteConfigService.
func NewWebsiteConfigService(s *store.Store, notifier email.Notifier, removeUpload RemoveUploadFunc) *WebsiteConfigService {
	if removeUpload == nil {
		removeUpload = func(string) {}
	}
	return &WebsiteConfigService{store: s, notifier: notifier, removeUpload: removeUpload}
}

func defaultConfig(userID string) models.WebsiteConfig {
	return models.WebsiteConfig{
		UserID: userID,
		State:  models.StateConfiguring,
		Colors: models.ColorScheme{
			Primary:   "#000000",
			Secondary: "#ffffff",
			Tertiary:  "#cccccc",
		},
		Submissions: []models.Submission{},
		Queries:     []models.ChangeRequest{},
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// GetOrDefault returns the user's configuration, creating and
// persisting the default on first access.
func (w *WebsiteConfigService) GetOrDefault(userID string) (models.WebsiteConfig, error) {
	var config models.WebsiteConfig
	err := w.store.GetOrDefault(websiteConfigCollection, userID, &config, defaultConfig(userID))
	return config, err
}

// Update merges the partial update into the user's configuration. A
// Configuring-state update that supplies brand name, website type and
// colors appends a submission record; a Live-state update guarantees
// the websiteUrl/previewImageUrl keys exist. A notification email is
// sent best-effort; its failure never fails the update.
func (w *WebsiteConfigService) Update(userID string, update ConfigUpdate) (models.WebsiteConfig, error) {
	config, err := w.GetOrDefault(userID)
	if err != nil {
		return models.WebsiteConfig{}, err
	}

	if update.State != nil {
		config.State = *update.State
	}
	if update.WebsiteURL != nil {
		config.WebsiteURL = *update.WebsiteURL
	}
	if update.PreviewImageURL != nil {
		config.PreviewImageURL = *update.PreviewImageURL
	}
	if update.BrandName != nil {
		config.BrandName = *update.BrandName
	}
	if update.WebsiteType != nil {
		config.WebsiteType = *update.WebsiteType
	}
	if update.Colors != nil {
		config.Colors = *update.Colors
	}
	if update.ReferenceWebsite != nil {
		config.ReferenceWebsite = *update.ReferenceWebsite
	}
	config.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if config.Submissions == nil {
		config.Submissions = []models.Submission{}
	}

	isSubmission := update.State != nil && *update.State == models.StateConfiguring &&
		update.BrandName != nil && *update.BrandName != "" &&
		update.WebsiteType != nil && *update.WebsiteType != "" &&
		update.Colors != nil
	if isSubmission {
		timestamp := update.Timestamp
		if timestamp == "" {
			timestamp = config.LastUpdated
		}
		reference := config.ReferenceWebsite
		config.Submissions = append(config.Submissions, models.Submission{
			Timestamp:        timestamp,
			BrandName:        *update.BrandName,
			WebsiteType:      *update.WebsiteType,
			Colors:           *update.Colors,
			ReferenceWebsite: reference,
		})
	}

	if err := w.store.Put(websiteConfigCollection, userID, config); err != nil {
		return models.WebsiteConfig{}, err
	}

	if err := w.notifier.ConfigUpdated(userID, config); err != nil {
		log.Printf("Website config notification failed for %s: %v", userID, err)
	}

	return config, nil
}

// SubmitChangeRequest appends a pending change request to the user's
// queue. It never transitions state.
func (w *WebsiteConfigService) SubmitChangeRequest(userID, changes string) (models.ChangeRequest, error) {
	config, err := w.GetOrDefault(userID)
	if err != nil {
		return models.ChangeRequest{}, err
	}

	query := models.ChangeRequest{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Changes:   changes,
		Status:    "Pending",
	}
	if config.Queries == nil {
		config.Queries = []models.ChangeRequest{}
	}
	config.Queries = append(config.Queries, query)
	config.LastUpdated = query.Timestamp

	if err := w.store.Put(websiteConfigCollection, userID, config); err != nil {
		return models.ChangeRequest{}, err
	}

	if err := w.notifier.ChangeRequestReceived(userID, changes, query.Timestamp); err != nil {
		log.Printf("Change request notification failed for %s: %v", userID, err)
	}

	return query, nil
}

// Queries returns the user's change-request queue, oldest first.
func (w *WebsiteConfigService) Queries(userID string) ([]models.ChangeRequest, error) {
	var config models.WebsiteConfig
	found, err := w.store.Get(websiteConfigCollection, userID, &config)
	if err != nil {
		return nil, err
	}
	if !found || config.Queries == nil {
		return []models.ChangeRequest{}, nil
	}
	return config.Queries, nil
}

// SetState overwrites the workflow state directly. No field validation
// is applied: the toggle is client-driven.
func (w *WebsiteConfigService) SetState(userID string, state int) (models.WebsiteConfig, error) {
	config, err := w.GetOrDefault(userID)
	if err != nil {
		return models.WebsiteConfig{}, err
	}
	config.State = state
	config.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := w.store.Put(websiteConfigCollection, userID, config); err != nil {
		return models.WebsiteConfig{}, err
	}
	return config, nil
}

// SetWebsiteURL stores the live website URL and forces the Live state.
func (w *WebsiteConfigService) SetWebsiteURL(userID, url string) (models.WebsiteConfig, error) {
	config, err := w.GetOrDefault(userID)
	if err != nil {
		return models.WebsiteConfig{}, err
	}
	config.WebsiteURL = url
	config.State = models.StateLive
	config.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := w.store.Put(websiteConfigCollection, userID, config); err != nil {
		return models.WebsiteConfig{}, err
	}
	return config, nil
}

// SetPreviewImage stores the preview image URL, removes the replaced
// image file from disk and forces the Live state.
func (w *WebsiteConfigService) SetPreviewImage(userID, imageURL string) (models.WebsiteConfig, error) {
	config, err := w.GetOrDefault(userID)
	if err != nil {
		return models.WebsiteConfig{}, err
	}
	if config.PreviewImageURL != "" {
		w.removeUpload(config.PreviewImageURL)
	}
	config.PreviewImageURL = imageURL
	config.State = models.StateLive
	config.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := w.store.Put(websiteConfigCollection, userID, config); err != nil {
		return models.WebsiteConfig{}, err
	}
	return config, nil
}

// RemovePreviewImage clears the preview image and deletes its file.
// Returns false when no preview image is set.
func (w *WebsiteConfigService) RemovePreviewImage(userID string) (bool, error) {
	var config models.WebsiteConfig
	found, err := w.store.Get(websiteConfigCollection, userID, &config)
	if err != nil {
		return false, err
	}
	if !found || config.PreviewImageURL == "" {
		return false, nil
	}
	w.removeUpload(config.PreviewImageURL)
	config.PreviewImageURL = ""
	config.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := w.store.Put(websiteConfigCollection, userID, config); err != nil {
		return false, err
	}
	return true, nil
}
