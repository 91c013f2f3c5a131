package services

import (
	"time"

	"github.com/theeace/dashboard-go/models"
	"github.com/theeace/dashboard-go/store"
)

const logoPrefCollection = "logo-preferences"

// LogoUpdate is a partial logo preference update. NoteText, when
// present, is appended to the notes list rather than merged.
type LogoUpdate struct {
	State    *int    `json:"state"`
	LogoType *string `json:"logoType"`
	NoteText string  `json:"noteText"`
}

// LogoPrefService manages per-user logo preferences, their note trail
// and the uploaded logo file.
type LogoPrefService struct {
	store        *store.Store
	removeUpload RemoveUploadFunc
}

// NewLogoPrefService creates a LogoPrefService.
func NewLogoPrefService(s *store.Store, removeUpload RemoveUploadFunc) *LogoPrefService {
	if removeUpload == nil {
		removeUpload = func(string) {}
	}
	return &LogoPrefService{store: s, removeUpload: removeUpload}
}

func defaultLogoPreference(userID string) models.LogoPreference {
	return models.LogoPreference{
		UserID:      userID,
		State:       models.StateConfiguring,
		Notes:       []models.LogoNote{},
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// GetOrDefault returns the user's logo preference, creating and
// persisting the default on first access.
func (l *LogoPrefService) GetOrDefault(userID string) (models.LogoPreference, error) {
	var pref models.LogoPreference
	err := l.store.GetOrDefault(logoPrefCollection, userID, &pref, defaultLogoPreference(userID))
	return pref, err
}

// Update merges the partial update; a non-empty NoteText appends a note.
func (l *LogoPrefService) Update(userID string, update LogoUpdate) (models.LogoPreference, error) {
	pref, err := l.GetOrDefault(userID)
	if err != nil {
		return models.LogoPreference{}, err
	}
	if update.State != nil {
		pref.State = *update.State
	}
	if update.LogoType != nil {
		pref.LogoType = *update.LogoType
	}
	pref.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if pref.Notes == nil {
		pref.Notes = []models.LogoNote{}
	}
	if update.NoteText != "" {
		pref.Notes = append(pref.Notes, models.LogoNote{
			Timestamp: pref.LastUpdated,
			Text:      update.NoteText,
			Status:    "Pending",
		})
	}

	if err := l.store.Put(logoPrefCollection, userID, pref); err != nil {
		return models.LogoPreference{}, err
	}
	return pref, nil
}

// SetState overwrites the logo workflow state directly.
func (l *LogoPrefService) SetState(userID string, state int) (models.LogoPreference, error) {
	pref, err := l.GetOrDefault(userID)
	if err != nil {
		return models.LogoPreference{}, err
	}
	pref.State = state
	pref.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := l.store.Put(logoPrefCollection, userID, pref); err != nil {
		return models.LogoPreference{}, err
	}
	return pref, nil
}

// SetLogo stores the uploaded logo URL, removes the replaced file from
// disk and forces the Live state.
func (l *LogoPrefService) SetLogo(userID, logoURL string) (models.LogoPreference, error) {
	pref, err := l.GetOrDefault(userID)
	if err != nil {
		return models.LogoPreference{}, err
	}
	if pref.LogoURL != nil {
		l.removeUpload(*pref.LogoURL)
	}
	pref.LogoURL = &logoURL
	pref.State = models.StateLive
	pref.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := l.store.Put(logoPrefCollection, userID, pref); err != nil {
		return models.LogoPreference{}, err
	}
	return pref, nil
}

// RemoveLogo clears the logo URL and deletes its file. Returns false
// when no logo is set.
func (l *LogoPrefService) RemoveLogo(userID string) (bool, error) {
	var pref models.LogoPreference
	found, err := l.store.Get(logoPrefCollection, userID, &pref)
	if err != nil {
		return false, err
	}
	if !found || pref.LogoURL == nil || *pref.LogoURL == "" {
		return false, nil
	}
	l.removeUpload(*pref.LogoURL)
	pref.LogoURL = nil
	pref.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := l.store.Put(logoPrefCollection, userID, pref); err != nil {
		return false, err
	}
	return true, nil
}
