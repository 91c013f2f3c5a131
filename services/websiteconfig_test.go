package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theeace/dashboard-go/models"
	"github.com/theeace/dashboard-go/store"
)

// recordingNotifier captures notification calls and can be made to fail.
type recordingNotifier struct {
	configUpdated  int
	changeRequests int
	emailStats     int
	err            error
}

func (n *recordingNotifier) ConfigUpdated(string, models.WebsiteConfig) error {
	n.configUpdated++
	return n.err
}

func (n *recordingNotifier) ChangeRequestReceived(string, string, string) error {
	n.changeRequests++
	return n.err
}

func (n *recordingNotifier) EmailStatsUpdated(string, models.EmailStats) error {
	n.emailStats++
	return n.err
}

func newTestConfigService(t *testing.T) (*WebsiteConfigService, *recordingNotifier) {
	t.Helper()
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	return NewWebsiteConfigService(s, notifier, nil), notifier
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestConfigDefault(t *testing.T) {
	svc, _ := newTestConfigService(t)

	config, err := svc.GetOrDefault("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", config.UserID)
	assert.Equal(t, models.StateConfiguring, config.State)
	assert.Equal(t, "#000000", config.Colors.Primary)
	assert.Equal(t, "#ffffff", config.Colors.Secondary)
	assert.Equal(t, "#cccccc", config.Colors.Tertiary)
	assert.Empty(t, config.Submissions)
	assert.Empty(t, config.Queries)

	// Second read sees the same persisted record.
	again, err := svc.GetOrDefault("u1")
	require.NoError(t, err)
	assert.Equal(t, config.LastUpdated, again.LastUpdated)
}

func TestUpdateMergesPartialFields(t *testing.T) {
	svc, notifier := newTestConfigService(t)

	config, err := svc.Update("u1", ConfigUpdate{BrandName: strPtr("Acme")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", config.BrandName)
	// Untouched fields keep their defaults.
	assert.Equal(t, models.StateConfiguring, config.State)
	assert.Equal(t, "#000000", config.Colors.Primary)
	assert.Equal(t, 1, notifier.configUpdated)

	// A second partial update leaves the brand name alone.
	config, err = svc.Update("u1", ConfigUpdate{WebsiteURL: strPtr("https://acme.example")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", config.BrandName)
	assert.Equal(t, "https://acme.example", config.WebsiteURL)
}

func TestUpdateAppendsSubmissionOnCompleteConfiguringUpdate(t *testing.T) {
	svc, _ := newTestConfigService(t)

	colors := &models.ColorScheme{Primary: "#111111", Secondary: "#222222", Tertiary: "#333333"}
	full := ConfigUpdate{
		State:       intPtr(models.StateConfiguring),
		BrandName:   strPtr("Acme"),
		WebsiteType: strPtr("ecommerce"),
		Colors:      colors,
		Timestamp:   "2025-06-01T00:00:00Z",
	}

	config, err := svc.Update("u1", full)
	require.NoError(t, err)
	require.Len(t, config.Submissions, 1)
	assert.Equal(t, "Acme", config.Submissions[0].BrandName)
	assert.Equal(t, "ecommerce", config.Submissions[0].WebsiteType)
	assert.Equal(t, "2025-06-01T00:00:00Z", config.Submissions[0].Timestamp)
	assert.Equal(t, *colors, config.Submissions[0].Colors)

	// Each qualifying update appends exactly one submission.
	config, err = svc.Update("u1", full)
	require.NoError(t, err)
	assert.Len(t, config.Submissions, 2)
}

func TestUpdateDoesNotAppendSubmissionOnPartialUpdate(t *testing.T) {
	tests := []struct {
		name   string
		update ConfigUpdate
	}{
		{
			name:   "no state",
			update: ConfigUpdate{BrandName: strPtr("Acme"), WebsiteType: strPtr("blog"), Colors: &models.ColorScheme{}},
		},
		{
			name:   "live state",
			update: ConfigUpdate{State: intPtr(models.StateLive), BrandName: strPtr("Acme"), WebsiteType: strPtr("blog"), Colors: &models.ColorScheme{}},
		},
		{
			name:   "empty brand name",
			update: ConfigUpdate{State: intPtr(models.StateConfiguring), BrandName: strPtr(""), WebsiteType: strPtr("blog"), Colors: &models.ColorScheme{}},
		},
		{
			name:   "missing website type",
			update: ConfigUpdate{State: intPtr(models.StateConfiguring), BrandName: strPtr("Acme"), Colors: &models.ColorScheme{}},
		},
		{
			name:   "missing colors",
			update: ConfigUpdate{State: intPtr(models.StateConfiguring), BrandName: strPtr("Acme"), WebsiteType: strPtr("blog")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestConfigService(t)
			config, err := svc.Update("u1", tt.update)
			require.NoError(t, err)
			assert.Empty(t, config.Submissions)
		})
	}
}

func TestUpdateSurvivesNotifierFailure(t *testing.T) {
	svc, notifier := newTestConfigService(t)
	notifier.err = errors.New("smtp down")

	config, err := svc.Update("u1", ConfigUpdate{BrandName: strPtr("Acme")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", config.BrandName)

	// The write was persisted despite the failed notification.
	stored, err := svc.GetOrDefault("u1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.BrandName)
}

func TestSubmitChangeRequest(t *testing.T) {
	svc, notifier := newTestConfigService(t)

	query, err := svc.SubmitChangeRequest("u1", "Make the header blue")
	require.NoError(t, err)
	assert.Equal(t, "Make the header blue", query.Changes)
	assert.Equal(t, "Pending", query.Status)
	assert.NotEmpty(t, query.Timestamp)
	assert.Equal(t, 1, notifier.changeRequests)

	_, err = svc.SubmitChangeRequest("u1", "And the footer green")
	require.NoError(t, err)

	queries, err := svc.Queries("u1")
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, "Make the header blue", queries[0].Changes)
	assert.Equal(t, "And the footer green", queries[1].Changes)

	// Change requests never flip the workflow state.
	config, err := svc.GetOrDefault("u1")
	require.NoError(t, err)
	assert.Equal(t, models.StateConfiguring, config.State)
}

func TestQueriesForUnknownUser(t *testing.T) {
	svc, _ := newTestConfigService(t)

	queries, err := svc.Queries("nobody")
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestSetState(t *testing.T) {
	svc, _ := newTestConfigService(t)

	config, err := svc.SetState("u1", models.StateLive)
	require.NoError(t, err)
	assert.Equal(t, models.StateLive, config.State)

	config, err = svc.SetState("u1", models.StateConfiguring)
	require.NoError(t, err)
	assert.Equal(t, models.StateConfiguring, config.State)
}

func TestSetWebsiteURLForcesLive(t *testing.T) {
	svc, _ := newTestConfigService(t)

	config, err := svc.SetWebsiteURL("u1", "https://acme.example")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.example", config.WebsiteURL)
	assert.Equal(t, models.StateLive, config.State)
}

func TestSetPreviewImageReplacesOldFile(t *testing.T) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	removed := []string{}
	svc := NewWebsiteConfigService(s, &recordingNotifier{}, func(urlPath string) {
		removed = append(removed, urlPath)
	})

	config, err := svc.SetPreviewImage("u1", "/uploads/previews/a.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/previews/a.png", config.PreviewImageURL)
	assert.Equal(t, models.StateLive, config.State)
	assert.Empty(t, removed)

	config, err = svc.SetPreviewImage("u1", "/uploads/previews/b.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/previews/b.png", config.PreviewImageURL)
	assert.Equal(t, []string{"/uploads/previews/a.png"}, removed)
}

func TestRemovePreviewImage(t *testing.T) {
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	removed := []string{}
	svc := NewWebsiteConfigService(s, &recordingNotifier{}, func(urlPath string) {
		removed = append(removed, urlPath)
	})

	// Nothing to remove yet.
	ok, err := svc.RemovePreviewImage("u1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.SetPreviewImage("u1", "/uploads/previews/a.png")
	require.NoError(t, err)

	ok, err = svc.RemovePreviewImage("u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"/uploads/previews/a.png"}, removed)

	config, err := svc.GetOrDefault("u1")
	require.NoError(t, err)
	assert.Empty(t, config.PreviewImageURL)
}
