package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theeace/dashboard-go/models"
	"github.com/theeace/dashboard-go/store"
)

func newTestLogoService(t *testing.T) (*LogoPrefService, *[]string) {
	t.Helper()
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	removed := &[]string{}
	svc := NewLogoPrefService(s, func(urlPath string) {
		*removed = append(*removed, urlPath)
	})
	return svc, removed
}

func TestLogoPreferenceDefault(t *testing.T) {
	svc, _ := newTestLogoService(t)

	pref, err := svc.GetOrDefault("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", pref.UserID)
	assert.Equal(t, models.StateConfiguring, pref.State)
	assert.Nil(t, pref.LogoURL)
	assert.Empty(t, pref.Notes)
}

func TestLogoUpdateMergesAndAppendsNote(t *testing.T) {
	svc, _ := newTestLogoService(t)

	pref, err := svc.Update("u1", LogoUpdate{LogoType: strPtr("wordmark")})
	require.NoError(t, err)
	assert.Equal(t, "wordmark", pref.LogoType)
	assert.Empty(t, pref.Notes)

	pref, err = svc.Update("u1", LogoUpdate{NoteText: "prefer serif fonts"})
	require.NoError(t, err)
	assert.Equal(t, "wordmark", pref.LogoType)
	require.Len(t, pref.Notes, 1)
	assert.Equal(t, "prefer serif fonts", pref.Notes[0].Text)
	assert.Equal(t, "Pending", pref.Notes[0].Status)
	assert.NotEmpty(t, pref.Notes[0].Timestamp)

	pref, err = svc.Update("u1", LogoUpdate{NoteText: "darker background"})
	require.NoError(t, err)
	assert.Len(t, pref.Notes, 2)
}

func TestLogoSetState(t *testing.T) {
	svc, _ := newTestLogoService(t)

	pref, err := svc.SetState("u1", models.StateLive)
	require.NoError(t, err)
	assert.Equal(t, models.StateLive, pref.State)
}

func TestSetLogoReplacesOldFile(t *testing.T) {
	svc, removed := newTestLogoService(t)

	pref, err := svc.SetLogo("u1", "/uploads/logos/a.svg")
	require.NoError(t, err)
	require.NotNil(t, pref.LogoURL)
	assert.Equal(t, "/uploads/logos/a.svg", *pref.LogoURL)
	assert.Equal(t, models.StateLive, pref.State)
	assert.Empty(t, *removed)

	pref, err = svc.SetLogo("u1", "/uploads/logos/b.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/logos/b.png", *pref.LogoURL)
	assert.Equal(t, []string{"/uploads/logos/a.svg"}, *removed)
}

func TestRemoveLogo(t *testing.T) {
	svc, removed := newTestLogoService(t)

	ok, err := svc.RemoveLogo("u1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.SetLogo("u1", "/uploads/logos/a.svg")
	require.NoError(t, err)

	ok, err = svc.RemoveLogo("u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"/uploads/logos/a.svg"}, *removed)

	pref, err := svc.GetOrDefault("u1")
	require.NoError(t, err)
	assert.Nil(t, pref.LogoURL)
}
