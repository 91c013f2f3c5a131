package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestGetMissingRecord(t *testing.T) {
	s := newTestStore(t)

	var out testRecord
	found, err := s.Get("things", "u1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := testRecord{Name: "acme", Count: 3}
	require.NoError(t, s.Put("things", "u1", in))

	var out testRecord
	found, err := s.Get("things", "u1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetOrDefaultPersistsOnFirstReadOnly(t *testing.T) {
	s := newTestStore(t)
	def := testRecord{Name: "default", Count: 1}

	var first testRecord
	require.NoError(t, s.GetOrDefault("things", "u1", &first, def))
	assert.Equal(t, def, first)

	// Default must now be on disk.
	path := filepath.Join(s.Root(), "things", "u1.json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	firstMod := info.ModTime()

	// Second call is a pure read of the persisted default.
	var second testRecord
	require.NoError(t, s.GetOrDefault("things", "u1", &second, testRecord{Name: "other"}))
	assert.Equal(t, def, second)

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, firstMod, info.ModTime())
}

func TestPutOverwritesWholeRecord(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put("things", "u1", testRecord{Name: "a", Count: 1}))
	require.NoError(t, s.Put("things", "u1", testRecord{Name: "b"}))

	var out testRecord
	found, err := s.Get("things", "u1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, testRecord{Name: "b", Count: 0}, out)
}

func TestCorruptFileBackedUpAndReset(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.Root(), "things", "u1.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0644))

	def := testRecord{Name: "fresh"}
	var out testRecord
	require.NoError(t, s.GetOrDefault("things", "u1", &out, def))
	assert.Equal(t, def, out)

	// The bad file was moved aside, not destroyed.
	backups, err := filepath.Glob(path + ".bak.*")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "{not valid json", string(data))

	// Subsequent reads see the persisted default.
	var again testRecord
	found, err := s.Get("things", "u1", &again)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, def, again)
}

func TestDeleteMissingRecordIsNoError(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Delete("things", "nope"))
}

func TestListRoundTrip(t *testing.T) {
	s := newTestStore(t)

	var out []testRecord
	found, err := s.GetList("items", &out)
	require.NoError(t, err)
	assert.False(t, found)

	in := []testRecord{{Name: "a"}, {Name: "b", Count: 2}}
	require.NoError(t, s.PutList("items", in))

	found, err = s.GetList("items", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}
