package identity

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateIsStable(t *testing.T) {
	p := NewProvider(&MemStore{})

	id := p.GetOrCreate()
	require.NotEmpty(t, id)
	assert.True(t, strings.HasPrefix(id, "user_"), "id %q should carry the user_ prefix", id)

	for i := 0; i < 5; i++ {
		assert.Equal(t, id, p.GetOrCreate())
	}
}

func TestGetOrCreateReusesPersistedID(t *testing.T) {
	store := &MemStore{}
	store.Save("user_existing")

	p := NewProvider(store)
	assert.Equal(t, "user_existing", p.GetOrCreate())
}

func TestGetOrCreateSurvivesNewProvider(t *testing.T) {
	store := &MemStore{}

	first := NewProvider(store).GetOrCreate()
	second := NewProvider(store).GetOrCreate()

	assert.Equal(t, first, second, "a new provider over the same store must not regenerate")
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "client_id")
	store := NewFileStore(path)

	id, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, id, "missing file should read as absent, not error")

	require.NoError(t, store.Save("user_abc123"))

	id, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "user_abc123", id)
}

type brokenStore struct{}

func (brokenStore) Load() (string, error) { return "", assert.AnError }
func (brokenStore) Save(id string) error  { return assert.AnError }

func TestGetOrCreateFallsBackWhenStoreBroken(t *testing.T) {
	p := NewProvider(brokenStore{})

	id := p.GetOrCreate()
	require.NotEmpty(t, id)
	assert.Equal(t, id, p.GetOrCreate(), "session fallback id must stay stable")
}
