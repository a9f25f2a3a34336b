package certify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplates(t *testing.T, ids ...int) string {
	t.Helper()
	dir := t.TempDir()
	for _, id := range ids {
		path := filepath.Join(dir, "template"+string(rune('0'+id))+".html")
		require.NoError(t, os.WriteFile(path, []byte("<html>{{participantName}}</html>"), 0o644))
	}
	return dir
}

func TestTemplateStore_Load(t *testing.T) {
	store := NewTemplateStore(writeTemplates(t, 1, 3))

	raw, err := store.Load(1)
	require.NoError(t, err)
	assert.Contains(t, raw, "{{participantName}}")
}

func TestTemplateStore_InvalidID(t *testing.T) {
	store := NewTemplateStore(writeTemplates(t, 1))

	for _, id := range []int{0, -1, 8, 100} {
		_, err := store.Load(id)
		assert.ErrorIs(t, err, ErrInvalidTemplateID, "id %d", id)
	}
}

func TestTemplateStore_MissingFile(t *testing.T) {
	store := NewTemplateStore(writeTemplates(t, 1))

	_, err := store.Load(5)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplates_ListsSevenDesigns(t *testing.T) {
	templates := Templates()
	require.Len(t, templates, 7)
	for i, tpl := range templates {
		assert.Equal(t, i+1, tpl.ID)
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Description)
	}
}
