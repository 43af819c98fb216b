package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presenters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPresenters_DefaultFile(t *testing.T) {
	presenters, err := LoadPresenters("presenters.yaml")
	require.NoError(t, err)
	require.Len(t, presenters, 7)
	assert.Equal(t, "12:00", presenters[0].StartTime)
	assert.Equal(t, "17:30", presenters[6].EndTime)
	for _, p := range presenters {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Title)
	}
}

func TestLoadPresenters(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr string
	}{
		{"optional fields", "presenters:\n  - name: Sara\n  - name: Mehdi\n    start_time: \"17:00\"\n", 2, ""},
		{"empty list", "presenters: []\n", 0, ""},
		{"missing name", "presenters:\n  - title: Untitled\n", 0, "has no name"},
		{"duplicate", "presenters:\n  - name: Sara\n  - name: Sara\n", 0, "duplicate name"},
		{"unknown field", "presenters:\n  - name: Sara\n    room: A\n", 0, "parse presenters file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presenters, err := LoadPresenters(writeFile(t, tt.content))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, presenters, tt.want)
		})
	}
}

func TestLoadPresenters_NoPath(t *testing.T) {
	presenters, err := LoadPresenters("")
	require.NoError(t, err)
	assert.Nil(t, presenters)

	_, err = LoadPresenters(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read presenters file")
}
