package appconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudface/frequency/internal/schedule"
)

const profilesYAML = `
profiles:
  weekend:
    windows:
      - key: sunBph
        start: "10:00"
        end: "18:00"
        mode: rate
  night:
    windows:
      - key: late
        start: "22:00"
        end: "25:30"
        mode: average
`

func TestLoadProfiles(t *testing.T) {
	t.Run("built-in profiles without a file", func(t *testing.T) {
		profiles, err := LoadProfiles("")
		require.NoError(t, err)
		assert.Equal(t, schedule.DefaultProfiles(), profiles)
		assert.Equal(t, []string{"weekday", "weekend"}, ProfileNames(profiles))
	})

	t.Run("file overrides and extends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(profilesYAML), 0o644))

		profiles, err := LoadProfiles(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"night", "weekday", "weekend"}, ProfileNames(profiles))

		assert.Equal(t, []schedule.Window{{Key: "sunBph", Start: 600, End: 1080, Mode: schedule.ModeRate}}, profiles["weekend"].Windows)
		assert.Equal(t, 8.0, profiles["weekend"].Windows[0].Divisor())
		assert.Equal(t, schedule.Window{Key: "late", Start: 1320, End: 1530, Mode: schedule.ModeAverage}, profiles["night"].Windows[0])
		assert.Len(t, profiles["weekday"].Windows, 4)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfiles(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestParseProfilesInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "profiles: ["},
		{"no profiles", "profiles: {}"},
		{"no windows", "profiles:\n  p:\n    windows: []\n"},
		{"bad mode", "profiles:\n  p:\n    windows:\n      - {key: w, start: \"07:00\", end: \"08:00\", mode: median}\n"},
		{"missing key", "profiles:\n  p:\n    windows:\n      - {start: \"07:00\", end: \"08:00\", mode: rate}\n"},
		{"bad time", "profiles:\n  p:\n    windows:\n      - {key: w, start: \"7am\", end: \"08:00\", mode: rate}\n"},
		{"inverted", "profiles:\n  p:\n    windows:\n      - {key: w, start: \"09:00\", end: \"08:00\", mode: rate}\n"},
		{"negative hours", "profiles:\n  p:\n    windows:\n      - {key: w, start: \"07:00\", end: \"08:00\", mode: rate, hours: -2}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfiles([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
