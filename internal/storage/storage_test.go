package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chessgrid/internal/board"
)

func openMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := Open("", logr.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		assert.Equal(t, "Player", prefs.Username)
		assert.True(t, prefs.SoundEnabled, "sound enabled by default")
		assert.True(t, prefs.ShowHints)
		assert.False(t, prefs.LenientCastling)
		assert.Equal(t, 180*time.Millisecond, prefs.AnimationDuration())
		assert.Empty(t, prefs.GameOptions())
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		assert.Zero(t, stats.GamesPlayed)
		assert.Zero(t, stats.DecisiveRate())
		assert.Zero(t, stats.AveragePlies())
	})

	t.Run("DecisiveRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			WhiteWins:   3,
			BlackWins:   2,
			Draws:       5,
		}
		assert.Equal(t, 50.0, stats.DecisiveRate())
	})
}

func TestFirstLaunch(t *testing.T) {
	s := openMemory(t)

	first, err := s.IsFirstLaunch()
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, s.MarkFirstLaunchComplete())

	first, err = s.IsFirstLaunch()
	require.NoError(t, err)
	assert.False(t, first)
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openMemory(t)

	prefs, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "Player", prefs.Username, "defaults when nothing is stored")

	prefs.Username = "alice"
	prefs.SoundEnabled = false
	prefs.FlipBoard = true
	prefs.LenientCastling = true
	prefs.AnimationMillis = 0
	require.NoError(t, s.SavePreferences(prefs))
	assert.False(t, prefs.LastPlayed.IsZero())

	loaded, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.Username)
	assert.False(t, loaded.SoundEnabled)
	assert.True(t, loaded.FlipBoard)
	assert.True(t, loaded.LenientCastling)
	assert.Zero(t, loaded.AnimationDuration())
	assert.Len(t, loaded.GameOptions(), 1)
}

func TestRecordGame(t *testing.T) {
	s := openMemory(t)

	results := []GameResult{
		{Outcome: board.WhiteWon, Method: board.Checkmate, Plies: 41, Duration: 5 * time.Minute},
		{Outcome: board.WhiteWon, Method: board.Checkmate, Plies: 19, Duration: time.Minute},
		{Outcome: board.Draw, Method: board.Stalemate, Plies: 80, Duration: 10 * time.Minute},
		{Outcome: board.BlackWon, Method: board.Checkmate, Plies: 4, Duration: 30 * time.Second},
		{Outcome: board.WhiteWon, Method: board.Checkmate, Plies: 36, Duration: 2 * time.Minute},
	}
	for _, r := range results {
		require.NoError(t, s.RecordGame(r))
	}

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 5, stats.GamesPlayed)
	assert.Equal(t, 3, stats.WhiteWins)
	assert.Equal(t, 1, stats.BlackWins)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 4, stats.ByMethod["checkmate"])
	assert.Equal(t, 1, stats.ByMethod["stalemate"])
	assert.Equal(t, 80, stats.LongestGame)
	assert.Equal(t, 180, stats.TotalPlies)
	assert.Equal(t, 36.0, stats.AveragePlies())
	assert.Equal(t, 18*time.Minute+30*time.Second, stats.TotalPlayTime)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestWinStrk)
	assert.Equal(t, 80.0, stats.DecisiveRate())
}

func TestPersistsOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, logr.Discard())
	require.NoError(t, err)
	require.NoError(t, s.RecordGame(GameResult{Outcome: board.BlackWon, Method: board.Checkmate, Plies: 4}))
	require.NoError(t, s.MarkFirstLaunchComplete())
	require.NoError(t, s.Close())

	s, err = Open(dir, logr.Discard())
	require.NoError(t, err)
	defer s.Close()

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.BlackWins)

	first, err := s.IsFirstLaunch()
	require.NoError(t, err)
	assert.False(t, first)
}

func TestDataPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_DATA_HOME is only consulted on Linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	dataDir, err := GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, appName), dataDir)

	dbDir, err := GetDatabaseDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, appName, "db"), dbDir)

	_, err = os.Stat(dbDir)
	assert.NoError(t, err, "database directory created")
}

func TestDataRoot(t *testing.T) {
	env := map[string]string{"APPDATA": `C:\Roaming`, "XDG_DATA_HOME": "/xdg"}
	home := func() (string, error) { return "/home/ana", nil }

	tests := []struct {
		goos string
		env  map[string]string
		want string
	}{
		{"darwin", env, filepath.Join("/home/ana", "Library", "Application Support")},
		{"windows", env, `C:\Roaming`},
		{"windows", nil, filepath.Join("/home/ana", "AppData", "Roaming")},
		{"linux", env, "/xdg"},
		{"freebsd", nil, filepath.Join("/home/ana", ".local", "share")},
	}
	for _, tc := range tests {
		got, err := dataRoot(tc.goos, func(k string) string { return tc.env[k] }, home)
		require.NoError(t, err, tc.goos)
		assert.Equal(t, tc.want, got, tc.goos)
	}

	_, err := dataRoot("linux", func(string) string { return "" }, func() (string, error) {
		return "", errors.New("no home")
	})
	assert.ErrorContains(t, err, "no home")
}
