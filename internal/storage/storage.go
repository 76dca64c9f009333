package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"

	"github.com/hailam/chessgrid/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username        string    `json:"username"`
	SoundEnabled    bool      `json:"sound_enabled"`
	ShowHints       bool      `json:"show_hints"`
	FlipBoard       bool      `json:"flip_board"`
	AnimationMillis int       `json:"animation_ms"`
	LenientCastling bool      `json:"lenient_castling"`
	LastPlayed      time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:        "Player",
		SoundEnabled:    true,
		ShowHints:       true,
		AnimationMillis: 180,
		LastPlayed:      time.Now(),
	}
}

// AnimationDuration returns the piece slide duration.
func (p *UserPreferences) AnimationDuration() time.Duration {
	return time.Duration(p.AnimationMillis) * time.Millisecond
}

// GameOptions turns the preferences into engine options.
func (p *UserPreferences) GameOptions() []func(*board.Game) {
	if p.LenientCastling {
		return []func(*board.Game){board.CastleThroughAttackedSquares()}
	}
	return nil
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	WhiteWins      int            `json:"white_wins"`
	BlackWins      int            `json:"black_wins"`
	Draws          int            `json:"draws"`
	ByMethod       map[string]int `json:"by_method"`
	LongestGame    int            `json:"longest_game_plies"`
	TotalPlies     int            `json:"total_plies"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	CurrentStreak  int            `json:"current_white_streak"`
	LongestWinStrk int            `json:"longest_white_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		ByMethod: make(map[string]int),
	}
}

// GameResult represents the result of a completed game
type GameResult struct {
	Outcome  board.Outcome
	Method   board.Method
	Plies    int
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log logr.Logger
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string, log logr.Logger) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(badgerLogger{log: log.WithName("badger")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", dir, err)
	}

	log.V(1).Info("[STORAGE] opened", "dir", dir, "inMemory", dir == "")
	return &Storage{db: db, log: log}, nil
}

// OpenDefault opens the database in the per-user data directory.
func OpenDefault(log logr.Logger) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir, log)
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if err := s.get(keyStats, stats); err != nil {
		return stats, err
	}
	if stats.ByMethod == nil {
		stats.ByMethod = make(map[string]int)
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlies += result.Plies
	stats.TotalPlayTime += result.Duration
	if result.Plies > stats.LongestGame {
		stats.LongestGame = result.Plies
	}
	if result.Method != board.NoMethod {
		stats.ByMethod[strings.ToLower(result.Method.String())]++
	}

	switch result.Outcome {
	case board.WhiteWon:
		stats.WhiteWins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
	case board.BlackWon:
		stats.BlackWins++
		stats.CurrentStreak = 0
	default:
		stats.Draws++
		stats.CurrentStreak = 0
	}

	s.log.V(1).Info("[STORAGE] game recorded", "outcome", result.Outcome.String(),
		"method", result.Method.String(), "plies", result.Plies, "games", stats.GamesPlayed)
	return s.SaveStats(stats)
}

// DecisiveRate returns the share of games that ended in checkmate as a
// percentage (0-100)
func (s *GameStats) DecisiveRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.WhiteWins+s.BlackWins) / float64(s.GamesPlayed) * 100
}

// AveragePlies returns the mean game length in plies.
func (s *GameStats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v, leaving v untouched if the key
// is absent.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
