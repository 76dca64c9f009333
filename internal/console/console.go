// Package console implements a line-oriented text interface to the rules engine.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/hailam/chessgrid/internal/board"
	"github.com/hailam/chessgrid/internal/storage"
)

// Console reads commands from in and writes replies to out.
type Console struct {
	game  *board.Game
	store *storage.Storage // nil when running without storage
	log   logr.Logger

	in  io.Reader
	out io.Writer

	started  time.Time
	recorded bool
}

// New creates a console over game. store may be nil.
func New(game *board.Game, store *storage.Storage, log logr.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{
		game:    game,
		store:   store,
		log:     log,
		in:      in,
		out:     out,
		started: time.Now(),
	}
}

// Run starts the read loop. It returns when the input ends or on "quit".
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "new":
			c.handleNewGame()
		case "d", "board":
			c.printf("%s", c.game.Position())
		case "moves":
			c.handleMoves(args)
		case "move", "m":
			c.handleMove(args)
		case "history":
			c.handleHistory()
		case "status":
			c.printStatus()
		case "stats":
			c.handleStats()
		case "set":
			c.handleSet(args)
		case "help":
			c.handleHelp()
		case "quit", "exit":
			return nil
		default:
			c.printf("unknown command: %s\n", cmd)
		}
	}
	return scanner.Err()
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// handleNewGame resets the board.
func (c *Console) handleNewGame() {
	c.game.Reset()
	c.started = time.Now()
	c.recorded = false
	c.log.Info("[GAME] new game")
	c.printf("ok\n")
}

// handleMoves lists the legal destinations for a square.
//
//	moves e2
func (c *Console) handleMoves(args []string) {
	if len(args) != 1 {
		c.printf("usage: moves <square>\n")
		return
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		c.printf("error: %v\n", err)
		return
	}

	moves := c.game.LegalMoves(sq)
	if len(moves) == 0 {
		c.printf("(none)\n")
		return
	}
	names := make([]string, len(moves))
	for i, to := range moves {
		names[i] = to.String()
	}
	c.printf("%s\n", strings.Join(names, " "))
}

// handleMove plays a move.
// Formats:
//   - move e2 e4
//   - move e7 e8 n
//   - move e2e4
//   - move e7e8n
func (c *Console) handleMove(args []string) {
	from, to, promo, err := parseMoveArgs(args)
	if err != nil {
		c.printf("error: %v\n", err)
		return
	}

	if err := c.game.Move(from, to, promo); err != nil {
		c.printf("illegal: %v\n", err)
		return
	}

	last, _ := c.game.LastMove()
	c.printf("ok %s\n", last)
	c.printStatus()

	if c.game.Finished() {
		c.recordResult()
	}
}

func parseMoveArgs(args []string) (from, to board.Square, promo board.PieceType, err error) {
	// Accept both "e2 e4 [q]" and "e2e4[q]".
	if len(args) == 1 && (len(args[0]) == 4 || len(args[0]) == 5) {
		s := args[0]
		args = []string{s[:2], s[2:4]}
		if len(s) == 5 {
			args = append(args, s[4:])
		}
	}
	if len(args) < 2 || len(args) > 3 {
		return board.NoSquare, board.NoSquare, board.NoPieceType, errors.New("usage: move <from> <to> [q|r|b|n]")
	}

	if from, err = board.ParseSquare(strings.ToLower(args[0])); err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, err
	}
	if to, err = board.ParseSquare(strings.ToLower(args[1])); err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, err
	}

	promo = board.NoPieceType
	if len(args) == 3 {
		if len(args[2]) != 1 {
			return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("invalid promotion piece: %s", args[2])
		}
		// The engine promotes to whatever it is given.
		switch promo = board.PieceTypeFromChar(args[2][0]); promo {
		case board.Queen, board.Rook, board.Bishop, board.Knight:
		default:
			return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("invalid promotion piece: %s", args[2])
		}
	}
	return from, to, promo, nil
}

// handleHistory prints the moves played, two per line.
func (c *Console) handleHistory() {
	history := c.game.History()
	if len(history) == 0 {
		c.printf("(no moves)\n")
		return
	}

	var sb strings.Builder
	for i, m := range history {
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d. %s", i/2+1, m)
		} else {
			fmt.Fprintf(&sb, " %s\n", m)
		}
	}
	if len(history)%2 == 1 {
		sb.WriteString("\n")
	}
	c.printf("%s", sb.String())
}

func (c *Console) printStatus() {
	if c.game.Finished() {
		c.printf("game over: %s (%s)\n", c.game.Outcome(), c.game.Method())
		return
	}

	turn := c.game.Turn()
	if c.game.InCheck(turn) {
		c.printf("%s to move, in check\n", turn)
		return
	}
	c.printf("%s to move\n", turn)
}

// recordResult stores a finished game once.
func (c *Console) recordResult() {
	if c.recorded || c.store == nil {
		return
	}
	c.recorded = true

	result := storage.GameResult{
		Outcome:  c.game.Outcome(),
		Method:   c.game.Method(),
		Plies:    len(c.game.History()),
		Duration: time.Since(c.started),
	}
	if err := c.store.RecordGame(result); err != nil {
		c.log.Error(err, "[STORAGE] could not record game")
	}
}

func (c *Console) handleStats() {
	if c.store == nil {
		c.printf("storage disabled\n")
		return
	}

	stats, err := c.store.LoadStats()
	if err != nil {
		c.printf("error: %v\n", err)
		return
	}

	c.printf("games played: %d\n", stats.GamesPlayed)
	c.printf("white wins: %d, black wins: %d, draws: %d\n", stats.WhiteWins, stats.BlackWins, stats.Draws)
	c.printf("checkmates: %d, stalemates: %d\n", stats.ByMethod["checkmate"], stats.ByMethod["stalemate"])
	c.printf("decisive: %.1f%%\n", stats.DecisiveRate())
	c.printf("longest game: %d plies\n", stats.LongestGame)
}

// handleSet changes the castling rule and starts a new game under it. The
// choice is saved with the preferences.
//
//	set lenient on
func (c *Console) handleSet(args []string) {
	if len(args) != 2 || strings.ToLower(args[0]) != "lenient" {
		c.printf("usage: set lenient <on|off>\n")
		return
	}

	var lenient bool
	switch strings.ToLower(args[1]) {
	case "on":
		lenient = true
	case "off":
	default:
		c.printf("usage: set lenient <on|off>\n")
		return
	}

	options := []func(*board.Game){board.WithLogger(c.log.WithName("board"))}
	if lenient {
		options = append(options, board.CastleThroughAttackedSquares())
	}
	c.game = board.NewGame(options...)
	c.started = time.Now()
	c.recorded = false

	if c.store != nil {
		prefs, err := c.store.LoadPreferences()
		if err == nil {
			prefs.LenientCastling = lenient
			err = c.store.SavePreferences(prefs)
		}
		if err != nil {
			c.log.Error(err, "[STORAGE] could not save preferences")
		}
	}
	c.printf("ok, new game\n")
}

func (c *Console) handleHelp() {
	c.printf("commands:\n")
	c.printf("  new                      start a new game\n")
	c.printf("  d | board                show the board\n")
	c.printf("  moves <sq>               legal destinations from a square\n")
	c.printf("  move <from> <to> [qrbn]  play a move\n")
	c.printf("  history                  list the moves played\n")
	c.printf("  status                   side to move or result\n")
	c.printf("  stats                    stored game statistics\n")
	c.printf("  set lenient <on|off>     allow castling across attacked squares\n")
	c.printf("  quit                     leave\n")
}
