package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/hailam/chessgrid/internal/board"
	"github.com/hailam/chessgrid/internal/console"
	"github.com/hailam/chessgrid/internal/storage"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run plays until in is exhausted and returns the exit code. The store is
// closed before run returns.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	flags := flag.NewFlagSet("chessgrid-console", flag.ContinueOnError)
	flags.SetOutput(errOut)
	dataDir := flags.String("data", "", "data directory (default: per-user application data)")
	verbosity := flags.Int("v", 0, "log verbosity")
	noStore := flags.Bool("no-store", false, "run without loading or saving preferences and statistics")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(errOut, "", log.LstdFlags)).WithName("chessgrid")

	var store *storage.Storage
	if !*noStore {
		store = openStore(*dataDir, logger)
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error(err, "[STORAGE] close failed")
			}
		}()
	}

	options := []func(*board.Game){board.WithLogger(logger.WithName("board"))}
	if store != nil {
		if prefs, err := store.LoadPreferences(); err != nil {
			logger.Error(err, "[STORAGE] could not load preferences")
		} else {
			options = append(options, prefs.GameOptions()...)
		}
	}

	c := console.New(board.NewGame(options...), store, logger, in, out)
	if err := c.Run(); err != nil {
		logger.Error(err, "console stopped")
		return 1
	}
	return 0
}

// openStore opens the statistics database, or returns nil if it is
// unavailable.
func openStore(dataDir string, logger logr.Logger) *storage.Storage {
	var (
		store *storage.Storage
		err   error
	)
	if dataDir != "" {
		var dbDir string
		if dbDir, err = storage.DatabaseDirIn(dataDir); err == nil {
			store, err = storage.Open(dbDir, logger.WithName("storage"))
		}
	} else {
		store, err = storage.OpenDefault(logger.WithName("storage"))
	}
	if err != nil {
		logger.Error(err, "Warning: storage unavailable, statistics will not be saved")
		return nil
	}
	return store
}
