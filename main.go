// ChessGrid - a two-player chess board built with Ebitengine
package main

import (
	"flag"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessgrid/internal/storage"
	"github.com/hailam/chessgrid/internal/ui"
)

var (
	dataDir   = flag.String("data", "", "data directory (default: per-user application data)")
	verbosity = flag.Int("v", 0, "log verbosity")
	noStore   = flag.Bool("no-store", false, "run without loading or saving preferences and statistics")
)

func main() {
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("chessgrid")

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game := ui.NewGame(store, logger)
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("ChessGrid")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error(err, "game loop stopped")
	}
}

func openStore(logger logr.Logger) *storage.Storage {
	if *noStore {
		return nil
	}

	var (
		store *storage.Storage
		err   error
	)
	if *dataDir != "" {
		var dbDir string
		if dbDir, err = storage.DatabaseDirIn(*dataDir); err == nil {
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
