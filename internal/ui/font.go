package ui

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource

	fontsOnce sync.Once
	fontsErr  error
)

// loadFonts parses the embedded Go fonts. Safe to call repeatedly.
func loadFonts() error {
	fontsOnce.Do(func() {
		var err error
		if regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
			fontsErr = fmt.Errorf("load regular font: %w", err)
			return
		}
		if boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
			fontsErr = fmt.Errorf("load bold font: %w", err)
		}
	})
	return fontsErr
}

// GetFaceWithSize returns a regular face with a custom size, or nil if the
// fonts failed to load.
func GetFaceWithSize(size float64) *text.GoTextFace {
	if regularSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: regularSource, Size: size}
}

// GetBoldFaceWithSize returns a bold face with a custom size.
func GetBoldFaceWithSize(size float64) *text.GoTextFace {
	if boldSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: boldSource, Size: size}
}

// MeasureText returns the width and height of the given text.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
