// Package render rasterizes overlay shapes and text onto base images and
// flattens the result.
package render

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// fontCandidates returns the system font paths tried for text rendering, in
// preference order for the current platform.
func fontCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = "C:\\Windows"
		}
		return []string{
			filepath.Join(windir, "Fonts", "arial.ttf"),
			filepath.Join(windir, "Fonts", "times.ttf"),
			filepath.Join(windir, "Fonts", "cour.ttf"),
		}
	case "darwin":
		return []string{
			"/Library/Fonts/Arial.ttf",
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			"/System/Library/Fonts/Supplemental/Helvetica.ttf",
		}
	default: // linux
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
		}
	}
}

var (
	ttfOnce sync.Once
	ttfFont *truetype.Font
)

// systemFont parses the first loadable candidate font, once. Nil when no
// candidate is usable.
func systemFont() *truetype.Font {
	ttfOnce.Do(func() {
		for _, path := range fontCandidates() {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			f, err := truetype.Parse(data)
			if err != nil {
				continue
			}
			ttfFont = f
			return
		}
	})
	return ttfFont
}

// loadFace returns a font face sized in pixels. When no system font can be
// loaded it falls back to the built-in bitmap face, which always succeeds.
func loadFace(sizePx float64) font.Face {
	if f := systemFont(); f != nil && sizePx > 0 {
		return truetype.NewFace(f, &truetype.Options{Size: sizePx, DPI: 72})
	}
	return basicfont.Face7x13
}
