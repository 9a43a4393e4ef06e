package acceptance

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/pdfrescaler/internal/preview"
	"github.com/kpauljoseph/pdfrescaler/internal/testutil"
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
	"github.com/kpauljoseph/pdfrescaler/pkg/utils"
)

// Workspace is a throwaway directory holding fixtures and output.
type Workspace struct {
	Dir string
}

func NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "pdfrescaler-acceptance-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{Dir: dir}, nil
}

func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// PDF writes a fixture with the given page sizes and returns its path.
func (w *Workspace) PDF(name string, sizes ...models.PageDimensions) (string, error) {
	path := w.Path(name)
	if err := testutil.WritePDF(path, sizes); err != nil {
		return "", fmt.Errorf("failed to write fixture %s: %w", name, err)
	}
	return path, nil
}

// Corrupt writes a file named like a PDF that no library can open.
func (w *Workspace) Corrupt(name string) (string, error) {
	path := w.Path(name)
	if err := testutil.WriteCorrupt(path); err != nil {
		return "", err
	}
	return path, nil
}

// Entries lists file names in the workspace root.
func (w *Workspace) Entries() ([]string, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (w *Workspace) Remove() error {
	return os.RemoveAll(w.Dir)
}

// PageHashes renders every page and fingerprints it.
func PageHashes(renderer *preview.Renderer, path string) ([]string, error) {
	count, err := renderer.PageCount(path)
	if err != nil {
		return nil, err
	}

	hashes := make([]string, 0, count)
	for pageNr := 1; pageNr <= count; pageNr++ {
		img, err := renderer.Image(path, pageNr)
		if err != nil {
			return nil, err
		}
		hash, err := utils.GenerateImageHash(img)
		if err != nil {
			return nil, fmt.Errorf("failed to hash page %d: %w", pageNr, err)
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}

// PixelAt samples img at a position given as fractions of its size.
func PixelAt(img image.Image, fx, fy float64) color.RGBA {
	b := img.Bounds()
	x := b.Min.X + int(fx*float64(b.Dx()))
	y := b.Min.Y + int(fy*float64(b.Dy()))
	r, g, bl, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)}
}

// IsFill reports whether c is the blue used by fixture pages.
func IsFill(c color.RGBA) bool {
	return c.B > 150 && c.R < 120
}

// IsBlank reports whether c is page background.
func IsBlank(c color.RGBA) bool {
	return c.R > 230 && c.G > 230 && c.B > 230
}
