package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// LoadImage loads an image from disk and caches it by key. The special key
// PlaceholderKey resolves to a generated numbered sheet.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	var (
		img *ebiten.Image
		err error
	)
	if key == PlaceholderKey {
		img = ebiten.NewImageFromImage(PlaceholderSheet(DefaultPlaceholder))
	} else {
		img, err = loadImageFromFS(key)
	}
	if err != nil {
		return nil, err
	}
	RegisterImage(key, img)
	return img, nil
}

// DecodeImage reads the first candidate path that decodes as an image.
func DecodeImage(path string) (image.Image, error) {
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		im, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		return im, nil
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}

func loadImageFromFS(path string) (*ebiten.Image, error) {
	im, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(im), nil
}
