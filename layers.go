package tacmap

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LayerStack is the ordered set of background images. The MapContext's
// BackgroundLayer index selects which one is drawn.
type LayerStack struct {
	images []*ebiten.Image
	paths  []string
}

// Len returns the number of layers.
func (l *LayerStack) Len() int {
	return len(l.images)
}

// At returns layer i, or nil when i is out of range.
func (l *LayerStack) At(i int) *ebiten.Image {
	if i < 0 || i >= len(l.images) {
		return nil
	}
	return l.images[i]
}

// Path returns the file the layer was loaded from, or "".
func (l *LayerStack) Path(i int) string {
	if i < 0 || i >= len(l.paths) {
		return ""
	}
	return l.paths[i]
}

// Push appends a layer and returns its index.
func (l *LayerStack) Push(img *ebiten.Image, path string) int {
	l.images = append(l.images, img)
	l.paths = append(l.paths, path)
	return len(l.images) - 1
}

// Clear removes every layer.
func (l *LayerStack) Clear() {
	clear(l.images)
	l.images = l.images[:0]
	l.paths = l.paths[:0]
}

// AddLayer appends img to the background stack and returns its index.
func (s *Session) AddLayer(img *ebiten.Image) int {
	i := s.layers.Push(img, "")
	s.invalidated = true
	return i
}

// LoadLayer decodes the image at path (PNG, JPEG, GIF, BMP or WebP), appends
// it to the background stack and returns its index.
func (s *Session) LoadLayer(path string) (int, error) {
	img, err := LoadImage(path)
	if err != nil {
		return -1, err
	}
	i := s.layers.Push(img, path)
	s.invalidated = true
	return i, nil
}

// LoadTokenImage decodes the token's ImagePath and sets it as its artwork.
func (s *Session) LoadTokenImage(t *Token) error {
	img, err := LoadImage(t.imagePath)
	if err != nil {
		return err
	}
	t.SetImage(img)
	return nil
}

// LoadImage decodes an image file into an ebiten.Image.
func LoadImage(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(src), nil
}
