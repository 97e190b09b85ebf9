package tacmap

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the map view, taken at the end of
// the current frame's Draw call and written to ScreenshotDir as
// <timestamp>_<label>.png. Safe to call from Update or Draw.
func (s *Session) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label and
// writes each as a PNG file. Called at the end of Session.Draw.
func (s *Session) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		warnf("screenshot: mkdir %s: %v", s.ScreenshotDir, err)
		s.screenshotQueue = s.screenshotQueue[:0]
		return
	}

	img := unpremultiply(screen)
	stamp := time.Now().Format("20060102_150405")

	for _, label := range s.screenshotQueue {
		path := uniquePath(filepath.Join(s.ScreenshotDir, stamp+"_"+sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			warnf("screenshot: %v", err)
			continue
		}
		if s.debug {
			logf("screenshot: wrote %s", path)
		}
	}

	s.screenshotQueue = s.screenshotQueue[:0]
}

// unpremultiply reads the surface and converts its premultiplied RGBA pixels
// to straight-alpha NRGBA.
func unpremultiply(src *ebiten.Image) *image.NRGBA {
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	src.ReadPixels(img.Pix)
	for i := 0; i < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

// uniquePath returns base+".png", or base+"-N.png" for the first N that
// does not exist yet. Repeated labels within one second keep every capture.
func uniquePath(base string) string {
	path := base + ".png"
	for n := 2; ; n++ {
		if _, err := os.Stat(path); err != nil {
			return path
		}
		path = fmt.Sprintf("%s-%d.png", base, n)
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel maps a label to a file-name-safe string. Anything other
// than ASCII letters, digits, '-' and '.' becomes '_'.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
