package blogpage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/image/draw"

	"github.com/eringen/blogpage/authors"
)

const (
	portraitWidth = 400
	jpegQuality   = 85
	assetsSubdir  = "assets"
)

var errNoResize = errors.New("image already fits")

// handleAsset serves author portraits from <static>/assets, downscaled to
// the 400px column they are shown in. The unknown-author image falls back
// to a generated silhouette when no file exists.
func (a *App) handleAsset(c echo.Context) error {
	name := path.Base(c.Param("file"))
	if name == "." || name == "/" || strings.HasPrefix(name, ".") {
		return echo.ErrNotFound
	}
	file := filepath.Join(a.staticDir, assetsSubdir, name)
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		if "/"+assetsSubdir+"/"+name == authors.UnknownImage {
			return c.Blob(http.StatusOK, "image/png", placeholderPNG())
		}
		return echo.ErrNotFound
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return c.File(file)
	}

	data, ctype, err := a.portraits.get(file, info.ModTime())
	if err != nil {
		if !errors.Is(err, errNoResize) {
			ctx := c.Request().Context()
			slogctx.FromCtx(ctx).WarnContext(ctx, "portrait resize failed",
				slog.String("file", name), slog.Any("error", err))
		}
		return c.File(file)
	}
	return c.Blob(http.StatusOK, ctype, data)
}

type portrait struct {
	modTime time.Time
	data    []byte
	ctype   string
	err     error
}

// portraitCache keeps one scaled copy per file until the file changes.
type portraitCache struct {
	mu      sync.Mutex
	entries map[string]portrait
}

func newPortraitCache() *portraitCache {
	return &portraitCache{entries: make(map[string]portrait)}
}

func (pc *portraitCache) get(file string, modTime time.Time) ([]byte, string, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if p, ok := pc.entries[file]; ok && p.modTime.Equal(modTime) {
		return p.data, p.ctype, p.err
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, ctype, err := scalePortrait(f, portraitWidth)
	pc.entries[file] = portrait{modTime: modTime, data: data, ctype: ctype, err: err}
	return data, ctype, err
}

// scalePortrait decodes src and, when it is wider than width, scales it
// down keeping the aspect ratio. PNG and GIF sources are re-encoded as PNG,
// everything else as JPEG. It returns errNoResize for images that already fit.
func scalePortrait(src io.Reader, width int) ([]byte, string, error) {
	img, format, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= width {
		return nil, "", errNoResize
	}

	newH := h * width / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png", "gif":
		if err := png.Encode(&buf, dst); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}

// placeholderPNG is a neutral head-and-shoulders silhouette.
var placeholderPNG = sync.OnceValue(func() []byte {
	const size = portraitWidth
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{0xe1, 0xe4, 0xe8, 0xff}}, image.Point{}, draw.Src)

	fg := color.RGBA{0xa8, 0xb1, 0xbb, 0xff}
	headX, headY, headR := size/2, size*3/8, size/6
	shoulderX, shoulderY, shoulderR := size/2, size+size/8, size*5/12
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if within(x, y, headX, headY, headR) || within(x, y, shoulderX, shoulderY, shoulderR) {
				img.SetRGBA(x, y, fg)
			}
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
})

func within(x, y, cx, cy, r int) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
