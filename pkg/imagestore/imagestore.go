package imagestore

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxPixels caps the decoded size of any image the store loads.
const MaxPixels = 40_000_000

var (
	ErrImageLoad     = errors.New("image could not be loaded")
	ErrOutsideRoots  = errors.New("path is outside the image directories")
	ErrImageTooLarge = errors.New("image dimensions exceed the limit")
)

type IImageStore interface {
	Resolve(identifier string) (string, error)
	Load(identifier string) (image.Image, error)
	Decode(r io.Reader) (image.Image, error)
	Save(img image.Image, path string) error
}

type imageStore struct {
	uploadDir string
	roots     []string
	maxPixels int
}

// New returns a store that reads images below the given roots. Bare file names
// are looked up in uploadDir.
func New(uploadDir string, roots ...string) (IImageStore, error) {
	all := append([]string{uploadDir}, roots...)
	abs := make([]string, 0, len(all))
	for _, r := range all {
		if r == "" {
			continue
		}
		a, err := filepath.Abs(r)
		if err != nil {
			return nil, fmt.Errorf("resolve image root %s: %w", r, err)
		}
		abs = append(abs, a)
	}

	return &imageStore{
		uploadDir: uploadDir,
		roots:     abs,
		maxPixels: MaxPixels,
	}, nil
}

func (s *imageStore) Resolve(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", fmt.Errorf("%w: empty path", ErrImageLoad)
	}

	path := filepath.Clean(filepath.FromSlash(identifier))
	if !strings.ContainsRune(path, filepath.Separator) {
		path = filepath.Join(s.uploadDir, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageLoad, err)
	}

	for _, root := range s.roots {
		if abs == root {
			continue
		}
		if rel, err := filepath.Rel(root, abs); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %w: %s", ErrImageLoad, ErrOutsideRoots, identifier)
}

func (s *imageStore) Load(identifier string) (image.Image, error) {
	path, err := s.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, identifier, err)
	}
	defer file.Close()

	if err := s.checkDimensions(file); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageLoad, identifier, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, identifier, err)
	}

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageLoad, identifier, err)
	}

	return img, nil
}

func (s *imageStore) Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}

	if err := s.checkDimensions(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return img, nil
}

// checkDimensions reads only the image header, so an oversized image is
// rejected before its pixels are allocated.
func (s *imageStore) checkDimensions(r io.Reader) error {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(s.maxPixels) {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	return nil
}

// Save encodes img in the format implied by the path extension, creating the
// parent directory when needed.
func (s *imageStore) Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("save image %s: %w", path, err)
	}

	return nil
}

// Suffixed inserts "-<id>" before the extension of path. An empty id returns
// path unchanged.
func Suffixed(path, id string) string {
	if id == "" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + id + ext
}
