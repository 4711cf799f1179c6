package imagestore

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xaa
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newStore(t *testing.T) (IImageStore, string, string) {
	t.Helper()
	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	static := filepath.Join(dir, "static")
	store, err := New(uploads, static)
	require.NoError(t, err)
	return store, uploads, static
}

func TestLoadBareNameFromUploads(t *testing.T) {
	store, uploads, _ := newStore(t)
	writePNG(t, filepath.Join(uploads, "user.png"), 7, 5)

	img, err := store.Load("user.png")
	require.NoError(t, err)
	assert.Equal(t, 7, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())
}

func TestLoadPathInsideRoot(t *testing.T) {
	store, _, static := newStore(t)
	path := filepath.Join(static, "dresses", "dress.png")
	writePNG(t, path, 3, 3)

	_, err := store.Load(path)
	assert.NoError(t, err)
}

func TestLoadRejectsPathOutsideRoots(t *testing.T) {
	store, uploads, _ := newStore(t)
	outside := filepath.Join(filepath.Dir(uploads), "secret.png")
	writePNG(t, outside, 2, 2)

	_, err := store.Load(outside)
	assert.ErrorIs(t, err, ErrOutsideRoots)
	assert.ErrorIs(t, err, ErrImageLoad)

	_, err = store.Load(filepath.Join(uploads, "..", "secret.png"))
	assert.ErrorIs(t, err, ErrOutsideRoots)
}

func TestLoadNonImage(t *testing.T) {
	store, uploads, _ := newStore(t)
	require.NoError(t, os.MkdirAll(uploads, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "notes.jpg"), []byte("just some text"), 0o644))

	_, err := store.Load("notes.jpg")
	assert.ErrorIs(t, err, ErrImageLoad)

	_, err = store.Load("missing.jpg")
	assert.ErrorIs(t, err, ErrImageLoad)

	_, err = store.Load("   ")
	assert.ErrorIs(t, err, ErrImageLoad)
}

func TestDecode(t *testing.T) {
	store, _, _ := newStore(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 2))))
	img, err := store.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())

	_, err = store.Decode(bytes.NewReader([]byte("nope")))
	assert.ErrorIs(t, err, ErrImageLoad)
}

// pngHeader returns a PNG that declares w×h RGB pixels but carries no image data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 17)
	copy(ihdr, "IHDR")
	binary.BigEndian.PutUint32(ihdr[4:], w)
	binary.BigEndian.PutUint32(ihdr[8:], h)
	ihdr[12] = 8 // bit depth
	ihdr[13] = 2 // truecolor

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(ihdr)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(ihdr))
	return buf.Bytes()
}

func TestDecodeRejectsOversizedImage(t *testing.T) {
	store, uploads, _ := newStore(t)
	huge := pngHeader(100000, 100000)

	_, err := store.Decode(bytes.NewReader(huge))
	assert.ErrorIs(t, err, ErrImageLoad)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	require.NoError(t, os.MkdirAll(uploads, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "huge.png"), huge, 0o644))

	_, err = store.Load("huge.png")
	assert.ErrorIs(t, err, ErrImageLoad)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestLoadRespectsPixelLimit(t *testing.T) {
	store, uploads, _ := newStore(t)
	store.(*imageStore).maxPixels = 16
	writePNG(t, filepath.Join(uploads, "small.png"), 4, 4)
	writePNG(t, filepath.Join(uploads, "big.png"), 5, 4)

	_, err := store.Load("small.png")
	require.NoError(t, err)

	_, err = store.Load("big.png")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestSaveCreatesDirectory(t *testing.T) {
	store, _, static := newStore(t)
	out := filepath.Join(static, "results", "fitted_image.jpg")

	img := imaging.New(10, 10, color.NRGBA{R: 255, A: 255})
	require.NoError(t, store.Save(img, out))

	saved, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 10, saved.Bounds().Dx())
}

func TestSuffixed(t *testing.T) {
	assert.Equal(t, "static/fitted_image.jpg", Suffixed("static/fitted_image.jpg", ""))
	assert.Equal(t, "static/fitted_image-01J9.jpg", Suffixed("static/fitted_image.jpg", "01J9"))
	assert.Equal(t, "out-x", Suffixed("out", "x"))
}
