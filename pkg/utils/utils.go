package utils

import (
	"crypto/rand"
	"errors"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
)

var filenameStrip = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	SanitizeFilename(filename string) string
}

type utils struct {
	maxFileSize       int64
	allowedExtensions map[string]struct{}
}

func New(maxFileSize int64, allowedExtensions ...string) IUtils {
	if len(allowedExtensions) == 0 {
		allowedExtensions = []string{"png", "jpg", "jpeg"}
	}

	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &utils{
		maxFileSize:       maxFileSize,
		allowedExtensions: allowed,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ValidateImageFile checks presence, size and extension of an upload. The
// content itself is only checked when the image is decoded.
func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil || file.Filename == "" {
		return ErrNoFile
	}

	if u.maxFileSize > 0 && file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if _, ok := u.allowedExtensions[ext]; !ok {
		return ErrInvalidFileType
	}

	return nil
}

// SanitizeFilename reduces a client supplied name to a safe ASCII file name
// with no directory components. It returns "" if nothing usable remains.
func (u *utils) SanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(filename) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	name := strings.NewReplacer("/", " ", "\\", " ").Replace(b.String())
	name = strings.Join(strings.Fields(name), "_")
	name = filenameStrip.ReplaceAllString(name, "")

	return strings.Trim(name, "._")
}
