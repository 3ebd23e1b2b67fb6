package world

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes caps how much of an image file is read into memory.
const MaxImageBytes = 16 << 20

var (
	// ErrNotImage is returned when the file content is not a recognised image.
	ErrNotImage = errors.New("file is not an image")
	// ErrImageTooLarge is returned when the file exceeds MaxImageBytes.
	ErrImageTooLarge = errors.New("image exceeds size limit")
)

// ImageReadError reports a failed image upload.
type ImageReadError struct {
	Path string
	Err  error
}

func (e *ImageReadError) Error() string {
	return fmt.Sprintf("read image %s: %v", e.Path, e.Err)
}

func (e *ImageReadError) Unwrap() error {
	return e.Err
}

// ReadImage reads the file at path and encodes it as a data URI. The MIME type
// is sniffed from the content rather than trusted from the extension.
func ReadImage(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", &ImageReadError{Path: path, Err: os.ErrNotExist}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &ImageReadError{Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
	if err != nil {
		return "", &ImageReadError{Path: path, Err: err}
	}
	if len(data) > MaxImageBytes {
		return "", &ImageReadError{Path: path, Err: ErrImageTooLarge}
	}

	uri, err := EncodeImage(data)
	if err != nil {
		return "", &ImageReadError{Path: path, Err: err}
	}
	return uri, nil
}

// EncodeImage encodes raw image bytes as a base64 data URI.
func EncodeImage(data []byte) (string, error) {
	mime := mimetype.Detect(data)
	if !isImage(mime) {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime.String())
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func isImage(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

// DataURIMediaType returns the media type of a data URI, or "" when uri is
// not one.
func DataURIMediaType(uri string) string {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ""
	}
	mediaType, _, ok := strings.Cut(rest, ";")
	if !ok {
		mediaType, _, _ = strings.Cut(rest, ",")
	}
	return mediaType
}

// DataURISize returns the decoded byte length of a base64 data URI.
func DataURISize(uri string) int {
	_, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return 0
	}
	return base64.StdEncoding.DecodedLen(len(payload)) - strings.Count(payload, "=")
}
