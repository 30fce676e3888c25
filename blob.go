package logostamp

import (
	"bytes"
	"image"
	"os"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Blob abstraction for file path, bytes data and sniffed image format
type Blob struct {
	path string
	buf  []byte
	once sync.Once
	err  error

	contentType string
}

func NewBlobFilePath(filepath string) *Blob {
	return &Blob{path: filepath}
}

func NewBlobBytes(bytes []byte) *Blob {
	return &Blob{buf: bytes}
}

var jpegHeader = []byte("\xFF\xD8\xFF")
var gifHeader = []byte("\x47\x49\x46")
var webpHeader = []byte("\x57\x45\x42\x50")
var pngHeader = []byte("\x89\x50\x4E\x47")

func (b *Blob) readAllOnce() {
	b.once.Do(func() {
		if len(b.buf) == 0 {
			if b.path != "" {
				b.buf, b.err = os.ReadFile(b.path)
			}
			if len(b.buf) == 0 && b.err == nil {
				b.buf = nil
				b.err = ErrNotFound
				return
			}
		}
		if len(b.buf) > 24 {
			if bytes.HasPrefix(b.buf, jpegHeader) {
				b.contentType = "image/jpeg"
			} else if bytes.HasPrefix(b.buf, pngHeader) {
				b.contentType = "image/png"
			} else if bytes.HasPrefix(b.buf, gifHeader) {
				b.contentType = "image/gif"
			} else if bytes.Equal(b.buf[8:12], webpHeader) {
				b.contentType = "image/webp"
			}
		}
	})
}

func (b *Blob) IsEmpty() bool {
	b.readAllOnce()
	return b.path == "" && len(b.buf) == 0
}

// ContentType returns the sniffed image content type, empty if unrecognized
func (b *Blob) ContentType() string {
	b.readAllOnce()
	return b.contentType
}

func (b *Blob) ReadAll() ([]byte, error) {
	b.readAllOnce()
	return b.buf, b.err
}

// Image decodes the blob into an image
func (b *Blob) Image() (image.Image, error) {
	buf, err := b.ReadAll()
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, ErrUnsupportedFormat
	}
	return img, nil
}

func IsBlobEmpty(b *Blob) bool {
	return b == nil || b.IsEmpty()
}
