package logostamp

import (
	"io"
	"mime"
	"net/http"
	"strings"
)

// Upload extracts the source image from POST request uploads
type Upload struct {
	// MaxAllowedSize maximum bytes allowed for uploaded image
	MaxAllowedSize int

	// Accept set accepted Content-Type for uploads
	Accept string

	// FormFieldName the form field name to extract file from multipart uploads
	FormFieldName string

	accepts []string
}

// NewUpload creates Upload with defaults
func NewUpload() *Upload {
	u := &Upload{
		MaxAllowedSize: 32 << 20,
		Accept:         "image/*",
		FormFieldName:  "image",
	}
	u.ParseAccept()
	return u
}

// ParseAccept recomputes the accepted content type list from Accept
func (u *Upload) ParseAccept() {
	u.accepts = u.accepts[:0]
	for _, seg := range strings.Split(u.Accept, ",") {
		if typ := parseContentType(seg); typ != "" {
			u.accepts = append(u.accepts, typ)
		}
	}
}

// Get extracts the uploaded image from a POST request
func (u *Upload) Get(r *http.Request) (*Blob, error) {
	if r.Method != http.MethodPost {
		return nil, ErrMethodNotAllowed
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, ErrMissingUpload
	}
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return u.getMultipart(r)
	}
	return u.getRawBody(r)
}

func (u *Upload) getMultipart(r *http.Request) (*Blob, error) {
	if err := r.ParseMultipartForm(int64(u.MaxAllowedSize)); err != nil {
		return nil, ErrMissingUpload
	}
	file, header, err := r.FormFile(u.FormFieldName)
	if err != nil {
		return nil, ErrMissingUpload
	}
	defer func() {
		_ = file.Close()
	}()
	if header.Size > int64(u.MaxAllowedSize) {
		return nil, ErrMaxSizeExceeded
	}
	if !u.validContentType(header.Header.Get("Content-Type")) {
		return nil, ErrUnsupportedFormat
	}
	return u.readBlob(file)
}

func (u *Upload) getRawBody(r *http.Request) (*Blob, error) {
	if !u.validContentType(r.Header.Get("Content-Type")) {
		return nil, ErrUnsupportedFormat
	}
	if r.ContentLength > int64(u.MaxAllowedSize) {
		return nil, ErrMaxSizeExceeded
	}
	return u.readBlob(r.Body)
}

func (u *Upload) readBlob(reader io.Reader) (*Blob, error) {
	// read one byte beyond the limit to detect oversized bodies
	buf, err := io.ReadAll(io.LimitReader(reader, int64(u.MaxAllowedSize)+1))
	if err != nil {
		return nil, ErrMissingUpload
	}
	if len(buf) > u.MaxAllowedSize {
		return nil, ErrMaxSizeExceeded
	}
	if len(buf) == 0 {
		return nil, ErrMissingUpload
	}
	return NewBlobBytes(buf), nil
}

func (u *Upload) validContentType(contentType string) bool {
	if len(u.accepts) == 0 {
		return true
	}
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, accept := range u.accepts {
		if accept == "*/*" || accept == mediaType {
			return true
		}
		if strings.HasSuffix(accept, "/*") &&
			strings.HasPrefix(mediaType, strings.TrimSuffix(accept, "/*")+"/") {
			return true
		}
	}
	return false
}

func parseContentType(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(s)
	if err != nil {
		return s
	}
	return mediaType
}
