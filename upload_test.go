package logostamp

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRawBody(t *testing.T) {
	u := NewUpload()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("fake image bytes"))
	r.Header.Set("Content-Type", "image/png")
	blob, err := u.Get(r)
	require.NoError(t, err)
	buf, err := blob.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(buf))
}

func TestUploadMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "a.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	u := NewUpload()
	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	blob, err := u.Get(r)
	require.NoError(t, err)
	got, err := blob.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestUploadRejectsGet(t *testing.T) {
	u := NewUpload()
	_, err := u.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, ErrMethodNotAllowed, err)
}

func TestUploadMissingContentType(t *testing.T) {
	u := NewUpload()
	_, err := u.Get(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x")))
	assert.Equal(t, ErrMissingUpload, err)
}

func TestUploadRejectsContentType(t *testing.T) {
	u := NewUpload()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
	r.Header.Set("Content-Type", "text/plain")
	_, err := u.Get(r)
	assert.Equal(t, ErrUnsupportedFormat, err)
}

func TestUploadAcceptWildcard(t *testing.T) {
	u := NewUpload()
	u.Accept = "image/png, image/jpeg"
	u.ParseAccept()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
	r.Header.Set("Content-Type", "image/png")
	_, err := u.Get(r)
	assert.NoError(t, err)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
	r.Header.Set("Content-Type", "image/webp")
	_, err = u.Get(r)
	assert.Equal(t, ErrUnsupportedFormat, err)
}

func TestUploadMaxSizeExceeded(t *testing.T) {
	u := NewUpload()
	u.MaxAllowedSize = 8

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("123456789"))
	r.Header.Set("Content-Type", "image/png")
	_, err := u.Get(r)
	assert.Equal(t, ErrMaxSizeExceeded, err)
}

func TestUploadEmptyBody(t *testing.T) {
	u := NewUpload()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	r.Header.Set("Content-Type", "image/png")
	_, err := u.Get(r)
	assert.Equal(t, ErrMissingUpload, err)
}
