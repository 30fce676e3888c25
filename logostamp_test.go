package logostamp

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hopworks/logostamp/logo"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120 120">
  <rect x="0" y="0" width="120" height="120" fill="black"/>
</svg>`

func testApp(t *testing.T, options ...Option) *App {
	t.Helper()
	template, err := logo.FromBytes([]byte(testSVG))
	require.NoError(t, err)
	app := New(append([]Option{
		WithCanvasSize(300),
		WithMargin(10),
		WithLogoWidth(30),
		WithLogoTemplate(template),
		WithLogger(zap.NewNop()),
	}, options...)...)
	require.NoError(t, app.Startup(context.Background()))
	t.Cleanup(func() {
		_ = app.Shutdown(context.Background())
	})
	return app
}

func pngBytes(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartUpload(t *testing.T, field, filename string, body []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestIndexPage(t *testing.T) {
	app := testApp(t)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "logostamp")
	assert.Contains(t, w.Body.String(), `name="image"`)
}

func TestNotFound(t *testing.T) {
	app := testApp(t)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	app := testApp(t)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestStampEndToEnd(t *testing.T) {
	app := testApp(t)
	red := color.NRGBA{R: 255, A: 255}
	// 100x200 red upload fits to a 150x300 centered region on a 300 canvas
	body, contentType := multipartUpload(t, "image", "red.png", pngBytes(t, 100, 200, red))

	r := httptest.NewRequest(http.MethodPost, "/", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "stamped.png")

	out, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 300, out.Bounds().Dx())
	require.Equal(t, 300, out.Bounds().Dy())

	at := func(x, y int) color.NRGBA {
		r, g, b, a := out.At(x, y).RGBA()
		return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, white, at(10, 150), "left padding")
	assert.Equal(t, red, at(150, 150), "fitted content")
	// accent of an all-red image is red, so the logo square
	// x [260,290) y [260,290) is stamped red over the content
	assert.Equal(t, red, at(275, 275))
	assert.Equal(t, red, at(261, 261))
}

func TestStampRawBodyUpload(t *testing.T) {
	app := testApp(t)
	blue := color.NRGBA{B: 255, A: 255}
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(pngBytes(t, 50, 50, blue)))
	r.Header.Set("Content-Type", "image/png")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 300, out.Bounds().Dx())
}

func TestStampInvalidImage(t *testing.T) {
	app := testApp(t)
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not an image")))
	r.Header.Set("Content-Type", "image/png")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Contains(t, w.Body.String(), "please upload a valid image")
}

func TestStampMissingUpload(t *testing.T) {
	app := testApp(t)
	body, contentType := multipartUpload(t, "wrongfield", "x.png", pngBytes(t, 10, 10, color.NRGBA{A: 255}))
	r := httptest.NewRequest(http.MethodPost, "/", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStampDisableErrorBody(t *testing.T) {
	app := testApp(t, WithDisableErrorBody(true))
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("junk")))
	r.Header.Set("Content-Type", "image/png")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestStampAccentFallback(t *testing.T) {
	app := testApp(t)
	// white image has zero saturation everywhere, so the logo uses the
	// fallback accent color
	body, contentType := multipartUpload(t, "image", "white.png",
		pngBytes(t, 60, 60, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	r := httptest.NewRequest(http.MethodPost, "/", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	out, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	r8, g8, b8, _ := out.At(275, 275).RGBA()
	fallback := app.Accent.Fallback
	assert.Equal(t, fallback.R, uint8(r8>>8))
	assert.Equal(t, fallback.G, uint8(g8>>8))
	assert.Equal(t, fallback.B, uint8(b8>>8))
}

func TestStampImage(t *testing.T) {
	app := testApp(t)
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	out, err := app.StampImage(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 300, out.Bounds().Dx())
	assert.Equal(t, 300, out.Bounds().Dy())
}

func TestStartupMissingLogo(t *testing.T) {
	app := New(WithLogger(zap.NewNop()))
	err := app.Startup(context.Background())
	require.Error(t, err)
	assert.Equal(t, ErrLogoAsset, WrapError(err))

	app = New(WithLogoPath("does/not/exist.svg"))
	err = app.Startup(context.Background())
	require.Error(t, err)
	assert.Equal(t, ErrLogoAsset, WrapError(err))
}

func TestProcessConcurrency(t *testing.T) {
	app := testApp(t, WithProcessConcurrency(1))
	body, contentType := multipartUpload(t, "image", "red.png",
		pngBytes(t, 20, 20, color.NRGBA{R: 255, A: 255}))
	r := httptest.NewRequest(http.MethodPost, "/", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
