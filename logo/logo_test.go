package logo

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120 60">
  <rect x="0" y="0" width="120" height="60" fill="black"/>
  <rect x="10" y="10" width="20" height="20" style="fill:#112233"/>
  <rect x="40" y="10" width="20" height="20" fill="none"/>
</svg>`

var accent = color.NRGBA{R: 0xff, G: 0x22, B: 0x11, A: 0xff}

func TestFromBytes(t *testing.T) {
	tpl, err := FromBytes([]byte(testSVG))
	require.NoError(t, err)
	assert.NotNil(t, tpl)
}

func TestFromBytesMalformed(t *testing.T) {
	_, err := FromBytes([]byte("not an svg at all <<<"))
	assert.ErrorIs(t, err, ErrAsset)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.svg"))
	assert.ErrorIs(t, err, ErrAsset)
}

func TestRecolor(t *testing.T) {
	tpl, err := FromBytes([]byte(testSVG))
	require.NoError(t, err)

	out := string(tpl.Recolor(accent))
	assert.Contains(t, out, `fill="#ff2211"`)
	assert.Contains(t, out, `fill:#ff2211`)
	assert.Contains(t, out, `fill="none"`, "cutouts stay transparent")
	assert.NotContains(t, out, "black")
	assert.NotContains(t, out, "#112233")
}

func TestRecolorLeavesTemplate(t *testing.T) {
	tpl, err := FromBytes([]byte(testSVG))
	require.NoError(t, err)
	_ = tpl.Recolor(accent)
	assert.Contains(t, string(tpl.data), `fill="black"`)
}

func TestRasterizeAspect(t *testing.T) {
	tpl, err := FromBytes([]byte(testSVG))
	require.NoError(t, err)

	img, err := tpl.Rasterize(accent, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy(), "height follows the 2:1 ViewBox")
}

func TestRasterizeColor(t *testing.T) {
	tpl, err := FromBytes([]byte(testSVG))
	require.NoError(t, err)

	img, err := tpl.Rasterize(accent, 100)
	require.NoError(t, err)
	c := img.RGBAAt(90, 45)
	assert.Equal(t, accent.R, c.R)
	assert.Equal(t, accent.G, c.G)
	assert.Equal(t, accent.B, c.B)
	assert.Equal(t, uint8(0xff), c.A)
}

func TestRasterizeDeterministic(t *testing.T) {
	tpl, err := FromBytes([]byte(testSVG))
	require.NoError(t, err)

	first, err := tpl.Rasterize(accent, 64)
	require.NoError(t, err)
	second, err := tpl.Rasterize(accent, 64)
	require.NoError(t, err)
	assert.Equal(t, first.Pix, second.Pix)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff2211", Hex(accent))
	assert.Equal(t, "#000000", Hex(color.NRGBA{A: 0xff}))
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(path, []byte(testSVG), 0644))

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer func() {
		_ = w.Close()
	}()

	before := w.Template()
	assert.NotNil(t, before)

	updated := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
  <circle cx="5" cy="5" r="5" fill="black"/>
</svg>`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	assert.Eventually(t, func() bool {
		return string(w.Template().data) == updated
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherKeepsLastGoodTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(path, []byte(testSVG), 0644))

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer func() {
		_ = w.Close()
	}()

	require.NoError(t, os.WriteFile(path, []byte("broken <<<"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, testSVG, string(w.Template().data))
}
