package logostamp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/disintegration/imaging"
	"github.com/hopworks/logostamp/accent"
	"github.com/hopworks/logostamp/canvas"
	"github.com/hopworks/logostamp/logo"
	"github.com/hopworks/logostamp/metrics/instrumentation"
)

const Version = "1.2.0"

// App logo stamping HTTP handler. It fits one uploaded image onto a fixed
// square canvas, extracts an accent color from its pixels, recolors and
// rasterizes the logo template and composites it bottom-right.
type App struct {
	CanvasSize         int
	Margin             int
	Background         color.NRGBA
	Anchor             canvas.Anchor
	LogoPath           string
	LogoWidth          int
	LogoWatch          bool
	Accent             accent.Options
	Upload             *Upload
	ProcessTimeout     time.Duration
	ProcessConcurrency int64
	DisableErrorBody   bool
	Logger             *zap.Logger
	Debug              bool
	Instr              *instrumentation.Instrumentation

	template *logo.Template
	watcher  *logo.Watcher
	sema     *semaphore.Weighted
}

// New create new App
func New(options ...Option) *App {
	app := &App{
		CanvasSize:     3000,
		Margin:         100,
		Background:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Anchor:         canvas.Center,
		LogoWidth:      300,
		Accent:         accent.DefaultOptions(),
		Upload:         NewUpload(),
		ProcessTimeout: time.Second * 20,
		Logger:         zap.NewNop(),
	}
	for _, option := range options {
		option(app)
	}
	if app.ProcessConcurrency > 0 {
		app.sema = semaphore.NewWeighted(app.ProcessConcurrency)
	}
	if app.Debug {
		app.debugLog()
	}
	return app
}

// Startup App startup lifecycle: loads and validates the logo template
func (app *App) Startup(ctx context.Context) error {
	if app.template == nil {
		if app.LogoPath == "" {
			return ErrLogoAsset
		}
		if app.LogoWatch {
			watcher, err := logo.NewWatcher(app.LogoPath, app.Logger)
			if err != nil {
				return err
			}
			app.watcher = watcher
		} else {
			template, err := logo.FromFile(app.LogoPath)
			if err != nil {
				return err
			}
			app.template = template
		}
	}
	// fail fast on templates that validate but cannot rasterize
	if _, err := app.logoTemplate().Rasterize(app.Accent.Fallback, app.LogoWidth); err != nil {
		return err
	}
	return nil
}

// Shutdown App shutdown lifecycle
func (app *App) Shutdown(ctx context.Context) error {
	if app.watcher != nil {
		return app.watcher.Close()
	}
	return nil
}

func (app *App) logoTemplate() *logo.Template {
	if app.watcher != nil {
		return app.watcher.Template()
	}
	return app.template
}

// ServeHTTP implements http.Handler for the stamp operations
func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if path := r.URL.EscapedPath(); path != "/" && path != "" {
			app.writeError(w, ErrNotFound)
			return
		}
		renderIndex(w, app.Upload.FormFieldName)
	case http.MethodPost:
		blob, err := app.Do(r)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			e := WrapError(err)
			if e.Code >= http.StatusInternalServerError {
				app.Logger.Error("process", zap.String("path", r.URL.Path), zap.Error(err))
			} else {
				app.Logger.Debug("process", zap.String("path", r.URL.Path), zap.Error(err))
			}
			app.writeError(w, e)
			return
		}
		buf, _ := blob.ReadAll()
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="stamped.png"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
		_, _ = w.Write(buf)
	default:
		app.writeError(w, ErrMethodNotAllowed)
	}
}

// Do executes the stamp pipeline for one uploaded image
func (app *App) Do(r *http.Request) (*Blob, error) {
	ctx := r.Context()
	if app.ProcessTimeout > 0 {
		var cancel func()
		ctx, cancel = context.WithTimeout(ctx, app.ProcessTimeout)
		defer cancel()
	}
	if app.sema != nil {
		if err := app.sema.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer app.sema.Release(1)
	}
	blob, err := app.Upload.Get(r)
	if err != nil {
		return nil, err
	}
	return app.Stamp(ctx, blob)
}

// Stamp runs the transform on a decoded upload blob and returns the PNG
// result. The canvas fit and the accent extraction both consume the source
// image independently.
func (app *App) Stamp(ctx context.Context, source *Blob) (*Blob, error) {
	timer := app.Instr.NewStageTimer("decode")
	src, err := source.Image()
	timer.ObserveDurationWithError(err)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timer = app.Instr.NewStageTimer("fit")
	base := canvas.Fit(src, canvas.Options{
		Size:       app.CanvasSize,
		Background: app.Background,
		Anchor:     app.Anchor,
	})
	timer.ObserveDuration()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timer = app.Instr.NewStageTimer("accent")
	accentColor := accent.Extract(src, app.Accent)
	timer.ObserveDuration()
	if app.Debug {
		app.Logger.Debug("accent", zap.String("color", logo.Hex(accentColor)))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timer = app.Instr.NewStageTimer("logo")
	mark, err := app.logoTemplate().Rasterize(accentColor, app.LogoWidth)
	timer.ObserveDurationWithError(err)
	if err != nil {
		return nil, err
	}

	timer = app.Instr.NewStageTimer("stamp")
	out := canvas.Stamp(base, mark, app.Margin)
	timer.ObserveDuration()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timer = app.Instr.NewStageTimer("encode")
	var buf bytes.Buffer
	err = imaging.Encode(&buf, out, imaging.PNG)
	timer.ObserveDurationWithError(err)
	if err != nil {
		return nil, err
	}
	return NewBlobBytes(buf.Bytes()), nil
}

// StampImage runs the transform on an already decoded image. Exposed for
// library use; the HTTP path goes through Do.
func (app *App) StampImage(ctx context.Context, src image.Image) (image.Image, error) {
	base := canvas.Fit(src, canvas.Options{
		Size:       app.CanvasSize,
		Background: app.Background,
		Anchor:     app.Anchor,
	})
	mark, err := app.logoTemplate().Rasterize(accent.Extract(src, app.Accent), app.LogoWidth)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return canvas.Stamp(base, mark, app.Margin), nil
}

func (app *App) writeError(w http.ResponseWriter, e Error) {
	if app.DisableErrorBody {
		w.WriteHeader(e.Code)
		return
	}
	buf, _ := json.Marshal(e)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(e.Code)
	_, _ = w.Write(buf)
}

func (app *App) debugLog() {
	app.Logger.Debug("logostamp",
		zap.String("version", Version),
		zap.Int("canvas_size", app.CanvasSize),
		zap.Int("margin", app.Margin),
		zap.String("anchor", app.Anchor.String()),
		zap.String("logo_path", app.LogoPath),
		zap.Int("logo_width", app.LogoWidth),
		zap.Bool("logo_watch", app.LogoWatch),
		zap.Int("accent_clusters", app.Accent.Clusters),
		zap.Int64("accent_seed", app.Accent.Seed),
		zap.Duration("process_timeout", app.ProcessTimeout),
		zap.Int64("process_concurrency", app.ProcessConcurrency),
	)
}
