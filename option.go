package logostamp

import (
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/hopworks/logostamp/accent"
	"github.com/hopworks/logostamp/canvas"
	"github.com/hopworks/logostamp/logo"
	"github.com/hopworks/logostamp/metrics/instrumentation"
)

type Option func(app *App)

func WithCanvasSize(size int) Option {
	return func(app *App) {
		if size > 0 {
			app.CanvasSize = size
		}
	}
}

func WithMargin(margin int) Option {
	return func(app *App) {
		if margin >= 0 {
			app.Margin = margin
		}
	}
}

func WithBackground(background color.NRGBA) Option {
	return func(app *App) {
		app.Background = background
	}
}

func WithAnchor(anchor canvas.Anchor) Option {
	return func(app *App) {
		app.Anchor = anchor
	}
}

func WithLogoPath(path string) Option {
	return func(app *App) {
		app.LogoPath = path
	}
}

func WithLogoWidth(width int) Option {
	return func(app *App) {
		if width > 0 {
			app.LogoWidth = width
		}
	}
}

func WithLogoWatch(watch bool) Option {
	return func(app *App) {
		app.LogoWatch = watch
	}
}

// WithLogoTemplate sets a preloaded template, bypassing LogoPath
func WithLogoTemplate(template *logo.Template) Option {
	return func(app *App) {
		app.template = template
	}
}

func WithAccent(options accent.Options) Option {
	return func(app *App) {
		app.Accent = options
	}
}

func WithUpload(upload *Upload) Option {
	return func(app *App) {
		if upload != nil {
			app.Upload = upload
		}
	}
}

func WithProcessTimeout(timeout time.Duration) Option {
	return func(app *App) {
		if timeout > 0 {
			app.ProcessTimeout = timeout
		}
	}
}

func WithProcessConcurrency(concurrency int64) Option {
	return func(app *App) {
		app.ProcessConcurrency = concurrency
	}
}

func WithDisableErrorBody(disabled bool) Option {
	return func(app *App) {
		app.DisableErrorBody = disabled
	}
}

func WithInstrumentation(instr *instrumentation.Instrumentation) Option {
	return func(app *App) {
		app.Instr = instr
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(app *App) {
		if logger != nil {
			app.Logger = logger
		}
	}
}

func WithDebug(debug bool) Option {
	return func(app *App) {
		app.Debug = debug
	}
}
