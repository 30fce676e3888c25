package config

import (
	"flag"

	"github.com/hopworks/logostamp"
	"github.com/hopworks/logostamp/canvas"
)

// withCanvas with canvas config option
func withCanvas(fs *flag.FlagSet, cb Callback) logostamp.Option {
	var (
		canvasSize = fs.Int("canvas-size", 3000,
			"Square canvas dimension in pixels")
		canvasMargin = fs.Int("canvas-margin", 100,
			"Logo margin from the canvas right and bottom edges in pixels")
		canvasBackground = fs.String("canvas-background", "#ffffff",
			"Canvas background color hex")
		canvasAnchor = fs.String("canvas-anchor", "center",
			"Placement of the fitted image on the canvas: center, top, bottom, left, right or corner anchors e.g. top-left")
	)
	_, _ = cb()
	return func(app *logostamp.App) {
		background, err := logostamp.ParseColor(*canvasBackground)
		if err != nil {
			panic(err)
		}
		anchor, err := canvas.ParseAnchor(*canvasAnchor)
		if err != nil {
			panic(err)
		}
		logostamp.WithCanvasSize(*canvasSize)(app)
		logostamp.WithMargin(*canvasMargin)(app)
		logostamp.WithBackground(background)(app)
		logostamp.WithAnchor(anchor)(app)
	}
}
