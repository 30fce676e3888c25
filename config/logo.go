package config

import (
	"flag"

	"github.com/hopworks/logostamp"
)

// withLogo with logo asset config option
func withLogo(fs *flag.FlagSet, cb Callback) logostamp.Option {
	var (
		logoPath = fs.String("logo-path", "hop.svg",
			"Path of the SVG logo template asset")
		logoWidth = fs.Int("logo-width", 300,
			"Raster logo width in pixels, height follows the template aspect ratio")
		logoWatch = fs.Bool("logo-watch", false,
			"Watch the logo template file and hot-reload it on change")
	)
	_, _ = cb()
	return func(app *logostamp.App) {
		logostamp.WithLogoPath(*logoPath)(app)
		logostamp.WithLogoWidth(*logoWidth)(app)
		logostamp.WithLogoWatch(*logoWatch)(app)
	}
}
