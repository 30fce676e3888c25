package config

import (
	"flag"

	"github.com/hopworks/logostamp"
	"github.com/hopworks/logostamp/accent"
)

// withAccent with accent extraction config option
func withAccent(fs *flag.FlagSet, cb Callback) logostamp.Option {
	defaults := accent.DefaultOptions()
	var (
		accentClusters = fs.Int("accent-clusters", defaults.Clusters,
			"K-means cluster count for accent color extraction")
		accentMaxIterations = fs.Int("accent-max-iterations", defaults.MaxIterations,
			"K-means iteration bound")
		accentSampleSize = fs.Int("accent-sample-size", defaults.SampleSize,
			"Maximum number of pixels sampled for clustering")
		accentSeed = fs.Int64("accent-seed", defaults.Seed,
			"Random seed for sampling and cluster initialization")
		accentMinBrightness = fs.Float64("accent-min-brightness", defaults.MinBrightness,
			"Minimum HSV value 0..1 for a cluster centroid to qualify")
		accentMinSaturation = fs.Float64("accent-min-saturation", defaults.MinSaturation,
			"Minimum HSV saturation 0..1 for a cluster centroid to qualify")
		accentFallback = fs.String("accent-fallback", "#7f7f7f",
			"Fallback accent color hex when no cluster qualifies")
	)
	_, _ = cb()
	return func(app *logostamp.App) {
		fallback, err := logostamp.ParseColor(*accentFallback)
		if err != nil {
			panic(err)
		}
		logostamp.WithAccent(accent.Options{
			Clusters:      *accentClusters,
			MaxIterations: *accentMaxIterations,
			SampleSize:    *accentSampleSize,
			Seed:          *accentSeed,
			MinBrightness: *accentMinBrightness,
			MinSaturation: *accentMinSaturation,
			Fallback:      fallback,
		})(app)
	}
}
