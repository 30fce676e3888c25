// Package accent derives a representative bright color from an image by
// k-means clustering of sampled pixel colors.
package accent

import (
	"image"
	"image/color"
	"math"
	"math/rand"
)

// Options for accent color extraction
type Options struct {
	// Clusters k-means cluster count
	Clusters int

	// MaxIterations k-means iteration bound
	MaxIterations int

	// SampleSize maximum number of pixels sampled from the image
	SampleSize int

	// Seed for sampling and cluster initialization, extraction is
	// deterministic for a fixed seed
	Seed int64

	// MinBrightness minimum HSV value 0..1 for a centroid to qualify
	MinBrightness float64

	// MinSaturation minimum HSV saturation 0..1 for a centroid to qualify
	MinSaturation float64

	// Fallback color returned when no centroid qualifies
	Fallback color.NRGBA
}

// DefaultOptions accent extraction defaults
func DefaultOptions() Options {
	return Options{
		Clusters:      4,
		MaxIterations: 20,
		SampleSize:    10000,
		Seed:          1,
		MinBrightness: 0.2,
		MinSaturation: 0.15,
		Fallback:      color.NRGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	}
}

type vec3 [3]float64

// Extract clusters sampled pixel colors and returns the brightest centroid
// meeting the saturation and brightness minimums, or the fallback color.
// A solid-color image yields exactly that color when it qualifies.
func Extract(img image.Image, opts Options) color.NRGBA {
	if opts.Clusters < 1 {
		opts.Clusters = 1
	}
	if opts.MaxIterations < 1 {
		opts.MaxIterations = 1
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	pixels := sample(img, opts.SampleSize, rng)
	if len(pixels) == 0 {
		return opts.Fallback
	}
	k := opts.Clusters
	if k > len(pixels) {
		k = len(pixels)
	}
	centers, sizes := cluster(pixels, k, opts.MaxIterations, rng)

	best := -1
	bestValue := -1.0
	for i, c := range centers {
		if sizes[i] == 0 {
			continue
		}
		s, v := saturationValue(c)
		if s < opts.MinSaturation || v < opts.MinBrightness {
			continue
		}
		if v > bestValue {
			best = i
			bestValue = v
		}
	}
	if best < 0 {
		return opts.Fallback
	}
	return toNRGBA(centers[best])
}

// sample collects up to limit pixel colors, all of them when the image is
// small enough, otherwise random coordinates from the seeded rng
func sample(img image.Image, limit int, rng *rand.Rand) []vec3 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	total := w * h
	if limit <= 0 || total <= limit {
		pixels := make([]vec3, 0, total)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, at(img, x, y))
			}
		}
		return pixels
	}
	pixels := make([]vec3, limit)
	for i := range pixels {
		x := bounds.Min.X + rng.Intn(w)
		y := bounds.Min.Y + rng.Intn(h)
		pixels[i] = at(img, x, y)
	}
	return pixels
}

func at(img image.Image, x, y int) vec3 {
	r, g, b, _ := img.At(x, y).RGBA()
	return vec3{float64(r >> 8), float64(g >> 8), float64(b >> 8)}
}

// cluster runs k-means over the pixel colors, returning the centroids and
// their cluster sizes. Empty clusters keep their previous centroid with a
// zero size.
func cluster(pixels []vec3, k, maxIterations int, rng *rand.Rand) ([]vec3, []int) {
	centers := make([]vec3, k)
	for i, idx := range rng.Perm(len(pixels))[:k] {
		centers[i] = pixels[idx]
	}
	sizes := make([]int, k)
	for iter := 0; iter < maxIterations; iter++ {
		sums := make([]vec3, k)
		for i := range sizes {
			sizes[i] = 0
		}
		for _, p := range pixels {
			j := nearest(centers, p)
			sums[j][0] += p[0]
			sums[j][1] += p[1]
			sums[j][2] += p[2]
			sizes[j]++
		}
		converged := true
		for i := range centers {
			if sizes[i] == 0 {
				continue
			}
			n := float64(sizes[i])
			next := vec3{sums[i][0] / n, sums[i][1] / n, sums[i][2] / n}
			if distance(centers[i], next) > 0.01 {
				converged = false
			}
			centers[i] = next
		}
		if converged {
			break
		}
	}
	return centers, sizes
}

func nearest(centers []vec3, p vec3) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, c := range centers {
		if d := distance(c, p); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func distance(a, b vec3) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// saturationValue returns the HSV saturation and value of a centroid, 0..1
func saturationValue(c vec3) (s, v float64) {
	maxc := math.Max(c[0], math.Max(c[1], c[2]))
	minc := math.Min(c[0], math.Min(c[1], c[2]))
	v = maxc / 255
	if maxc > 0 {
		s = (maxc - minc) / maxc
	}
	return s, v
}

func toNRGBA(c vec3) color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(clamp(c[0]))),
		G: uint8(math.Round(clamp(c[1]))),
		B: uint8(math.Round(clamp(c[2]))),
		A: 0xff,
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
