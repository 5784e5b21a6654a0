package analysis

import (
	"bytes"
	"log"

	"github.com/disintegration/imaging"
)

const (
	// Canonical scan resolution. Every source image is forced to this
	// size so densities are comparable across scan devices.
	canvasWidth  = 800
	canvasHeight = 1100

	// Fraction of width/height trimmed from each border to drop
	// hole-punches and scanner edge noise.
	borderTrim = 0.10

	// Histogram fraction clipped from each end before the contrast
	// stretch, to compensate for faint pencil and uneven exposure.
	contrastCutoff = 0.05

	// Intensity below which a stretched pixel counts as ink
	inkThreshold = 140
)

// AnalyzeInkDensity returns the percentage of the page covered in dark
// pixels, in [0, 100]. A sheet that cannot be decoded reads as a blank
// page (0.0); decode failures are logged, never returned.
func AnalyzeInkDensity(data []byte) float64 {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("⚠️ CV error: %v", err)
		return 0.0
	}

	// Normalize size, ignoring the source aspect ratio
	normalized := imaging.Resize(img, canvasWidth, canvasHeight, imaging.Lanczos)

	// Keep the central 80%x80% region
	cropW := int(float64(canvasWidth) * (1 - 2*borderTrim))
	cropH := int(float64(canvasHeight) * (1 - 2*borderTrim))
	cropped := imaging.CropCenter(normalized, cropW, cropH)

	gray := imaging.Grayscale(cropped)

	lo, hi := clipBounds(imaging.Histogram(gray), contrastCutoff)

	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0.0
	}

	ink := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := int(gray.Pix[gray.PixOffset(x, y)])
			if stretch(v, lo, hi) < inkThreshold {
				ink++
			}
		}
	}

	return float64(ink) / float64(total) * 100
}

// clipBounds finds the intensity range left after discarding the given
// fraction of pixels from the dark and light ends of the histogram.
func clipBounds(hist [256]float64, cutoff float64) (int, int) {
	lo, hi := 0, 255

	cum := 0.0
	for i := 0; i < 256; i++ {
		cum += hist[i]
		if cum > cutoff {
			lo = i
			break
		}
	}

	cum = 0.0
	for i := 255; i >= 0; i-- {
		cum += hist[i]
		if cum > cutoff {
			hi = i
			break
		}
	}

	return lo, hi
}

// stretch linearly rescales v so that [lo, hi] maps onto [0, 255].
// A degenerate range (single-tone page) leaves the value untouched.
func stretch(v, lo, hi int) int {
	if hi <= lo {
		return v
	}
	s := (v - lo) * 255 / (hi - lo)
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return s
}
