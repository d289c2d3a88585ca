// Package visualizer renders grid snapshots as PNG heatmaps, HTML charts, terminal blocks and
// MJPEG animations. renderers only read the snapshot.
package visualizer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lintang-b-s/Voronoix/pkg"
	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"gonum.org/v1/plot/palette"
)

var unassignedColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// LabelColors one distinct color per source id, evenly spaced hues from red to magenta.
func LabelColors(numSources int) []color.Color {
	// Rainbow needs at least two stops.
	n := numSources
	if n < 2 {
		n = 2
	}
	return palette.Rainbow(n, palette.Red, palette.Magenta, 0.75, 0.95, 1).Colors()[:numSources]
}

func colorOf(colors []color.Color, label int) color.Color {
	if label == int(pkg.UNASSIGNED) || label < 0 || label >= len(colors) {
		return unassignedColor
	}
	return colors[label]
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// labelPalette palette.Palette over the contiguous label range [lo, hi].
type labelPalette []color.Color

func (p labelPalette) Colors() []color.Color {
	return p
}

func rangePalette(snap da.GridSnapshot, lo, hi int) labelPalette {
	colors := LabelColors(snap.NumSources)
	p := make(labelPalette, 0, hi-lo+1)
	for l := lo; l <= hi; l++ {
		p = append(p, colorOf(colors, l))
	}
	return p
}

// RenderImage raster image of the snapshot, cellSize pixels per cell.
func RenderImage(snap da.GridSnapshot, cellSize int) *image.RGBA {
	colors := LabelColors(snap.NumSources)
	side := snap.Size * cellSize
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for r, row := range snap.Labels {
		for c, l := range row {
			col := colorOf(colors, l)
			for y := r * cellSize; y < (r+1)*cellSize; y++ {
				for x := c * cellSize; x < (c+1)*cellSize; x++ {
					img.Set(x, y, col)
				}
			}
		}
	}
	return img
}
