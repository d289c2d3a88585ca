package visualizer

import (
	"fmt"
	"image/color"
	"io"
	"os"

	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// legend entries past this many sources are folded into the title.
const MAX_LEGEND_ENTRIES = 12

// swatch legend thumbnail filled with one label color.
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, c.ClipPolygonY(pts))
}

// snapshotGrid adapts a snapshot to plotter.GridXYZ. row 0 of the grid is drawn at the top.
type snapshotGrid struct {
	snap da.GridSnapshot
}

func (g snapshotGrid) Dims() (c, r int) {
	return g.snap.Size, g.snap.Size
}

func (g snapshotGrid) Z(c, r int) float64 {
	return float64(g.snap.Labels[g.snap.Size-1-r][c])
}

func (g snapshotGrid) X(c int) float64 {
	return float64(c)
}

func (g snapshotGrid) Y(r int) float64 {
	return float64(g.snap.Size - 1 - r)
}

// NewHeatmapPlot heatmap of the snapshot normalised over its label range, UNASSIGNED included.
func NewHeatmapPlot(snap da.GridSnapshot, title string) (*plot.Plot, error) {
	if snap.Size == 0 {
		return nil, fmt.Errorf("heatmap: empty snapshot")
	}
	lo, hi := snap.LabelRange()
	pal := rangePalette(snap, lo, hi)
	if hi == lo {
		// one value only: widen the range so the palette scale stays finite.
		hi = lo + 1
		pal = append(pal, pal[0])
	}

	hm := plotter.NewHeatMap(snapshotGrid{snap: snap}, pal)
	hm.Min = float64(lo)
	hm.Max = float64(hi)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.Add(hm)
	addLegend(p, snap)
	p.X.Min, p.X.Max = -0.5, float64(snap.Size)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(snap.Size)-0.5
	return p, nil
}

func addLegend(p *plot.Plot, snap da.GridSnapshot) {
	colors := LabelColors(snap.NumSources)
	lo, hi := snap.LabelRange()
	if lo < 0 {
		p.Legend.Add("unassigned", swatch{color: unassignedColor})
	}
	entries := 0
	for l := 0; l <= hi && l < len(colors); l++ {
		if entries == MAX_LEGEND_ENTRIES {
			p.Legend.Add(fmt.Sprintf("... %d more", hi-l+1), swatch{color: color.Transparent})
			break
		}
		p.Legend.Add(fmt.Sprintf("source %d", l), swatch{color: colors[l]})
		entries++
	}
	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-4)
}

// RenderPNG writes the heatmap as a PNG image of side inches.
func RenderPNG(w io.Writer, snap da.GridSnapshot, title string, side vg.Length) error {
	p, err := NewHeatmapPlot(snap, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(side, side, "png")
	if err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePNG writes the heatmap to filename.
func SavePNG(filename string, snap da.GridSnapshot, title string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	defer util.CloseWithError(f, filename, &err)
	return RenderPNG(f, snap, title, 8*vg.Inch)
}

// DefaultTitle title used by every renderer.
func DefaultTitle(snap da.GridSnapshot) string {
	return fmt.Sprintf("Visualization of Source Areas (pass %d, %d regions)", snap.Pass, snap.NumLabels)
}
