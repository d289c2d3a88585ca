package visualizer

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/util"
)

// RenderHTML writes a standalone go-echarts page with the snapshot as a heatmap.
func RenderHTML(w io.Writer, snap da.GridSnapshot) error {
	lo, hi := snap.LabelRange()
	if hi == lo {
		hi = lo + 1
	}

	cols := make([]string, snap.Size)
	rows := make([]string, snap.Size)
	for i := 0; i < snap.Size; i++ {
		cols[i] = strconv.Itoa(i)
		// category axes grow upwards, list rows bottom first so row 0 ends up on top.
		rows[i] = strconv.Itoa(snap.Size - 1 - i)
	}

	data := make([]opts.HeatMapData, 0, snap.Size*snap.Size)
	for r, row := range snap.Labels {
		for c, l := range row {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, snap.Size - 1 - r, l}})
		}
	}

	inRange := make([]string, 0, hi-lo+1)
	for _, c := range rangePalette(snap, lo, hi) {
		inRange = append(inRange, hexColor(c))
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Voronoix", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: DefaultTitle(snap)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols, Name: "column"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows, Name: "row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: inRange},
		}),
	)
	hm.AddSeries("source", data)
	return hm.Render(w)
}

func SaveHTML(filename string, snap da.GridSnapshot) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	defer util.CloseWithError(f, filename, &err)
	return RenderHTML(f, snap)
}
