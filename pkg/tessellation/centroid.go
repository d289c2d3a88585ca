package tessellation

import (
	"github.com/lintang-b-s/Voronoix/pkg"
	"github.com/lintang-b-s/Voronoix/pkg/concurrent"
	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/util"
)

// RegionSummary outcome of recentering one source.
type RegionSummary struct {
	Source   da.Index      `json:"source"`
	Cells    int           `json:"cells"`
	Previous da.Coordinate `json:"previous"`
	Centroid da.Coordinate `json:"centroid"`
	// Empty the region had no cells and the previous seed was kept.
	Empty bool `json:"empty"`
}

// Displacement manhattan distance the seed moved.
func (rs RegionSummary) Displacement() int {
	return rs.Previous.ManhattanDistance(rs.Centroid)
}

// CentroidRecenterer moves every source to the truncated mean (row, col) of its region.
type CentroidRecenterer struct {
	numWorkers int
	bandRows   int
}

func NewCentroidRecenterer(numWorkers int) *CentroidRecenterer {
	return &CentroidRecenterer{
		numWorkers: util.MaxInt(numWorkers, 1),
		bandRows:   pkg.CENTROID_BAND_ROWS,
	}
}

type rowBand struct {
	start, end int
}

type bandSums struct {
	count  []int64
	rowSum []int64
	colSum []int64
}

// Recenter computes each region's centroid from a finished grid, reseeds the source there and resets
// every frontier to exactly its new seed. a source that owns no cell keeps its previous seed.
// never fails.
func (cr *CentroidRecenterer) Recenter(grid *da.Grid, registry *SourceRegistry) []RegionSummary {
	k := registry.NumberOfSources()
	total := cr.sum(grid, k)

	summaries := make([]RegionSummary, k)
	registry.ForSources(func(s *Source) {
		id := s.id
		summary := RegionSummary{
			Source:   id,
			Cells:    int(total.count[id]),
			Previous: s.seed,
			Centroid: s.seed,
		}
		if total.count[id] == 0 {
			summary.Empty = true
		} else {
			// sums are non-negative, integer division truncates like int(mean).
			summary.Centroid = da.NewCoordinate(
				int(total.rowSum[id]/total.count[id]),
				int(total.colSum[id]/total.count[id]),
			)
		}
		s.reseed(summary.Centroid)
		summaries[id] = summary
	})
	return summaries
}

// sum accumulates per-source cell counts and coordinate sums. rows are split into bands summed on a
// worker pool; integer addition is order independent so the merge is exact.
func (cr *CentroidRecenterer) sum(grid *da.Grid, k int) bandSums {
	n := grid.Size()
	bands := make([]rowBand, 0, n/cr.bandRows+1)
	for start := 0; start < n; start += cr.bandRows {
		bands = append(bands, rowBand{start: start, end: util.MinInt(start+cr.bandRows, n)})
	}

	sumBand := func(b rowBand) bandSums {
		bs := newBandSums(k)
		for r := b.start; r < b.end; r++ {
			for c, label := range grid.GetRow(r) {
				if label == pkg.UNASSIGNED {
					continue
				}
				bs.count[label]++
				bs.rowSum[label] += int64(r)
				bs.colSum[label] += int64(c)
			}
		}
		return bs
	}

	var partials []bandSums
	if len(bands) <= 1 || cr.numWorkers == 1 {
		partials = make([]bandSums, 0, len(bands))
		for _, b := range bands {
			partials = append(partials, sumBand(b))
		}
	} else {
		partials = concurrent.Run(cr.numWorkers, bands, sumBand)
	}

	total := newBandSums(k)
	for _, p := range partials {
		for i := 0; i < k; i++ {
			total.count[i] += p.count[i]
			total.rowSum[i] += p.rowSum[i]
			total.colSum[i] += p.colSum[i]
		}
	}
	return total
}

func newBandSums(k int) bandSums {
	return bandSums{
		count:  make([]int64, k),
		rowSum: make([]int64, k),
		colSum: make([]int64, k),
	}
}
