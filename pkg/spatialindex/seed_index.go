package spatialindex

import (
	"sort"

	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/tidwall/rtree"
)

// SeedIndex r-tree over source seeds, one point box per source.
type SeedIndex struct {
	tr    *rtree.RTreeG[da.Index]
	seeds []da.Coordinate
	n     int
}

type SeedDistance struct {
	Source   da.Index      `json:"source"`
	Seed     da.Coordinate `json:"seed"`
	Distance int           `json:"distance"`
}

func NewSeedIndex(n int) *SeedIndex {
	var tr rtree.RTreeG[da.Index]
	return &SeedIndex{tr: &tr, n: n}
}

// Build. index seeds[i] as source i, replacing the previous content.
func (si *SeedIndex) Build(seeds []da.Coordinate) {
	var tr rtree.RTreeG[da.Index]
	for i, s := range seeds {
		p := point(s.GetRow(), s.GetCol())
		tr.Insert(p, p, da.Index(i))
	}
	si.tr = &tr
	si.seeds = append(si.seeds[:0], seeds...)
}

func (si *SeedIndex) Len() int {
	return si.tr.Len()
}

func point(row, col int) [2]float64 {
	return [2]float64{float64(col), float64(row)}
}

// SearchWithinRadius sources whose seed is within manhattan distance radius of (row, col),
// closest first, ties by source id.
func (si *SeedIndex) SearchWithinRadius(row, col, radius int) []SeedDistance {
	q := da.NewCoordinate(row, col)
	results := make([]SeedDistance, 0, 4)
	si.tr.Search(point(row-radius, col-radius), point(row+radius, col+radius),
		func(min, max [2]float64, id da.Index) bool {
			seed := si.seeds[id]
			if d := q.ManhattanDistance(seed); d <= radius {
				results = append(results, SeedDistance{Source: id, Seed: seed, Distance: d})
			}
			return true
		})
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Source < results[j].Source
	})
	return results
}

// Nearest k closest seeds to (row, col). the search window doubles until k seeds fall inside
// it or it covers the whole grid.
func (si *SeedIndex) Nearest(row, col, k int) []SeedDistance {
	if k <= 0 || si.Len() == 0 {
		return []SeedDistance{}
	}
	maxRadius := 2 * si.n
	for radius := 1; ; radius *= 2 {
		if radius > maxRadius {
			radius = maxRadius
		}
		found := si.SearchWithinRadius(row, col, radius)
		if len(found) >= k || radius == maxRadius {
			if len(found) > k {
				found = found[:k]
			}
			return found
		}
	}
}
