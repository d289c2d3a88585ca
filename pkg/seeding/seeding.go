// Package seeding places the initial sources of a run.
package seeding

import (
	"github.com/lintang-b-s/Voronoix/pkg"
	"github.com/lintang-b-s/Voronoix/pkg/tessellation"
	"github.com/lintang-b-s/Voronoix/pkg/util"
	"golang.org/x/exp/rand"
)

// Random k seeds drawn uniformly from the n×n grid, all with the same weight. the same seed value
// always yields the same placement. seeds may coincide, the later source then starts starved.
func Random(n, k int, weight float64, seed uint64) []tessellation.SourceSpec {
	rd := rand.New(rand.NewSource(seed))
	specs := make([]tessellation.SourceSpec, k)
	for i := range specs {
		specs[i] = tessellation.NewSourceSpec(rd.Intn(n), rd.Intn(n), weight)
	}
	return specs
}

// Lattice side×side seeds at the centres of equal blocks: (i*(n/side) + n/(2*side), j*(n/side) + n/(2*side)).
func Lattice(n, side int, weight float64) []tessellation.SourceSpec {
	step := n / side
	offset := n / (2 * side)
	specs := make([]tessellation.SourceSpec, 0, side*side)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			specs = append(specs, tessellation.NewSourceSpec(i*step+offset, j*step+offset, weight))
		}
	}
	return specs
}

// LatticeSide smallest side whose square holds at least k seeds.
func LatticeSide(k int) int {
	side := 1
	for side*side < k {
		side++
	}
	return side
}

// WithWeights overrides the weight of the first len(weights) specs.
func WithWeights(specs []tessellation.SourceSpec, weights []float64) []tessellation.SourceSpec {
	out := make([]tessellation.SourceSpec, len(specs))
	copy(out, specs)
	for i := 0; i < len(out) && i < len(weights); i++ {
		out[i].Weight = weights[i]
	}
	return out
}

// Generate builds the initial specs for a layout. lattice layouts are truncated to k sources.
func Generate(layout pkg.SeedLayout, n, k int, seed uint64, weights []float64) ([]tessellation.SourceSpec, error) {
	if n <= 0 || k <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "grid size %d and number of sources %d must be positive", n, k)
	}

	var specs []tessellation.SourceSpec
	switch layout {
	case pkg.RANDOM_LAYOUT:
		specs = Random(n, k, pkg.DEFAULT_WEIGHT, seed)
	case pkg.LATTICE_LAYOUT:
		side := LatticeSide(k)
		if side > n {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "%d lattice sources do not fit a %dx%d grid", k, n, n)
		}
		specs = Lattice(n, side, pkg.DEFAULT_WEIGHT)[:k]
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown seed layout %s", layout)
	}

	if len(weights) > k {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "got %d weights for %d sources", len(weights), k)
	}
	return WithWeights(specs, weights), nil
}
