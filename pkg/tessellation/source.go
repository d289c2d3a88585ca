// Package tessellation grows a weighted, grid-quantized Voronoi partition from a set of
// seed sources and recenters each source at the centroid of its region.
//
// One pass is a simultaneous multi-source Dijkstra expansion: every source owns a FIFO
// frontier, and the source with the smallest (cumulative cost, id) takes the next step.
// Accepting a cell costs 1/weight, so heavier sources are scheduled more often and claim
// more territory.
package tessellation

import (
	"github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/util"
)

// SourceSpec initial placement and weight of one source.
type SourceSpec struct {
	Row    int     `json:"row" mapstructure:"row"`
	Col    int     `json:"col" mapstructure:"col"`
	Weight float64 `json:"weight" mapstructure:"weight"`
}

func NewSourceSpec(row, col int, weight float64) SourceSpec {
	return SourceSpec{Row: row, Col: col, Weight: weight}
}

type Source struct {
	id     datastructure.Index
	weight float64
	seed   datastructure.Coordinate
	// cumulative cost is carried across passes and never reset.
	cost     float64
	frontier *datastructure.Queue[datastructure.Coordinate]
	active   bool
}

func (s *Source) GetID() datastructure.Index {
	return s.id
}

func (s *Source) GetWeight() float64 {
	return s.weight
}

func (s *Source) GetSeed() datastructure.Coordinate {
	return s.seed
}

func (s *Source) GetCost() float64 {
	return s.cost
}

// IsActive false once the scheduler dropped the source for the current pass.
func (s *Source) IsActive() bool {
	return s.active
}

func (s *Source) FrontierSize() int {
	return s.frontier.Size()
}

// accept charges the source for one claimed cell.
func (s *Source) accept() {
	s.cost += 1 / s.weight
}

// reseed sets the seed for the next pass and resets the frontier to contain exactly that seed.
func (s *Source) reseed(seed datastructure.Coordinate) {
	s.seed = seed
	s.frontier.Reset()
	s.frontier.Enqueue(seed)
	s.active = true
}

// SourceRegistry ordered set of sources, indexed by id.
type SourceRegistry struct {
	n       int
	sources []*Source
}

// NewSourceRegistry validates the configuration and builds one source per spec, ids in spec order.
// every configuration error is reported here, before any pass can run.
func NewSourceRegistry(n int, specs []SourceSpec) (*SourceRegistry, error) {
	if n <= 0 {
		return nil, util.WrapErrorf(ErrInvalidGridSize, util.ErrBadParamInput, "invalid grid size %d", n)
	}
	if len(specs) == 0 {
		return nil, util.WrapErrorf(ErrNoSources, util.ErrBadParamInput, "no sources configured")
	}

	sources := make([]*Source, len(specs))
	for i, spec := range specs {
		if !util.IsFinitePositive(spec.Weight) {
			return nil, util.WrapErrorf(ErrInvalidWeight, util.ErrBadParamInput,
				"source %d has weight %v", i, spec.Weight)
		}
		if spec.Row < 0 || spec.Row >= n || spec.Col < 0 || spec.Col >= n {
			return nil, util.WrapErrorf(ErrSeedOutOfBounds, util.ErrBadParamInput,
				"source %d seed (%d,%d) outside %dx%d grid", i, spec.Row, spec.Col, n, n)
		}

		seed := datastructure.NewCoordinate(spec.Row, spec.Col)
		sources[i] = &Source{
			id:       datastructure.Index(i),
			weight:   spec.Weight,
			seed:     seed,
			frontier: datastructure.NewQueueWith(seed),
			active:   true,
		}
	}

	return &SourceRegistry{n: n, sources: sources}, nil
}

func (sr *SourceRegistry) GridSize() int {
	return sr.n
}

func (sr *SourceRegistry) NumberOfSources() int {
	return len(sr.sources)
}

func (sr *SourceRegistry) GetSource(id datastructure.Index) *Source {
	return sr.sources[id]
}

// ForSources calls handle for every source in id order.
func (sr *SourceRegistry) ForSources(handle func(s *Source)) {
	for _, s := range sr.sources {
		handle(s)
	}
}

// Seeds current seed of every source, indexed by id.
func (sr *SourceRegistry) Seeds() []datastructure.Coordinate {
	seeds := make([]datastructure.Coordinate, len(sr.sources))
	for i, s := range sr.sources {
		seeds[i] = s.seed
	}
	return seeds
}

// Costs current cumulative cost of every source, indexed by id.
func (sr *SourceRegistry) Costs() []float64 {
	costs := make([]float64, len(sr.sources))
	for i, s := range sr.sources {
		costs[i] = s.cost
	}
	return costs
}
