package tessellation

import (
	"github.com/lintang-b-s/Voronoix/pkg"
	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/util"
	"go.uber.org/zap"
)

// PassStats counters of one growth pass.
type PassStats struct {
	// Labeled successful dequeues, equal to the number of cells labelled in the pass.
	Labeled int `json:"labeled"`
	// Discarded dequeued coordinates that were already claimed.
	Discarded int `json:"discarded"`
	// Steps heap extractions, including the final one that drops each exhausted source.
	Steps int `json:"steps"`
	// CellsPerSource region size indexed by source id.
	CellsPerSource []int `json:"cells_per_source"`
}

// GrowthScheduler runs one tessellation pass over a grid it borrows from the caller.
type GrowthScheduler struct {
	pq     *da.MinHeap[da.SchedulerKey]
	nodes  []*da.PriorityQueueNode[da.SchedulerKey]
	logger *zap.Logger
}

func NewGrowthScheduler(logger *zap.Logger) *GrowthScheduler {
	return &GrowthScheduler{
		pq:     da.NewSchedulerHeap(pkg.SCHEDULER_HEAP_ARITY),
		logger: logger,
	}
}

// Grow labels grid from the sources of registry until every frontier is drained.
//
// grid must be fully UNASSIGNED and every frontier must hold exactly its seed. each
// iteration extracts the source with minimum (cost, id); an empty frontier drops the
// source for the rest of the pass, otherwise one coordinate is dequeued. an unclaimed
// coordinate is labelled, charged 1/weight and its in-bounds neighbours are enqueued;
// a claimed one is discarded. the source is then re-inserted with its current cost.
//
// each labelled cell enqueues at most 4 neighbours, so a pass dequeues at most 4n²+k
// coordinates and terminates.
func (gs *GrowthScheduler) Grow(grid *da.Grid, registry *SourceRegistry) PassStats {
	util.AssertPanic(grid.Size() == registry.GridSize(), "tessellation: grid size does not match source registry")

	n := grid.Size()
	k := registry.NumberOfSources()
	stats := PassStats{CellsPerSource: make([]int, k)}

	gs.initQueue(registry)

	for !gs.pq.IsEmpty() {
		node, _ := gs.pq.ExtractMin()
		s := registry.GetSource(node.GetItem().GetSource())
		stats.Steps++

		c, ok := s.frontier.Dequeue()
		if !ok {
			// exhausted all reachable territory for this pass.
			s.active = false
			continue
		}

		if grid.InBounds(c) && grid.Assign(c, int32(s.id)) {
			s.accept()
			stats.Labeled++
			stats.CellsPerSource[s.id]++

			c.ForNeighbors(n, func(nb da.Coordinate) {
				s.frontier.Enqueue(nb)
			})
		} else {
			stats.Discarded++
		}

		node.SetRank(s.cost)
		gs.pq.Insert(node)
	}

	gs.logger.Debug("growth pass finished", zap.Int("labeled", stats.Labeled),
		zap.Int("discarded", stats.Discarded), zap.Int("steps", stats.Steps))
	return stats
}

// initQueue one heap entry per source keyed by its carried-over cost. nodes are reused across passes.
func (gs *GrowthScheduler) initQueue(registry *SourceRegistry) {
	k := registry.NumberOfSources()
	gs.pq.Clear()
	if len(gs.nodes) != k {
		gs.nodes = make([]*da.PriorityQueueNode[da.SchedulerKey], k)
		for i := 0; i < k; i++ {
			gs.nodes[i] = da.NewPriorityQueueNode(0, da.NewSchedulerKey(da.Index(i)))
		}
		gs.pq.Preallocate(k)
	}

	registry.ForSources(func(s *Source) {
		s.active = true
		node := gs.nodes[s.id]
		node.SetRank(s.cost)
		gs.pq.Insert(node)
	})
}
