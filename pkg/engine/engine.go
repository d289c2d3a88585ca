package engine

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/tessellation"
	"github.com/lintang-b-s/Voronoix/pkg/util"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

type Config struct {
	GridSize        int                       `json:"grid_size" validate:"max=8192"`
	Sources         []tessellation.SourceSpec `json:"sources"`
	CentroidWorkers int                       `json:"centroid_workers" validate:"min=0,max=256"`
}

// PassResult summary of one reset → grow → recenter cycle.
type PassResult struct {
	Pass       int                          `json:"pass"`
	Stats      tessellation.PassStats       `json:"stats"`
	Regions    []tessellation.RegionSummary `json:"regions"`
	Costs      []float64                    `json:"costs"`
	Unassigned int                          `json:"unassigned"`
	// MaxDisplacement largest manhattan distance a seed moved during recentering.
	MaxDisplacement  int           `json:"max_displacement"`
	MeanRegionSize   float64       `json:"mean_region_size"`
	StdDevRegionSize float64       `json:"stddev_region_size"`
	Duration         time.Duration `json:"duration"`
}

type SourceState struct {
	ID     da.Index      `json:"id"`
	Weight float64       `json:"weight"`
	Seed   da.Coordinate `json:"seed"`
	Cost   float64       `json:"cost"`
}

// SeedSet seeds of every source, indexed by id, together with the pass they belong to.
type SeedSet struct {
	Pass     int
	GridSize int
	Seeds    []da.Coordinate
}

// PassListener is called after every completed pass, outside the engine lock.
type PassListener func(res PassResult)

// Engine relaxation driver. owns the grid and the source registry for the whole run and
// serialises passes, so snapshots never observe a pass in progress.
type Engine struct {
	mu sync.Mutex

	runID      uuid.UUID
	grid       *da.Grid
	registry   *tessellation.SourceRegistry
	scheduler  *tessellation.GrowthScheduler
	recenterer *tessellation.CentroidRecenterer

	pass      int
	history   []PassResult
	listeners []PassListener

	logger *zap.Logger
}

// NewEngine validates cfg and prepares an engine that has not run any pass yet.
// configuration errors are returned here and never surface mid-pass.
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	registry, err := tessellation.NewSourceRegistry(cfg.GridSize, cfg.Sources)
	if err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid engine config")
	}

	runID := uuid.New()
	logger = logger.With(zap.String("runID", runID.String()))
	logger.Info("tessellation engine ready", zap.Int("gridSize", cfg.GridSize),
		zap.Int("numSources", len(cfg.Sources)))

	return &Engine{
		runID:      runID,
		grid:       da.NewGrid(cfg.GridSize),
		registry:   registry,
		scheduler:  tessellation.NewGrowthScheduler(logger),
		recenterer: tessellation.NewCentroidRecenterer(cfg.CentroidWorkers),
		history:    make([]PassResult, 0),
		logger:     logger,
	}, nil
}

func (e *Engine) RunID() uuid.UUID {
	return e.runID
}

// OnPass registers a listener for completed passes.
func (e *Engine) OnPass(l PassListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// AdvancePass resets the grid, grows every region and recenters the sources for the next pass.
func (e *Engine) AdvancePass() PassResult {
	e.mu.Lock()
	res := e.advancePass()
	listeners := e.listeners
	e.mu.Unlock()

	for _, l := range listeners {
		l(res)
	}
	return res
}

func (e *Engine) advancePass() PassResult {
	start := time.Now()

	e.grid.Reset()
	stats := e.scheduler.Grow(e.grid, e.registry)
	regions := e.recenterer.Recenter(e.grid, e.registry)
	e.pass++

	sizes := make([]float64, len(stats.CellsPerSource))
	for i, cells := range stats.CellsPerSource {
		sizes[i] = float64(cells)
	}
	mean, std := stat.MeanStdDev(sizes, nil)
	if len(sizes) < 2 {
		std = 0
	}

	maxDisplacement := 0
	for _, r := range regions {
		maxDisplacement = util.MaxInt(maxDisplacement, r.Displacement())
	}

	res := PassResult{
		Pass:             e.pass,
		Stats:            stats,
		Regions:          regions,
		Costs:            e.registry.Costs(),
		Unassigned:       e.grid.NumberOfCells() - stats.Labeled,
		MaxDisplacement:  maxDisplacement,
		MeanRegionSize:   mean,
		StdDevRegionSize: std,
		Duration:         time.Since(start),
	}
	e.history = append(e.history, res)

	e.logger.Info("pass completed", zap.Int("pass", res.Pass), zap.Int("labeled", stats.Labeled),
		zap.Int("discarded", stats.Discarded), zap.Int("unassigned", res.Unassigned),
		zap.Int("maxDisplacement", maxDisplacement), zap.Duration("duration", res.Duration))
	return res
}

// Run advances up to passes passes. ctx is only checked between passes, a started pass always completes.
func (e *Engine) Run(ctx context.Context, passes int) ([]PassResult, error) {
	if passes < 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid number of passes %d", passes)
	}
	results := make([]PassResult, 0, passes)
	for i := 0; i < passes; i++ {
		if util.StopConcurrentOperation(ctx) {
			return results, ctx.Err()
		}
		results = append(results, e.AdvancePass())
	}
	return results, nil
}

// Pass number of completed passes.
func (e *Engine) Pass() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pass
}

// Snapshot copy of the grid after the last completed pass. before the first pass every cell is UNASSIGNED.
func (e *Engine) Snapshot() da.GridSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.TakeSnapshot(e.pass, e.registry.NumberOfSources())
}

// Sources state of every source. seeds are the ones the next pass will start from.
func (e *Engine) Sources() []SourceState {
	e.mu.Lock()
	defer e.mu.Unlock()

	states := make([]SourceState, 0, e.registry.NumberOfSources())
	e.registry.ForSources(func(s *tessellation.Source) {
		states = append(states, SourceState{
			ID:     s.GetID(),
			Weight: s.GetWeight(),
			Seed:   s.GetSeed(),
			Cost:   s.GetCost(),
		})
	})
	return states
}

// Seeds pass number and seeds read under one lock, so the two always agree.
func (e *Engine) Seeds() SeedSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return SeedSet{
		Pass:     e.pass,
		GridSize: e.registry.GridSize(),
		Seeds:    e.registry.Seeds(),
	}
}

func (e *Engine) History() []PassResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	history := make([]PassResult, len(e.history))
	copy(history, e.history)
	return history
}

// LastPass result of the most recent pass, ok is false before the first pass.
func (e *Engine) LastPass() (PassResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.history) == 0 {
		return PassResult{}, false
	}
	return e.history[len(e.history)-1], true
}
