package usecases

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
	"github.com/lintang-b-s/Voronoix/pkg/export"
	"github.com/lintang-b-s/Voronoix/pkg/spatialindex"
	"github.com/lintang-b-s/Voronoix/pkg/util"
	"github.com/lintang-b-s/Voronoix/pkg/visualizer"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

var (
	ErrUnknownFormat = errors.New("unknown render format")
	ErrNoPass        = errors.New("no pass has finished yet")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPNG  Format = "png"
	FormatHTML Format = "html"
)

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPNG:
		return "image/png"
	default:
		return "text/html; charset=utf-8"
	}
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatPNG, FormatHTML:
		return f, nil
	}
	return "", util.WrapErrorf(ErrUnknownFormat, util.ErrBadParamInput, "format %q, want one of csv, png, html", s)
}

type renderKey struct {
	pass   int
	format Format
}

// TessellationService runs passes on the engine and serves rendered artifacts of the latest pass.
// renders are cached per (pass, format), a new pass never invalidates older keys.
type TessellationService struct {
	log    *zap.Logger
	engine TessellationEngine
	cache  *lru.Cache[renderKey, []byte]

	indexMu   sync.Mutex
	index     *spatialindex.SeedIndex
	indexPass int
}

func NewTessellationService(log *zap.Logger, engine TessellationEngine, cacheSize int) (*TessellationService, error) {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[renderKey, []byte](cacheSize)
	if err != nil {
		return nil, err
	}
	return &TessellationService{log: log, engine: engine, cache: cache, indexPass: -1}, nil
}

func (ts *TessellationService) RunPasses(ctx context.Context, count int) ([]engine.PassResult, error) {
	res, err := ts.engine.Run(ctx, count)
	if err != nil && util.ErrorCode(err) == nil {
		return res, util.WrapErrorf(err, util.ErrInternalServerError, "run %d passes", count)
	}
	if err != nil {
		return res, err
	}
	return res, nil
}

func (ts *TessellationService) Grid() da.GridSnapshot {
	return ts.engine.Snapshot()
}

func (ts *TessellationService) Sources() []engine.SourceState {
	return ts.engine.Sources()
}

func (ts *TessellationService) History() []engine.PassResult {
	return ts.engine.History()
}

func (ts *TessellationService) OnPass(l engine.PassListener) {
	ts.engine.OnPass(l)
}

// NearestSources the k sources whose current seeds are closest to (row, col) in manhattan distance.
// the seed index is rebuilt once per pass.
func (ts *TessellationService) NearestSources(row, col, k int) ([]spatialindex.SeedDistance, error) {
	set := ts.engine.Seeds()
	if row < 0 || row >= set.GridSize || col < 0 || col >= set.GridSize {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "cell (%d,%d) outside %dx%d grid", row, col,
			set.GridSize, set.GridSize)
	}

	ts.indexMu.Lock()
	defer ts.indexMu.Unlock()
	if ts.index == nil || ts.indexPass != set.Pass {
		ts.index = spatialindex.NewSeedIndex(set.GridSize)
		ts.index.Build(set.Seeds)
		ts.indexPass = set.Pass
	}
	return ts.index.Nearest(row, col, k), nil
}

// Render returns the latest snapshot encoded as format.
func (ts *TessellationService) Render(format Format) ([]byte, error) {
	snap := ts.engine.Snapshot()
	if snap.Pass == 0 {
		return nil, util.WrapErrorf(ErrNoPass, util.ErrNotFound, "render %s", format)
	}
	key := renderKey{pass: snap.Pass, format: format}
	if data, ok := ts.cache.Get(key); ok {
		return data, nil
	}

	var (
		buf bytes.Buffer
		err error
	)
	switch format {
	case FormatCSV:
		err = export.WriteCSV(&buf, snap.Labels)
	case FormatPNG:
		err = visualizer.RenderPNG(&buf, snap, visualizer.DefaultTitle(snap), 8*vg.Inch)
	case FormatHTML:
		err = visualizer.RenderHTML(&buf, snap)
	default:
		return nil, util.WrapErrorf(ErrUnknownFormat, util.ErrBadParamInput, "format %q", format)
	}
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "render pass %d as %s", snap.Pass, format)
	}

	data := buf.Bytes()
	ts.cache.Add(key, data)
	ts.log.Debug("rendered grid", zap.Int("pass", snap.Pass), zap.String("format", string(format)),
		zap.Int("bytes", len(data)))
	return data, nil
}

// Cached reports whether a render for (pass, format) is cached.
func (ts *TessellationService) Cached(pass int, format Format) bool {
	return ts.cache.Contains(renderKey{pass: pass, format: format})
}
