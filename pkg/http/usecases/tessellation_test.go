package usecases

import (
	"bytes"
	"context"
	"testing"

	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
	"github.com/lintang-b-s/Voronoix/pkg/tessellation"
	"github.com/lintang-b-s/Voronoix/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) *TessellationService {
	t.Helper()
	eng, err := engine.NewEngine(engine.Config{
		GridSize: 4,
		Sources: []tessellation.SourceSpec{
			tessellation.NewSourceSpec(0, 0, 1),
			tessellation.NewSourceSpec(3, 3, 1),
		},
	}, zap.NewNop())
	require.NoError(t, err)
	ts, err := NewTessellationService(zap.NewNop(), eng, 4)
	require.NoError(t, err)
	return ts
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	_, err = ParseFormat("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
}

func TestRenderBeforeFirstPass(t *testing.T) {
	ts := newService(t)
	_, err := ts.Render(FormatCSV)
	assert.ErrorIs(t, err, ErrNoPass)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
}

func TestRenderCachesPerPass(t *testing.T) {
	ts := newService(t)
	_, err := ts.RunPasses(context.Background(), 1)
	require.NoError(t, err)

	assert.False(t, ts.Cached(1, FormatCSV))
	first, err := ts.Render(FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "0,0,0,1\n0,0,1,1\n0,0,1,1\n0,1,1,1\n", string(first))
	assert.True(t, ts.Cached(1, FormatCSV))

	again, err := ts.Render(FormatCSV)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, again))

	_, err = ts.RunPasses(context.Background(), 1)
	require.NoError(t, err)
	_, err = ts.Render(FormatCSV)
	require.NoError(t, err)
	assert.True(t, ts.Cached(2, FormatCSV))
	assert.True(t, ts.Cached(1, FormatCSV))
}

func TestRunPassesKeepsErrorCode(t *testing.T) {
	ts := newService(t)
	_, err := ts.RunPasses(context.Background(), -1)
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ts.RunPasses(ctx, 2)
	require.Error(t, err)
	assert.Equal(t, util.ErrInternalServerError, util.ErrorCode(err))
	assert.ErrorIs(t, err, context.Canceled)
}

// seedsOnlyEngine serves a scripted sequence of seed sets. any other engine call panics on the
// nil embedded interface.
type seedsOnlyEngine struct {
	TessellationEngine
	sets  []engine.SeedSet
	calls int
}

func (e *seedsOnlyEngine) Seeds() engine.SeedSet {
	set := e.sets[e.calls]
	if e.calls < len(e.sets)-1 {
		e.calls++
	}
	return set
}

func TestNearestSourcesFollowsSeedSet(t *testing.T) {
	eng := &seedsOnlyEngine{sets: []engine.SeedSet{
		{Pass: 0, GridSize: 8, Seeds: []da.Coordinate{da.NewCoordinate(0, 0), da.NewCoordinate(7, 7)}},
		{Pass: 1, GridSize: 8, Seeds: []da.Coordinate{da.NewCoordinate(6, 6), da.NewCoordinate(7, 7)}},
	}}
	ts, err := NewTessellationService(zap.NewNop(), eng, 1)
	require.NoError(t, err)

	tests := []struct {
		name     string
		wantID   da.Index
		wantDist int
	}{
		{name: "pass 0 seeds", wantID: 0, wantDist: 2},
		{name: "index rebuilt for pass 1", wantID: 0, wantDist: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ts.NearestSources(1, 1, 1)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantID, got[0].Source)
			assert.Equal(t, tt.wantDist, got[0].Distance)
		})
	}

	_, err = ts.NearestSources(8, 0, 1)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
}

func TestNearestSourcesAfterPasses(t *testing.T) {
	ts := newService(t)
	_, err := ts.RunPasses(context.Background(), 2)
	require.NoError(t, err)

	got, err := ts.NearestSources(0, 0, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	sources := ts.Sources()
	for _, d := range got {
		assert.Equal(t, sources[d.Source].Seed, d.Seed)
		assert.Equal(t, d.Seed.ManhattanDistance(da.NewCoordinate(0, 0)), d.Distance)
	}
	assert.LessOrEqual(t, got[0].Distance, got[1].Distance)
}
