package seeding

import (
	"testing"

	"github.com/lintang-b-s/Voronoix/pkg"
	"github.com/lintang-b-s/Voronoix/pkg/tessellation"
	"github.com/lintang-b-s/Voronoix/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomIsReproducibleAndInBounds(t *testing.T) {
	a := Random(32, 16, 1, 99)
	b := Random(32, 16, 1, 99)
	assert.Equal(t, a, b)
	require.Len(t, a, 16)
	for _, s := range a {
		assert.GreaterOrEqual(t, s.Row, 0)
		assert.Less(t, s.Row, 32)
		assert.GreaterOrEqual(t, s.Col, 0)
		assert.Less(t, s.Col, 32)
		assert.Equal(t, 1.0, s.Weight)
	}

	_, err := tessellation.NewSourceRegistry(32, a)
	assert.NoError(t, err)
}

func TestLattice(t *testing.T) {
	specs := Lattice(32, 4, 1)
	require.Len(t, specs, 16)
	assert.Equal(t, tessellation.NewSourceSpec(4, 4, 1), specs[0])
	assert.Equal(t, tessellation.NewSourceSpec(4, 12, 1), specs[1])
	assert.Equal(t, tessellation.NewSourceSpec(28, 28, 1), specs[15])
}

func TestGenerate(t *testing.T) {
	testCases := []struct {
		name     string
		layout   pkg.SeedLayout
		n, k     int
		weights  []float64
		wantLen  int
		wantErr  bool
		wantLast tessellation.SourceSpec
	}{
		{
			name:    "random",
			layout:  pkg.RANDOM_LAYOUT,
			n:       10,
			k:       3,
			weights: []float64{2, 3},
			wantLen: 3,
		},
		{
			name:     "lattice truncated to k",
			layout:   pkg.LATTICE_LAYOUT,
			n:        9,
			k:        5,
			wantLen:  5,
			wantLast: tessellation.NewSourceSpec(4, 4, 1),
		},
		{
			name:    "lattice does not fit",
			layout:  pkg.LATTICE_LAYOUT,
			n:       2,
			k:       9,
			wantErr: true,
		},
		{
			name:    "too many weights",
			layout:  pkg.RANDOM_LAYOUT,
			n:       4,
			k:       1,
			weights: []float64{1, 2},
			wantErr: true,
		},
		{
			name:    "unknown layout",
			layout:  pkg.UNKNOWN_LAYOUT,
			n:       4,
			k:       1,
			wantErr: true,
		},
		{
			name:    "no sources",
			layout:  pkg.RANDOM_LAYOUT,
			n:       4,
			k:       0,
			wantErr: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := Generate(tt.layout, tt.n, tt.k, 1, tt.weights)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			require.Len(t, specs, tt.wantLen)
			for i, w := range tt.weights {
				assert.Equal(t, w, specs[i].Weight)
			}
			if tt.wantLast != (tessellation.SourceSpec{}) {
				assert.Equal(t, tt.wantLast, specs[len(specs)-1])
			}
		})
	}
}

func TestLatticeSide(t *testing.T) {
	assert.Equal(t, 1, LatticeSide(1))
	assert.Equal(t, 4, LatticeSide(16))
	assert.Equal(t, 5, LatticeSide(17))
}
