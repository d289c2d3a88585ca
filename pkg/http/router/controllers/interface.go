package controllers

import (
	"context"

	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
	"github.com/lintang-b-s/Voronoix/pkg/http/usecases"
	"github.com/lintang-b-s/Voronoix/pkg/spatialindex"
)

type TessellationService interface {
	RunPasses(ctx context.Context, count int) ([]engine.PassResult, error)
	Grid() da.GridSnapshot
	Sources() []engine.SourceState
	History() []engine.PassResult
	Render(format usecases.Format) ([]byte, error)
	NearestSources(row, col, k int) ([]spatialindex.SeedDistance, error)
}
