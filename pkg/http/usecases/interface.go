package usecases

import (
	"context"

	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
)

type TessellationEngine interface {
	Run(ctx context.Context, passes int) ([]engine.PassResult, error)
	Pass() int
	Snapshot() da.GridSnapshot
	Sources() []engine.SourceState
	Seeds() engine.SeedSet
	History() []engine.PassResult
	OnPass(l engine.PassListener)
}
