package controllers

import (
	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
)

type passesRequest struct {
	Count int `json:"count" validate:"required,min=1,max=1000"`
}

type nearestRequest struct {
	Row int `validate:"min=0"`
	Col int `validate:"min=0"`
	K   int `validate:"min=1,max=64"`
}

type passResponse struct {
	Pass            int     `json:"pass"`
	Labeled         int     `json:"labeled"`
	Discarded       int     `json:"discarded"`
	Steps           int     `json:"steps"`
	Unassigned      int     `json:"unassigned"`
	CellsPerSource  []int   `json:"cells_per_source"`
	MaxDisplacement int     `json:"max_displacement"`
	MeanRegionSize  float64 `json:"mean_region_size"`
	StdDevRegion    float64 `json:"stddev_region_size"`
	DurationMs      float64 `json:"duration_ms"`
}

func NewPassResponse(res engine.PassResult) passResponse {
	return passResponse{
		Pass:            res.Pass,
		Labeled:         res.Stats.Labeled,
		Discarded:       res.Stats.Discarded,
		Steps:           res.Stats.Steps,
		Unassigned:      res.Unassigned,
		CellsPerSource:  res.Stats.CellsPerSource,
		MaxDisplacement: res.MaxDisplacement,
		MeanRegionSize:  res.MeanRegionSize,
		StdDevRegion:    res.StdDevRegionSize,
		DurationMs:      float64(res.Duration.Microseconds()) / 1000,
	}
}

func NewPassResponses(results []engine.PassResult) []passResponse {
	resp := make([]passResponse, 0, len(results))
	for _, res := range results {
		resp = append(resp, NewPassResponse(res))
	}
	return resp
}

type sourceResponse struct {
	ID     int     `json:"id"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Weight float64 `json:"weight"`
	Cost   float64 `json:"cost"`
}

func NewSourceResponses(states []engine.SourceState) []sourceResponse {
	resp := make([]sourceResponse, 0, len(states))
	for _, s := range states {
		resp = append(resp, sourceResponse{
			ID:     int(s.ID),
			Row:    s.Seed.GetRow(),
			Col:    s.Seed.GetCol(),
			Weight: s.Weight,
			Cost:   s.Cost,
		})
	}
	return resp
}

type gridResponse struct {
	Pass       int     `json:"pass"`
	Size       int     `json:"size"`
	NumSources int     `json:"num_sources"`
	NumLabels  int     `json:"num_labels"`
	Labels     [][]int `json:"labels"`
}

func NewGridResponse(snap da.GridSnapshot) gridResponse {
	return gridResponse(snap)
}
