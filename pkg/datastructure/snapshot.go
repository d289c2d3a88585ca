package datastructure

// GridSnapshot read-only copy of a finished pass handed to exporters and visualizers.
// Labels[r][c] is a source id or -1 for cells no source reached.
type GridSnapshot struct {
	Pass       int     `json:"pass"`
	Size       int     `json:"size"`
	NumSources int     `json:"num_sources"`
	NumLabels  int     `json:"num_labels"`
	Labels     [][]int `json:"labels"`
}

func (g *Grid) TakeSnapshot(pass, numSources int) GridSnapshot {
	return GridSnapshot{
		Pass:       pass,
		Size:       g.n,
		NumSources: numSources,
		NumLabels:  g.NumLabels(),
		Labels:     g.Snapshot(),
	}
}

// LabelRange smallest and largest value in the snapshot, UNASSIGNED included. used for color normalisation.
func (s GridSnapshot) LabelRange() (int, int) {
	if len(s.Labels) == 0 {
		return 0, 0
	}
	lo, hi := s.Labels[0][0], s.Labels[0][0]
	for _, row := range s.Labels {
		for _, l := range row {
			if l < lo {
				lo = l
			}
			if l > hi {
				hi = l
			}
		}
	}
	return lo, hi
}
