package datastructure

import (
	"github.com/lintang-b-s/Voronoix/pkg"
)

// Grid n×n region labels stored row-major. a label is either pkg.UNASSIGNED or a source id.
type Grid struct {
	n      int
	labels []int32
}

func NewGrid(n int) *Grid {
	g := &Grid{
		n:      n,
		labels: make([]int32, n*n),
	}
	g.Reset()
	return g
}

// Reset marks every cell UNASSIGNED. called at the start of every pass.
func (g *Grid) Reset() {
	for i := range g.labels {
		g.labels[i] = pkg.UNASSIGNED
	}
}

func (g *Grid) Size() int {
	return g.n
}

func (g *Grid) NumberOfCells() int {
	return len(g.labels)
}

func (g *Grid) InBounds(c Coordinate) bool {
	return c.row >= 0 && c.row < g.n && c.col >= 0 && c.col < g.n
}

func (g *Grid) GetLabel(c Coordinate) int32 {
	return g.labels[c.row*g.n+c.col]
}

func (g *Grid) GetLabelAt(row, col int) int32 {
	return g.labels[row*g.n+col]
}

func (g *Grid) IsUnassigned(c Coordinate) bool {
	return g.labels[c.row*g.n+c.col] == pkg.UNASSIGNED
}

// Assign labels cell c. a cell that already carries a label is never relabelled within a pass.
func (g *Grid) Assign(c Coordinate, label int32) bool {
	idx := c.row*g.n + c.col
	if g.labels[idx] != pkg.UNASSIGNED {
		return false
	}
	g.labels[idx] = label
	return true
}

// GetRow returns the labels of one grid row. the slice aliases the grid, do not keep it across passes.
func (g *Grid) GetRow(row int) []int32 {
	return g.labels[row*g.n : (row+1)*g.n]
}

func (g *Grid) CountUnassigned() int {
	count := 0
	for _, l := range g.labels {
		if l == pkg.UNASSIGNED {
			count++
		}
	}
	return count
}

// NumLabels number of distinct source labels present in the grid (UNASSIGNED excluded).
func (g *Grid) NumLabels() int {
	seen := make(map[int32]struct{})
	for _, l := range g.labels {
		if l == pkg.UNASSIGNED {
			continue
		}
		seen[l] = struct{}{}
	}
	return len(seen)
}

// Snapshot deep copy of the labels as n rows of ints, UNASSIGNED kept as -1.
func (g *Grid) Snapshot() [][]int {
	rows := make([][]int, g.n)
	for r := 0; r < g.n; r++ {
		rows[r] = make([]int, g.n)
		for c, l := range g.GetRow(r) {
			rows[r][c] = int(l)
		}
	}
	return rows
}
