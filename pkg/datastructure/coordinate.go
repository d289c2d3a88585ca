package datastructure

import (
	"encoding/json"
	"fmt"
)

type Index uint32

// axis-aligned neighbour offsets in expansion order: up, down, left, right.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Coordinate is a (row, col) cell position. It may lie outside the grid; callers bounds-check.
type Coordinate struct {
	row int
	col int
}

func NewCoordinate(row, col int) Coordinate {
	return Coordinate{row: row, col: col}
}

func (c Coordinate) GetRow() int {
	return c.row
}

func (c Coordinate) GetCol() int {
	return c.col
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.row, c.col)
}

// ManhattanDistance number of unit grid steps between c and other.
func (c Coordinate) ManhattanDistance(other Coordinate) int {
	return abs(c.row-other.row) + abs(c.col-other.col)
}

// ForNeighbors calls handle for each of the four axis-aligned neighbours of c that lie inside an n×n grid.
func (c Coordinate) ForNeighbors(n int, handle func(nb Coordinate)) {
	for _, d := range neighborOffsets {
		nr, nc := c.row+d[0], c.col+d[1]
		if nr >= 0 && nr < n && nc >= 0 && nc < n {
			handle(Coordinate{row: nr, col: nc})
		}
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

type coordinateJSON struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(coordinateJSON{Row: c.row, Col: c.col})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var cj coordinateJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	c.row, c.col = cj.Row, cj.Col
	return nil
}
