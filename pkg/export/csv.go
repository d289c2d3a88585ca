// Package export serializes grid snapshots to flat text formats.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lintang-b-s/Voronoix/pkg"
	"github.com/lintang-b-s/Voronoix/pkg/util"
)

// WriteCSV writes one record per grid row in row order. values are written as is, -1 marks
// cells no source reached.
func WriteCSV(w io.Writer, labels [][]int) error {
	cw := csv.NewWriter(w)
	record := make([]string, 0)
	for _, row := range labels {
		record = record[:0]
		for _, l := range row {
			record = append(record, strconv.Itoa(l))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes labels to filename, pkg.DEFAULT_CSV_FILE when filename is empty.
// returns the path written.
func SaveCSV(filename string, labels [][]int) (path string, err error) {
	if filename == "" {
		filename = pkg.DEFAULT_CSV_FILE
	}
	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filename, err)
	}
	defer util.CloseWithError(f, filename, &err)

	w := bufio.NewWriter(f)
	if err := WriteCSV(w, labels); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flush %s: %w", filename, err)
	}
	return filename, nil
}

// ReadCSV parses a grid written by WriteCSV back into rows of labels.
func ReadCSV(r io.Reader) ([][]int, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	labels := make([][]int, len(records))
	for i, rec := range records {
		labels[i] = make([]int, len(rec))
		for j, field := range rec {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", i, j, err)
			}
			labels[i][j] = v
		}
	}
	return labels, nil
}
