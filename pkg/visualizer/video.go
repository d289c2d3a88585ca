package visualizer

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"sync"

	"github.com/icza/mjpeg"
	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
)

const (
	DEFAULT_FRAME_RATE   = 2
	DEFAULT_CELL_PIXELS  = 8
	DEFAULT_JPEG_QUALITY = 90
)

// FrameRecorder appends one JPEG frame per pass to an MJPEG AVI file.
// every frame must come from a grid of the size the recorder was opened with.
type FrameRecorder struct {
	mu       sync.Mutex
	aw       mjpeg.AviWriter
	gridSize int
	cellSize int
	frames   int
	buf      bytes.Buffer
	jpegOpt  *jpeg.Options
	closed   bool
}

func NewFrameRecorder(path string, gridSize, cellSize, fps int) (*FrameRecorder, error) {
	if gridSize <= 0 {
		return nil, fmt.Errorf("frame recorder: grid size must be positive, got %d", gridSize)
	}
	if cellSize <= 0 {
		cellSize = DEFAULT_CELL_PIXELS
	}
	if fps <= 0 {
		fps = DEFAULT_FRAME_RATE
	}
	side := int32(gridSize * cellSize)
	aw, err := mjpeg.New(path, side, side, int32(fps))
	if err != nil {
		return nil, fmt.Errorf("frame recorder: create %s: %w", path, err)
	}
	return &FrameRecorder{
		aw:       aw,
		gridSize: gridSize,
		cellSize: cellSize,
		jpegOpt:  &jpeg.Options{Quality: DEFAULT_JPEG_QUALITY},
	}, nil
}

// AddFrame encodes snap and appends it to the video.
func (fr *FrameRecorder) AddFrame(snap da.GridSnapshot) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if fr.closed {
		return fmt.Errorf("frame recorder: closed")
	}
	if snap.Size != fr.gridSize {
		return fmt.Errorf("frame recorder: grid size %d, recorder opened for %d", snap.Size, fr.gridSize)
	}

	fr.buf.Reset()
	if err := jpeg.Encode(&fr.buf, RenderImage(snap, fr.cellSize), fr.jpegOpt); err != nil {
		return fmt.Errorf("frame recorder: encode pass %d: %w", snap.Pass, err)
	}
	if err := fr.aw.AddFrame(fr.buf.Bytes()); err != nil {
		return fmt.Errorf("frame recorder: add pass %d: %w", snap.Pass, err)
	}
	fr.frames++
	return nil
}

func (fr *FrameRecorder) Frames() int {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.frames
}

// Close finalizes the AVI index. safe to call twice.
func (fr *FrameRecorder) Close() error {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if fr.closed {
		return nil
	}
	fr.closed = true
	return fr.aw.Close()
}
