package pkg

// label of a grid cell that no source has claimed yet.
const UNASSIGNED int32 = -1

const (
	DEFAULT_GRID_SIZE   = 32
	DEFAULT_NUM_SOURCES = 16
	DEFAULT_WEIGHT      = 1.0
	DEFAULT_CSV_FILE    = "table.csv"

	// arity of the scheduler heap. k is small (tens of sources), a 4-ary heap keeps it shallow.
	SCHEDULER_HEAP_ARITY = 4

	// rows per band when summing region centroids on the worker pool.
	CENTROID_BAND_ROWS = 64
)

// enum of seed layouts
type SeedLayout uint8

const (
	RANDOM_LAYOUT SeedLayout = iota
	LATTICE_LAYOUT
	UNKNOWN_LAYOUT
)

func GetSeedLayout(layout string) SeedLayout {
	switch layout {
	case "random", "":
		return RANDOM_LAYOUT
	case "lattice":
		return LATTICE_LAYOUT
	default:
		return UNKNOWN_LAYOUT
	}
}

func (l SeedLayout) String() string {
	switch l {
	case RANDOM_LAYOUT:
		return "random"
	case LATTICE_LAYOUT:
		return "lattice"
	default:
		return "unknown"
	}
}
