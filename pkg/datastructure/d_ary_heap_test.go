package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	testCases := []struct {
		name  string
		d     int
		ranks []float64
	}{
		{
			name:  "binary heap",
			d:     2,
			ranks: []float64{5, 3, 8, 1, 9, 2, 7},
		},
		{
			name:  "four-ary heap",
			d:     4,
			ranks: []float64{10, 0.5, 3.25, 3.25, 100, 42, 1, 7, 6, 5},
		},
		{
			name:  "single element",
			d:     4,
			ranks: []float64{1},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewdAryHeap[int](tt.d)
			for i, r := range tt.ranks {
				h.Insert(NewPriorityQueueNode(r, i))
			}
			require.Equal(t, len(tt.ranks), h.Size())

			prev := -1.0
			for !h.IsEmpty() {
				node, err := h.ExtractMin()
				require.NoError(t, err)
				assert.GreaterOrEqual(t, node.GetRank(), prev)
				assert.Equal(t, -1, node.GetPos())
				prev = node.GetRank()
			}
		})
	}
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewBinaryHeap[int]()
	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
	_, err = h.GetMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
}

func TestSchedulerHeapTieBreak(t *testing.T) {
	h := NewSchedulerHeap(4)
	// equal costs must come out by ascending source id, regardless of insertion order.
	for _, id := range []Index{3, 0, 2, 1} {
		h.Insert(NewPriorityQueueNode(1.0, NewSchedulerKey(id)))
	}
	h.Insert(NewPriorityQueueNode(0.5, NewSchedulerKey(7)))
	h.Insert(NewPriorityQueueNode(2.0, NewSchedulerKey(4)))

	want := []Index{7, 0, 1, 2, 3, 4}
	got := make([]Index, 0, len(want))
	for !h.IsEmpty() {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, node.GetItem().GetSource())
	}
	assert.Equal(t, want, got)
}

func TestSchedulerHeapReinsertSameNode(t *testing.T) {
	h := NewSchedulerHeap(2)
	a := NewPriorityQueueNode(0.0, NewSchedulerKey(0))
	b := NewPriorityQueueNode(0.0, NewSchedulerKey(1))
	h.Insert(a)
	h.Insert(b)

	min, err := h.ExtractMin()
	require.NoError(t, err)
	require.Equal(t, Index(0), min.GetItem().GetSource())

	min.SetRank(1.0)
	h.Insert(min)

	next, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, Index(1), next.GetItem().GetSource())
	assert.Equal(t, 2, h.Size())

	h.Clear()
	assert.True(t, h.IsEmpty())
}
