package datastructure

import (
	"errors"
)

var ErrHeapEmpty = errors.New("heap is empty")

// SchedulerKey item of the growth scheduler heap: one live entry per source.
type SchedulerKey struct {
	source Index
}

func NewSchedulerKey(source Index) SchedulerKey {
	return SchedulerKey{source: source}
}

func (sk SchedulerKey) GetSource() Index {
	return sk.source
}

type PriorityQueueNode[T comparable] struct {
	rank    float64
	item    T
	itemPos int
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetRank() float64 {
	return p.rank
}

func (p *PriorityQueueNode[T]) SetRank(rank float64) {
	p.rank = rank
}
func (p *PriorityQueueNode[T]) SetPos(i int) {
	p.itemPos = i
}

func (p *PriorityQueueNode[T]) GetPos() int {
	return p.itemPos
}

func NewPriorityQueueNode[T comparable](rank float64, item T) *PriorityQueueNode[T] {
	return &PriorityQueueNode[T]{rank: rank, item: item}
}

// LessFunc strict weak ordering of heap nodes. the node that compares less is extracted first.
type LessFunc[T comparable] func(a, b *PriorityQueueNode[T]) bool

func rankLess[T comparable](a, b *PriorityQueueNode[T]) bool {
	return a.rank < b.rank
}

// SchedulerLess orders scheduler entries by cumulative cost ascending, ties broken by source id ascending.
// exact float comparison: equal costs must fall through to the id so extraction order is reproducible.
func SchedulerLess(a, b *PriorityQueueNode[SchedulerKey]) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.item.source < b.item.source
}

// MinHeap d-ary heap priorityqueue
type MinHeap[T comparable] struct {
	heap []*PriorityQueueNode[T]
	d    int
	less LessFunc[T]
}

func NewBinaryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](2)
}

func NewdAryHeap[T comparable](d int) *MinHeap[T] {
	return NewdAryHeapWithLess[T](d, rankLess[T])
}

func NewdAryHeapWithLess[T comparable](d int, less LessFunc[T]) *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]*PriorityQueueNode[T], 0),
		d:    d,
		less: less,
	}
}

// NewSchedulerHeap heap used by the growth scheduler, ordered by SchedulerLess.
func NewSchedulerHeap(d int) *MinHeap[SchedulerKey] {
	return NewdAryHeapWithLess[SchedulerKey](d, SchedulerLess)
}

func (h *MinHeap[T]) Preallocate(maxSearchSize int) {
	h.heap = make([]*PriorityQueueNode[T], 0, maxSearchSize)
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

// heapifyUp swap index with its parent while it compares less, O(log_d N).
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(h.heap[index], h.heap[h.parent(index)]) {
		h.Swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown swap index with its smallest child while that child compares less, O(d log_d N).
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		leftMostChild := index*h.d + 1
		if leftMostChild >= len(h.heap) {
			return
		}

		sentinel := leftMostChild + h.d
		if sentinel > len(h.heap) {
			sentinel = len(h.heap)
		}

		smallest := leftMostChild
		for i := leftMostChild + 1; i < sentinel; i++ {
			if h.less(h.heap[i], h.heap[smallest]) {
				smallest = i
			}
		}

		if !h.less(h.heap[smallest], h.heap[index]) {
			return
		}
		h.Swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) Swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]

	h.heap[i].SetPos(i)
	h.heap[j].SetPos(j)
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) Clear() {
	h.heap = h.heap[:0]
}

func (h *MinHeap[T]) GetMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return &PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) Insert(key *PriorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	key.SetPos(index)
	h.heapifyUp(index)
}

// ExtractMin pop the minimum node. O(d log_d N)
func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return &PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	root := h.heap[0]

	h.Swap(0, h.Size()-1)

	h.heap[h.Size()-1] = nil
	h.heap = h.heap[:h.Size()-1]
	root.SetPos(-1)
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}
