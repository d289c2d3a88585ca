package datastructure

const initialQueueCapacity = 8

// Queue FIFO queue backed by a growable ring buffer.
type Queue[T any] struct {
	buf  []T
	head int
	size int
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		buf: make([]T, initialQueueCapacity),
	}
}

// NewQueueWith queue holding exactly one item.
func NewQueueWith[T any](item T) *Queue[T] {
	q := NewQueue[T]()
	q.Enqueue(item)
	return q
}

func (q *Queue[T]) Enqueue(item T) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = item
	q.size++
}

// Dequeue pops the oldest item. ok is false if the queue is empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	item := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return item, true
}

func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}
	return q.buf[q.head], true
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *Queue[T]) Size() int {
	return q.size
}

// Reset drops every item, keeps the buffer.
func (q *Queue[T]) Reset() {
	var zero T
	for i := range q.buf {
		q.buf[i] = zero
	}
	q.head = 0
	q.size = 0
}

func (q *Queue[T]) grow() {
	newBuf := make([]T, 2*len(q.buf))
	for i := 0; i < q.size; i++ {
		newBuf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = newBuf
	q.head = 0
}
