package gplot

// cellQueue is the FIFO of candidate cells used by the implicit generator.
// Popped slots are reclaimed in bulk once the dead prefix dominates.
type cellQueue struct {
	cells []Rectangle
	head  int
}

func newCellQueue(root Rectangle) *cellQueue {
	return &cellQueue{cells: []Rectangle{root}}
}

// Len returns the number of queued cells.
func (q *cellQueue) Len() int { return len(q.cells) - q.head }

// PushBack appends a cell.
func (q *cellQueue) PushBack(r Rectangle) {
	if q.head > 1024 && q.head*2 > len(q.cells) {
		n := copy(q.cells, q.cells[q.head:])
		q.cells = q.cells[:n]
		q.head = 0
	}
	q.cells = append(q.cells, r)
}

// PopFront removes and returns the oldest cell. The queue must not be empty.
func (q *cellQueue) PopFront() Rectangle {
	r := q.cells[q.head]
	q.head++
	return r
}

// Unpop puts back the cell returned by the last PopFront.
func (q *cellQueue) Unpop() {
	q.head--
}

// Peek returns a copy of up to n cells from the front without removing them.
func (q *cellQueue) Peek(n int) []Rectangle {
	n = min(n, q.Len())
	return append([]Rectangle(nil), q.cells[q.head:q.head+n]...)
}

// Slice returns a copy of the queued cells in order.
func (q *cellQueue) Slice() []Rectangle {
	if q.Len() == 0 {
		return nil
	}
	return append([]Rectangle(nil), q.cells[q.head:]...)
}
