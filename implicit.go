package gplot

import (
	"log/slog"

	"github.com/gogpu/gplot/internal/parallel"
	"github.com/gogpu/gplot/interval"
	"github.com/gogpu/gplot/rpn"
)

// cellMayContainZero reports whether f(x, y) = 0 is possible inside r.
// A false result is definitive; true only means the range admits zero.
func cellMayContainZero(e *rpn.Expression[interval.Set], r Rectangle) bool {
	return EvalImplicit(e,
		interval.New(r.XStart, r.XEnd),
		interval.New(r.YStart, r.YEnd),
	).ContainsZero()
}

// Generate2DImplicit covers the zero set of f(x, y) inside viewport with
// cells found by breadth-first quadtree subdivision.
//
// The queue starts with the whole viewport; the root itself is not range
// tested. Each popped cell is split into four quadrants and only quadrants
// whose range may contain zero are queued. The search stops as soon as a
// popped cell is narrower or shorter than viewport width / resolution, or the
// queue holds more than the cell budget (see [DefaultMaxCells] and
// [WithMaxCells]). The stopping cell is kept, and the queue is returned in
// order, so a truncated search mixes fine cells with coarser ones that were
// never subdivided. Discarded quadrants are guaranteed root-free; returned
// cells are not guaranteed to contain a root.
//
// With [WithWorkers] the quadrants of upcoming cells are range-evaluated
// speculatively in parallel and the queue is replayed serially, so the
// output matches the serial search exactly.
//
// The viewport must have positive width and height. A non-positive
// resolution yields nil.
func Generate2DImplicit(e *rpn.Expression[interval.Set], viewport Rectangle, resolution int, opts ...Option) []Rectangle {
	if resolution <= 0 {
		return nil
	}
	o := newOptions(resolution, opts)
	s := &quadSearch{
		expr:     e,
		minCell:  viewport.Width() / float64(resolution),
		maxCells: o.maxCells,
		queue:    newCellQueue(viewport),
	}

	if o.workers > 1 {
		pool := parallel.NewWorkerPool(o.workers)
		s.runParallel(pool, o.workers*16)
		pool.Close()
	} else {
		s.run()
	}

	cells := s.queue.Slice()
	log := Logger()
	if s.truncated {
		log.Warn("gplot: implicit search truncated by cell budget",
			slog.Int("max_cells", s.maxCells),
			slog.Int("cells", len(cells)))
	}
	log.Debug("gplot: implicit plot generated",
		slog.Int("cells", len(cells)),
		slog.Int("subdivided", s.subdivided),
		slog.Int("evaluations", s.evaluations),
		slog.Float64("min_cell", s.minCell),
		slog.Int("workers", o.workers))
	return cells
}

// quadSearch is the state of one implicit generator call.
type quadSearch struct {
	expr     *rpn.Expression[interval.Set]
	minCell  float64
	maxCells int
	queue    *cellQueue

	truncated   bool
	subdivided  int
	evaluations int
}

// tooSmall reports whether r is below the minimum cell size.
func (s *quadSearch) tooSmall(r Rectangle) bool {
	return r.Width() < s.minCell || r.Height() < s.minCell
}

// pop removes the next cell and reports whether the search must stop there.
// A stopping cell is put back at the front of the queue.
func (s *quadSearch) pop() (Rectangle, bool) {
	cell := s.queue.PopFront()
	if s.tooSmall(cell) {
		s.queue.Unpop()
		return cell, false
	}
	if s.queue.Len() > s.maxCells {
		s.queue.Unpop()
		s.truncated = true
		return cell, false
	}
	return cell, true
}

// push queues the quadrants flagged in keep, preserving quadrant order.
func (s *quadSearch) push(quads [4]Rectangle, keep [4]bool) {
	s.subdivided++
	for i, q := range quads {
		if keep[i] {
			s.queue.PushBack(q)
		}
	}
}

func (s *quadSearch) test(quads [4]Rectangle) [4]bool {
	var keep [4]bool
	for i, q := range quads {
		keep[i] = cellMayContainZero(s.expr, q)
	}
	return keep
}

// run is the serial breadth-first search.
func (s *quadSearch) run() {
	for s.queue.Len() > 0 {
		cell, ok := s.pop()
		if !ok {
			return
		}
		quads := cell.Quadrants()
		s.evaluations += len(quads)
		s.push(quads, s.test(quads))
	}
}

// runParallel evaluates the quadrants of the next batch cells on the pool,
// then replays the serial loop over them. The cells at the head of the queue
// are exactly the next ones run would pop, because pushes go to the back.
func (s *quadSearch) runParallel(pool *parallel.WorkerPool, batch int) {
	for s.queue.Len() > 0 {
		head := s.queue.Peek(batch)
		results := make([][4]bool, len(head))
		pool.For(len(head), func(i int) {
			if !s.tooSmall(head[i]) {
				results[i] = s.test(head[i].Quadrants())
			}
		})

		for i := range head {
			cell, ok := s.pop()
			if !ok {
				return
			}
			s.evaluations += 4
			s.push(cell.Quadrants(), results[i])
		}
	}
}
