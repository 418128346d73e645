package rpn

import (
	"errors"
	"fmt"
	"strings"
)

// Mode distinguishes the two kinds of plotted relation.
type Mode uint8

const (
	// Explicit is a curve y = f(x) with x as the only free variable.
	Explicit Mode = iota

	// Implicit is a relation f(x, y) = 0 with two free variables.
	Implicit
)

// String returns "explicit" or "implicit".
func (m Mode) String() string {
	if m == Implicit {
		return "implicit"
	}
	return "explicit"
}

// Sentinel errors describing malformed programs.
var (
	ErrEmptyProgram   = errors.New("rpn: empty program")
	ErrStackUnderflow = errors.New("rpn: stack underflow")
	ErrStackLeftover  = errors.New("rpn: values left on stack")
	ErrUnknownKind    = errors.New("rpn: unknown operation kind")
)

// StackError reports where a program violated the stack discipline.
// Eval panics with a *StackError; Check returns one.
type StackError struct {
	Err   error
	Pos   int    // index of the offending operation, or the program length
	Op    string // offending operation name, empty at end of program
	Depth int    // stack depth when the violation was detected
}

func (e *StackError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: depth %d at end of program (%d ops)", e.Err, e.Depth, e.Pos)
	}
	return fmt.Sprintf("%v: op %d (%s) at depth %d", e.Err, e.Pos, e.Op, e.Depth)
}

func (e *StackError) Unwrap() error { return e.Err }

// Expression is a postfix program plus its plotting mode.
//
// An Expression is read-only after New and safe to share between goroutines.
// Building an arity-correct program is the builder's job; Eval does not
// recover from a malformed one.
type Expression[V any] struct {
	ops   []Operation[V]
	mode  Mode
	depth int
}

// New returns an Expression over a copy of ops.
func New[V any](ops []Operation[V], mode Mode) *Expression[V] {
	e := &Expression[V]{
		ops:  append([]Operation[V](nil), ops...),
		mode: mode,
	}
	e.depth = maxDepth(e.ops)
	return e
}

// Mode reports whether the expression is an explicit or an implicit curve.
func (e *Expression[V]) Mode() Mode { return e.mode }

// Len returns the number of operations.
func (e *Expression[V]) Len() int { return len(e.ops) }

// MaxDepth returns the stack high-water mark of the program.
func (e *Expression[V]) MaxDepth() int { return e.depth }

// Ops returns a copy of the program.
func (e *Expression[V]) Ops() []Operation[V] {
	return append([]Operation[V](nil), e.ops...)
}

// String lists the program in postfix order, e.g. "x x * 1 -".
func (e *Expression[V]) String() string {
	var sb strings.Builder
	for i, op := range e.ops {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(op.String())
	}
	return sb.String()
}

// Check verifies the stack discipline without evaluating anything.
// A nil result guarantees Eval will not panic on stack errors.
func (e *Expression[V]) Check() error {
	if len(e.ops) == 0 {
		return &StackError{Err: ErrEmptyProgram}
	}
	depth := 0
	for i, op := range e.ops {
		if op.Kind > OpBinary {
			return &StackError{Err: ErrUnknownKind, Pos: i, Op: op.String(), Depth: depth}
		}
		if depth < op.arity() {
			return &StackError{Err: ErrStackUnderflow, Pos: i, Op: op.String(), Depth: depth}
		}
		depth += 1 - op.arity()
	}
	if depth != 1 {
		return &StackError{Err: ErrStackLeftover, Pos: len(e.ops), Depth: depth}
	}
	return nil
}

// Eval runs the program against in and returns the single value left on the
// stack.
//
// Binary operations receive their operands in push order: for the program
// "a b -" the function is called as f(a, b).
//
// Eval panics with a *StackError if the program underflows the stack or
// leaves more than one value behind.
func (e *Expression[V]) Eval(in Input[V]) V {
	stack := make([]V, 0, e.depth)
	for i, op := range e.ops {
		switch op.Kind {
		case OpConstant:
			stack = append(stack, op.Value)
		case OpVariable:
			stack = append(stack, op.Project(in))
		case OpUnary:
			n := len(stack)
			if n < 1 {
				panic(&StackError{Err: ErrStackUnderflow, Pos: i, Op: op.String(), Depth: n})
			}
			stack[n-1] = op.Unary(stack[n-1])
		case OpBinary:
			n := len(stack)
			if n < 2 {
				panic(&StackError{Err: ErrStackUnderflow, Pos: i, Op: op.String(), Depth: n})
			}
			stack[n-2] = op.Binary(stack[n-2], stack[n-1])
			stack = stack[:n-1]
		default:
			panic(&StackError{Err: ErrUnknownKind, Pos: i, Op: op.String(), Depth: len(stack)})
		}
	}
	if len(stack) != 1 {
		err := ErrStackLeftover
		if len(stack) == 0 {
			err = ErrEmptyProgram
		}
		panic(&StackError{Err: err, Pos: len(e.ops), Depth: len(stack)})
	}
	return stack[0]
}

// maxDepth simulates the stack height. Malformed programs still get a usable
// capacity hint; Eval reports the actual violation.
func maxDepth[V any](ops []Operation[V]) int {
	depth, hi := 0, 0
	for _, op := range ops {
		depth += 1 - op.arity()
		if depth < 0 {
			depth = 0
		}
		if depth > hi {
			hi = depth
		}
	}
	return hi
}
