// Package rpn implements the postfix stack machine used to evaluate plotted
// formulas.
//
// An [Expression] is a program of [Operation] values in reverse Polish order.
// The interpreter is generic over the value type, so the same program shape is
// evaluated over plain float64 samples (see [Float]) and over conservative
// ranges (see package interval).
//
// Programs are built by a compiler (see package compile) or by hand:
//
//	// x*x - 1
//	e := rpn.New([]rpn.Operation[float64]{
//	    rpn.X[float64](),
//	    rpn.X[float64](),
//	    rpn.Binary("*", rpn.Float{}.Mul),
//	    rpn.Constant(1.0),
//	    rpn.Binary("-", rpn.Float{}.Sub),
//	}, rpn.Explicit)
//	v := e.Eval(rpn.Input[float64]{X: 3}) // 8
package rpn

import "fmt"

// OpKind tags the variant held by an Operation.
type OpKind uint8

const (
	// OpConstant pushes an immediate value.
	OpConstant OpKind = iota

	// OpVariable pushes a projection of the input point.
	OpVariable

	// OpUnary pops one operand and pushes f(operand).
	OpUnary

	// OpBinary pops two operands and pushes f(first, second).
	OpBinary
)

// String returns the variant name.
func (k OpKind) String() string {
	switch k {
	case OpConstant:
		return "constant"
	case OpVariable:
		return "variable"
	case OpUnary:
		return "unary"
	case OpBinary:
		return "binary"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// Input is the point a program is evaluated at.
// Explicit curves only read X; Y stays at its zero value.
type Input[V any] struct {
	X, Y V
}

// Operation is one instruction of a postfix program.
//
// It is a closed sum type: Kind selects which payload field is meaningful.
// Operations are immutable once constructed; use the constructor functions
// rather than filling the struct directly.
type Operation[V any] struct {
	Kind OpKind

	// Name is used for listings and error messages only.
	Name string

	Value   V
	Project func(Input[V]) V
	Unary   func(V) V
	Binary  func(V, V) V
}

// Constant returns an operation pushing v.
func Constant[V any](v V) Operation[V] {
	return Operation[V]{Kind: OpConstant, Name: fmt.Sprint(v), Value: v}
}

// Variable returns an operation pushing project(input).
func Variable[V any](name string, project func(Input[V]) V) Operation[V] {
	return Operation[V]{Kind: OpVariable, Name: name, Project: project}
}

// X returns the projection onto the first coordinate.
func X[V any]() Operation[V] {
	return Variable("x", func(in Input[V]) V { return in.X })
}

// Y returns the projection onto the second coordinate.
func Y[V any]() Operation[V] {
	return Variable("y", func(in Input[V]) V { return in.Y })
}

// Unary returns an operation applying fn to the top of the stack.
func Unary[V any](name string, fn func(V) V) Operation[V] {
	return Operation[V]{Kind: OpUnary, Name: name, Unary: fn}
}

// Binary returns an operation popping two operands and pushing
// fn(first, second), where second is the most recently pushed value.
func Binary[V any](name string, fn func(V, V) V) Operation[V] {
	return Operation[V]{Kind: OpBinary, Name: name, Binary: fn}
}

// arity returns how many values the operation pops.
func (op Operation[V]) arity() int {
	switch op.Kind {
	case OpUnary:
		return 1
	case OpBinary:
		return 2
	default:
		return 0
	}
}

// String returns the operation's display name.
func (op Operation[V]) String() string {
	if op.Name != "" {
		return op.Name
	}
	return op.Kind.String()
}
