// Package compile turns formula text into postfix programs for package rpn.
//
// Formulas use the expression grammar of github.com/expr-lang/expr, restricted
// to arithmetic, plus one optional top-level "=":
//
//	x^2 + y^2 = 1        implicit: x^2 + y^2 - (1) = 0
//	sin(x) * x           explicit: y = sin(x) * x
//	y = 1/x              explicit: the left side is exactly y
//
// A formula is parsed once and can then be built for any value type:
//
//	f, err := compile.Parse("x^2 + y^2 = 1")
//	points := compile.Build(f, rpn.Float{})        // *rpn.Expression[float64]
//	ranges := compile.Build(f, interval.Domain{})  // *rpn.Expression[interval.Set]
package compile

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/gogpu/gplot/rpn"
)

// Errors returned by Parse, wrapped with details.
var (
	ErrSyntax            = errors.New("compile: syntax error")
	ErrUnknownIdentifier = errors.New("compile: unknown identifier")
	ErrUnknownFunction   = errors.New("compile: unknown function")
	ErrArity             = errors.New("compile: wrong number of arguments")
	ErrUnsupported       = errors.New("compile: unsupported construct")
)

type nodeKind uint8

const (
	numNode nodeKind = iota
	varNode
	unaryNode
	binaryNode
)

// node is the arithmetic tree a formula is reduced to.
type node struct {
	kind nodeKind
	num  float64
	name string // variable, function or operator name
	args []*node
}

// Formula is a parsed formula, independent of any value type.
type Formula struct {
	src  string
	root *node
	mode rpn.Mode
}

// Mode reports whether the formula is an explicit or implicit curve.
func (f *Formula) Mode() rpn.Mode { return f.mode }

// String returns the source text.
func (f *Formula) String() string { return f.src }

// Postfix returns the program listing, e.g. "x 2 ^ y 2 ^ + 1 -".
func (f *Formula) Postfix() string {
	return Build(f, rpn.Float{}).String()
}

// Parse parses src into a Formula.
//
// The formula is implicit when it contains "=" or mentions y, and explicit
// otherwise. "y = rhs" with no y in rhs is the explicit curve rhs.
// Constant subexpressions are evaluated once, in float64.
func Parse(src string) (*Formula, error) {
	lhs, rhs, hasEq, err := splitRelation(src)
	if err != nil {
		return nil, err
	}

	left, err := parseSide(lhs)
	if err != nil {
		return nil, err
	}
	if !hasEq {
		mode := rpn.Explicit
		if uses(left, "y") {
			mode = rpn.Implicit
		}
		return &Formula{src: src, root: left, mode: mode}, nil
	}

	right, err := parseSide(rhs)
	if err != nil {
		return nil, err
	}
	if left.kind == varNode && left.name == "y" && !uses(right, "y") {
		return &Formula{src: src, root: right, mode: rpn.Explicit}, nil
	}
	root := fold(&node{kind: binaryNode, name: "-", args: []*node{left, right}})
	return &Formula{src: src, root: root, mode: rpn.Implicit}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Formula {
	f, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return f
}

// splitRelation splits src at a single relational "=". Comparison operators
// such as "==" or "<=" are left to the expression parser, which rejects them.
func splitRelation(src string) (lhs, rhs string, ok bool, err error) {
	at := -1
	for i := 0; i < len(src); i++ {
		if src[i] != '=' {
			continue
		}
		if i+1 < len(src) && src[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && strings.IndexByte("=!<>", src[i-1]) >= 0 {
			continue
		}
		if at >= 0 {
			return "", "", false, fmt.Errorf("%w: more than one '=' in %q", ErrSyntax, src)
		}
		at = i
	}
	if at < 0 {
		return src, "", false, nil
	}
	return src[:at], src[at+1:], true, nil
}

func parseSide(src string) (*node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return convert(tree.Node)
}

// convert maps an expr AST onto the arithmetic tree.
func convert(n ast.Node) (*node, error) {
	switch n := n.(type) {
	case *ast.IntegerNode:
		return &node{kind: numNode, num: float64(n.Value)}, nil

	case *ast.FloatNode:
		return &node{kind: numNode, num: n.Value}, nil

	case *ast.IdentifierNode:
		switch n.Value {
		case "x", "y":
			return &node{kind: varNode, name: n.Value}, nil
		case "pi":
			return &node{kind: numNode, num: math.Pi}, nil
		case "e":
			return &node{kind: numNode, num: math.E}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownIdentifier, n.Value)

	case *ast.UnaryNode:
		arg, err := convert(n.Node)
		if err != nil {
			return nil, err
		}
		switch n.Operator {
		case "+":
			return arg, nil
		case "-":
			return fold(&node{kind: unaryNode, name: "neg", args: []*node{arg}}), nil
		}
		return nil, fmt.Errorf("%w: unary operator %q", ErrUnsupported, n.Operator)

	case *ast.BinaryNode:
		op := n.Operator
		switch op {
		case "**":
			op = "^"
		case "+", "-", "*", "/", "^":
		default:
			return nil, fmt.Errorf("%w: operator %q", ErrUnsupported, n.Operator)
		}
		l, err := convert(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := convert(n.Right)
		if err != nil {
			return nil, err
		}
		return fold(&node{kind: binaryNode, name: op, args: []*node{l, r}}), nil

	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return nil, fmt.Errorf("%w: call of %s", ErrUnsupported, n.Callee.String())
		}
		return call(callee.Value, n.Arguments)

	case *ast.BuiltinNode:
		return call(n.Name, n.Arguments)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.String())
}

// functions lists the callable names and their arity.
var functions = map[string]int{
	"sin": 1, "cos": 1, "tan": 1,
	"exp": 1, "log": 1, "ln": 1,
	"sqrt": 1, "abs": 1,
	"min": 2, "max": 2, "pow": 2,
}

func call(name string, params []ast.Node) (*node, error) {
	arity, ok := functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	if len(params) != arity {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, name, arity, len(params))
	}
	args := make([]*node, len(params))
	for i, p := range params {
		a, err := convert(p)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}
	switch name {
	case "ln":
		name = "log"
	case "pow":
		name = "^"
	}
	kind := unaryNode
	if arity == 2 {
		kind = binaryNode
	}
	return fold(&node{kind: kind, name: name, args: args}), nil
}

// fold replaces an operation on constants by its float64 value.
func fold(n *node) *node {
	for _, a := range n.args {
		if a.kind != numNode {
			return n
		}
	}
	var d rpn.Float
	switch n.kind {
	case unaryNode:
		return &node{kind: numNode, num: unaryFunc[float64](d, n.name)(n.args[0].num)}
	case binaryNode:
		return &node{kind: numNode, num: binaryFunc[float64](d, n.name)(n.args[0].num, n.args[1].num)}
	}
	return n
}

// uses reports whether the tree references the variable name.
func uses(n *node, name string) bool {
	if n.kind == varNode {
		return n.name == name
	}
	for _, a := range n.args {
		if uses(a, name) {
			return true
		}
	}
	return false
}

// Build emits the formula as a postfix program over domain d.
// The program always passes rpn.Expression.Check.
func Build[V any](f *Formula, d rpn.Domain[V]) *rpn.Expression[V] {
	return rpn.New(emit(f.root, d, nil), f.mode)
}

// emit appends the post-order traversal of n.
func emit[V any](n *node, d rpn.Domain[V], ops []rpn.Operation[V]) []rpn.Operation[V] {
	switch n.kind {
	case numNode:
		op := rpn.Constant(d.Const(n.num))
		op.Name = strconv.FormatFloat(n.num, 'g', -1, 64)
		return append(ops, op)
	case varNode:
		if n.name == "y" {
			return append(ops, rpn.Y[V]())
		}
		return append(ops, rpn.X[V]())
	}
	for _, a := range n.args {
		ops = emit(a, d, ops)
	}
	if n.kind == unaryNode {
		return append(ops, rpn.Unary(n.name, unaryFunc(d, n.name)))
	}
	return append(ops, rpn.Binary(n.name, binaryFunc(d, n.name)))
}

func unaryFunc[V any](d rpn.Domain[V], name string) func(V) V {
	switch name {
	case "neg":
		return d.Neg
	case "sin":
		return d.Sin
	case "cos":
		return d.Cos
	case "tan":
		return d.Tan
	case "exp":
		return d.Exp
	case "log":
		return d.Log
	case "sqrt":
		return d.Sqrt
	case "abs":
		return d.Abs
	}
	panic("compile: no unary function " + name)
}

func binaryFunc[V any](d rpn.Domain[V], name string) func(V, V) V {
	switch name {
	case "+":
		return d.Add
	case "-":
		return d.Sub
	case "*":
		return d.Mul
	case "/":
		return d.Div
	case "^":
		return d.Pow
	case "min":
		return d.Min
	case "max":
		return d.Max
	}
	panic("compile: no binary function " + name)
}
