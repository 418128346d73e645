package gplot

import (
	"strconv"
	"strings"

	"github.com/gogpu/gplot/interval"
	"github.com/gogpu/gplot/rpn"
)

// asm assembles a whitespace separated postfix program over domain d,
// e.g. "x 2 ^ y 2 ^ + 1 -".
func asm[V any](d rpn.Domain[V], prog string) []rpn.Operation[V] {
	var ops []rpn.Operation[V]
	for _, tok := range strings.Fields(prog) {
		switch tok {
		case "x":
			ops = append(ops, rpn.X[V]())
		case "y":
			ops = append(ops, rpn.Y[V]())
		case "+":
			ops = append(ops, rpn.Binary(tok, d.Add))
		case "-":
			ops = append(ops, rpn.Binary(tok, d.Sub))
		case "*":
			ops = append(ops, rpn.Binary(tok, d.Mul))
		case "/":
			ops = append(ops, rpn.Binary(tok, d.Div))
		case "^":
			ops = append(ops, rpn.Binary(tok, d.Pow))
		case "neg":
			ops = append(ops, rpn.Unary(tok, d.Neg))
		case "sin":
			ops = append(ops, rpn.Unary(tok, d.Sin))
		case "cos":
			ops = append(ops, rpn.Unary(tok, d.Cos))
		case "sqrt":
			ops = append(ops, rpn.Unary(tok, d.Sqrt))
		default:
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				panic("asm: bad token " + tok)
			}
			ops = append(ops, rpn.Constant(d.Const(v)))
		}
	}
	return ops
}

// rangeExpr builds the range-evaluation form of prog.
func rangeExpr(prog string, mode rpn.Mode) *rpn.Expression[interval.Set] {
	return rpn.New(asm[interval.Set](interval.Domain{}, prog), mode)
}

// pointExpr builds the point-evaluation form of prog.
func pointExpr(prog string, mode rpn.Mode) *rpn.Expression[float64] {
	return rpn.New(asm[float64](rpn.Float{}, prog), mode)
}
