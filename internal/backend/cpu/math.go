package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/graphlr/internal/tensor"
)

// UnaryOp selects an elementwise function of one operand.
type UnaryOp int

// Unary operations.
const (
	UnaryNeg UnaryOp = iota
	UnarySigmoid
	UnaryLog
	UnaryExp
	UnarySoftplus
)

// BinaryOp selects an elementwise function of two operands.
type BinaryOp int

// Binary operations.
const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
)

// Unary applies op to every element of x.
func (cpu *CPUBackend) Unary(op UnaryOp, x *tensor.Dense) *tensor.Dense {
	f := unaryFunc(op)
	out := newResult("unary", x.Shape())
	dst := out.Data()
	for i, v := range x.Data() {
		dst[i] = f(v)
	}
	return out
}

func unaryFunc(op UnaryOp) func(float64) float64 {
	switch op {
	case UnaryNeg:
		return func(v float64) float64 { return -v }
	case UnarySigmoid:
		return Sigmoid
	case UnaryLog:
		return math.Log
	case UnaryExp:
		return math.Exp
	case UnarySoftplus:
		return Softplus
	default:
		panic(fmt.Sprintf("unary: unknown op %d", op))
	}
}

// Binary evaluates op over outShape. aStrides and bStrides give, for each
// output dimension, the stride of that dimension in a and b.
func (cpu *CPUBackend) Binary(
	op BinaryOp,
	outShape tensor.Shape,
	a *tensor.Dense, aStrides []int,
	b *tensor.Dense, bStrides []int,
) *tensor.Dense {
	checkStrides("binary", a, outShape, aStrides)
	checkStrides("binary", b, outShape, bStrides)

	out := newResult("binary", outShape)
	dst, av, bv := out.Data(), a.Data(), b.Data()
	var f func(x, y float64) float64
	switch op {
	case BinaryAdd:
		f = func(x, y float64) float64 { return x + y }
	case BinarySub:
		f = func(x, y float64) float64 { return x - y }
	case BinaryMul:
		f = func(x, y float64) float64 { return x * y }
	case BinaryDiv:
		f = func(x, y float64) float64 { return x / y }
	default:
		panic(fmt.Sprintf("binary: unknown op %d", op))
	}

	walk(outShape, [][]int{aStrides, bStrides}, func(i int, offs []int) {
		dst[i] = f(av[offs[0]], bv[offs[1]])
	})
	return out
}

// Sigmoid computes 1 / (1 + exp(-v)) without overflowing for large |v|.
func Sigmoid(v float64) float64 {
	if v >= 0 {
		return 1 / (1 + math.Exp(-v))
	}
	e := math.Exp(v)
	return e / (1 + e)
}

// Softplus computes log(1 + exp(v)) without overflowing for large v.
func Softplus(v float64) float64 {
	if v > 0 {
		return v + math.Log1p(math.Exp(-v))
	}
	return math.Log1p(math.Exp(v))
}
