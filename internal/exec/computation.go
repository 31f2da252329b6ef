package exec

import (
	"fmt"

	"github.com/born-ml/graphlr/internal/backend/cpu"
	"github.com/born-ml/graphlr/internal/graph"
	"github.com/born-ml/graphlr/internal/tensor"
)

// Computation is a compiled set of expressions.
type Computation struct {
	t       *Transformer
	outputs []graph.Node
	params  []*graph.Placeholder
	order   []graph.Node // topological order of everything outputs need
}

type assignment struct {
	v     *graph.Variable
	value *tensor.Dense
}

// Params returns the placeholders bound by Call, in argument order.
func (c *Computation) Params() []*graph.Placeholder {
	return c.params
}

// Call binds args to the computation's parameters and evaluates every
// output against the current variable state.
//
// Assignments requested by the outputs are computed first and committed
// together just before Call returns; side-effecting outputs report a scalar
// 1 once applied. Outputs that are variables are read after the commit.
// Results are fresh copies in the order the outputs were requested.
func (c *Computation) Call(args ...*tensor.Dense) (results []*tensor.Dense, err error) {
	if len(args) != len(c.params) {
		return nil, fmt.Errorf("call: %w: got %d, want %d", ErrArgCount, len(args), len(c.params))
	}

	values := make(map[int64]*tensor.Dense, len(c.order))
	for i, p := range c.params {
		want := p.Axes().Shape()
		if args[i] == nil || !args[i].Shape().Equal(want) {
			var got tensor.Shape
			if args[i] != nil {
				got = args[i].Shape()
			}
			return nil, fmt.Errorf("call: %w: %s wants %v, got %v", ErrArgShape, p.Name(), want, got)
		}
		values[p.ID()] = args[i]
	}

	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("call: %w: %v", ErrExecution, r)
		}
	}()

	var pending []assignment
	for _, n := range c.order {
		if _, done := values[n.ID()]; done {
			continue
		}
		val, err := c.eval(n, values, &pending)
		if err != nil {
			return nil, err
		}
		values[n.ID()] = val
	}

	// Commit only after every value has been computed from the old state.
	for _, a := range pending {
		if err := c.t.variable(a.v).CopyFrom(a.value); err != nil {
			return nil, fmt.Errorf("call: %w: assign %s: %v", ErrExecution, a.v.Name(), err)
		}
	}

	results = make([]*tensor.Dense, len(c.outputs))
	for i, out := range c.outputs {
		if v, ok := out.(*graph.Variable); ok {
			results[i] = c.t.Value(v)
			continue
		}
		results[i] = values[out.ID()].Clone()
	}
	return results, nil
}

func (c *Computation) eval(n graph.Node, values map[int64]*tensor.Dense, pending *[]assignment) (*tensor.Dense, error) {
	switch n := n.(type) {
	case *graph.Variable:
		return c.t.variable(n), nil
	case *graph.Constant:
		return n.Value(), nil
	case *graph.Placeholder:
		// Unreachable: Computation rejects unbound placeholders.
		return nil, fmt.Errorf("call: %w: %s", ErrUnboundPlaceholder, n.Name())
	}

	be := c.t.backend
	in := n.Inputs()
	arg := func(i int) *tensor.Dense { return values[in[i].ID()] }

	switch n.Kind() {
	case graph.KindNeg:
		return be.Unary(cpu.UnaryNeg, arg(0)), nil
	case graph.KindSigmoid:
		return be.Unary(cpu.UnarySigmoid, arg(0)), nil
	case graph.KindLog:
		return be.Unary(cpu.UnaryLog, arg(0)), nil
	case graph.KindExp:
		return be.Unary(cpu.UnaryExp, arg(0)), nil
	case graph.KindSoftplus:
		return be.Unary(cpu.UnarySoftplus, arg(0)), nil

	case graph.KindAdd, graph.KindSub, graph.KindMul, graph.KindDiv:
		out := n.Axes()
		return be.Binary(binaryOps[n.Kind()], out.Shape(),
			arg(0), alignStrides(in[0].Axes(), out),
			arg(1), alignStrides(in[1].Axes(), out)), nil

	case graph.KindDot:
		return be.Contract(arg(0), arg(1), contractSpec(in[0].Axes(), in[1].Axes()))

	case graph.KindSum:
		return be.SumTo(arg(0), n.Axes().Shape(), scatterStrides(in[0].Axes(), n.Axes())), nil

	case graph.KindBroadcast:
		return be.Expand(arg(0), n.Axes().Shape(), alignStrides(in[0].Axes(), n.Axes())), nil

	case graph.KindAssign:
		v := in[0].(*graph.Variable)
		value := be.SumTo(arg(1), v.Axes().Shape(), scatterStrides(in[1].Axes(), v.Axes()))
		*pending = append(*pending, assignment{v: v, value: value})
		return tensor.Scalar(1), nil

	case graph.KindDoAll:
		return tensor.Scalar(1), nil

	default:
		return nil, fmt.Errorf("call: %w: unsupported node %s", ErrExecution, n)
	}
}

var binaryOps = map[graph.Kind]cpu.BinaryOp{
	graph.KindAdd: cpu.BinaryAdd,
	graph.KindSub: cpu.BinarySub,
	graph.KindMul: cpu.BinaryMul,
	graph.KindDiv: cpu.BinaryDiv,
}
