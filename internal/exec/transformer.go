// Package exec compiles graph expressions into callable computations.
//
// A Transformer owns the variable storage for one run. Every computation it
// creates reads and updates the same variables, so a training computation
// and an evaluation computation built from the same graph observe each
// other's effects.
//
// Example:
//
//	t := exec.NewTransformer(cpu.New())
//	train, err := t.Computation([]graph.Node{loss, updates}, x, y, lr)
//	results, err := train.Call(xs, ys, tensor.Scalar(0.1))
package exec

import (
	"errors"
	"fmt"

	"github.com/born-ml/graphlr/internal/backend/cpu"
	"github.com/born-ml/graphlr/internal/graph"
	"github.com/born-ml/graphlr/internal/tensor"
)

// Common errors.
var (
	ErrNoOutputs          = errors.New("computation has no outputs")
	ErrUnboundPlaceholder = errors.New("placeholder is not a computation parameter")
	ErrDuplicateParam     = errors.New("placeholder listed twice")
	ErrArgCount           = errors.New("wrong number of arguments")
	ErrArgShape           = errors.New("argument shape does not match placeholder axes")
	ErrExecution          = errors.New("execution failed")
)

// Backend is the set of kernels a Transformer needs.
type Backend interface {
	Name() string
	Unary(op cpu.UnaryOp, x *tensor.Dense) *tensor.Dense
	Binary(op cpu.BinaryOp, outShape tensor.Shape, a *tensor.Dense, aStrides []int, b *tensor.Dense, bStrides []int) *tensor.Dense
	SumTo(x *tensor.Dense, outShape tensor.Shape, strides []int) *tensor.Dense
	Expand(x *tensor.Dense, outShape tensor.Shape, strides []int) *tensor.Dense
	Contract(a, b *tensor.Dense, spec cpu.ContractSpec) (*tensor.Dense, error)
}

// Compile-time check that the CPU backend provides every kernel.
var _ Backend = (*cpu.CPUBackend)(nil)

// Transformer turns expressions into computations and holds variable state.
type Transformer struct {
	backend Backend
	state   map[*graph.Variable]*tensor.Dense
}

// NewTransformer creates a transformer running on backend.
func NewTransformer(backend Backend) *Transformer {
	return &Transformer{
		backend: backend,
		state:   make(map[*graph.Variable]*tensor.Dense),
	}
}

// Computation compiles outputs into a callable whose arguments bind params
// in order. Every placeholder reachable from outputs must appear in params.
func (t *Transformer) Computation(outputs []graph.Node, params ...*graph.Placeholder) (*Computation, error) {
	if len(outputs) == 0 {
		return nil, ErrNoOutputs
	}
	g := outputs[0].Graph()
	for _, out := range outputs {
		if out.Graph() != g {
			return nil, fmt.Errorf("computation: %w: output %s", graph.ErrForeignNode, out.Name())
		}
	}

	bound := make(map[int64]bool, len(params))
	for _, p := range params {
		if p.Graph() != g {
			return nil, fmt.Errorf("computation: %w: parameter %s", graph.ErrForeignNode, p.Name())
		}
		if bound[p.ID()] {
			return nil, fmt.Errorf("computation: %w: %s", ErrDuplicateParam, p.Name())
		}
		bound[p.ID()] = true
	}
	for _, p := range graph.Placeholders(outputs...) {
		if !bound[p.ID()] {
			return nil, fmt.Errorf("computation: %w: %s", ErrUnboundPlaceholder, p)
		}
	}

	return &Computation{
		t:       t,
		outputs: append([]graph.Node(nil), outputs...),
		params:  append([]*graph.Placeholder(nil), params...),
		order:   graph.TopoSort(outputs...),
	}, nil
}

// Value returns a copy of the current value of v.
func (t *Transformer) Value(v *graph.Variable) *tensor.Dense {
	return t.variable(v).Clone()
}

// Reset restores every variable to its initial value.
func (t *Transformer) Reset() {
	t.state = make(map[*graph.Variable]*tensor.Dense)
}

// variable returns the live storage for v, materializing it on first use.
func (t *Transformer) variable(v *graph.Variable) *tensor.Dense {
	val, ok := t.state[v]
	if !ok {
		val = v.Init()
		t.state[v] = val
	}
	return val
}
