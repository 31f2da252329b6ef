// Package graph builds computation graphs over named axes.
//
// A Graph is the explicit construction context: it owns the axis registry
// and hands out node identities. Nodes record their operands, so
// introspection such as Variables is a plain traversal of the graph.
//
// Example:
//
//	g := graph.New()
//	c, _ := g.NewAxis("C", 4)
//	n, _ := g.NewAxis("N", 128, graph.AsBatch())
//	x := g.Placeholder("X", graph.Axes{c, n})
//	w := g.Variable("W", graph.Axes{c}, nil)
//	y := g.Sigmoid(g.Dot(w, x)) // axes (N)
//
// Builder methods panic with *Error on contract violations (mismatched
// axes, foreign nodes); wrap construction in Build to get an error instead.
package graph

import (
	"fmt"

	"github.com/born-ml/graphlr/internal/tensor"
)

// Graph owns the axes and nodes of one computation.
type Graph struct {
	axes   map[string]Axis
	nextID int64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{axes: make(map[string]Axis)}
}

// AxisOption configures NewAxis.
type AxisOption func(*Axis)

// AsBatch marks the axis as the batch dimension.
func AsBatch() AxisOption {
	return func(a *Axis) {
		a.Batch = true
	}
}

// NewAxis declares a named axis.
//
// Declaring an existing name again returns the registered axis when the
// length and batch flag agree, and ErrAxisConflict otherwise.
func (g *Graph) NewAxis(name string, length int, opts ...AxisOption) (Axis, error) {
	if name == "" {
		return Axis{}, fmt.Errorf("%w: empty name", ErrInvalidAxis)
	}
	if length <= 0 {
		return Axis{}, fmt.Errorf("%w: %s has length %d", ErrInvalidAxis, name, length)
	}

	ax := Axis{Name: name, Length: length}
	for _, opt := range opts {
		opt(&ax)
	}

	if existing, ok := g.axes[name]; ok {
		if existing != ax {
			return Axis{}, fmt.Errorf("%w: %s declared as %v, now %v", ErrAxisConflict, name, existing, ax)
		}
		return existing, nil
	}
	g.axes[name] = ax
	return ax, nil
}

// Axis returns the registered axis with the given name.
func (g *Graph) Axis(name string) (Axis, bool) {
	ax, ok := g.axes[name]
	return ax, ok
}

func (g *Graph) newNode(kind Kind, name string, axes Axes, inputs ...Node) node {
	g.nextID++
	if name == "" {
		name = fmt.Sprintf("%s_%d", kind, g.nextID)
	}
	return node{
		g:      g,
		id:     g.nextID,
		kind:   kind,
		axes:   axes,
		inputs: inputs,
		name:   name,
	}
}

// checkAxes verifies that every axis was declared in g with the same length.
func (g *Graph) checkAxes(op string, axes Axes) {
	for i, ax := range axes {
		registered, ok := g.axes[ax.Name]
		if !ok {
			fail(op, ErrUnknownAxis, "%s", ax.Name)
		}
		if registered != ax {
			fail(op, ErrAxisConflict, "%v vs declared %v", ax, registered)
		}
		if axes[:i].Contains(ax) {
			fail(op, ErrAxesMismatch, "axis %s repeated in %v", ax.Name, axes)
		}
	}
}

func (g *Graph) checkOwned(op string, nodes ...Node) {
	for _, n := range nodes {
		if n == nil {
			panic(&Error{Op: op, Err: fmt.Errorf("%w: nil operand", ErrAxesMismatch)})
		}
		if n.Graph() != g {
			fail(op, ErrForeignNode, "%s", n.Name())
		}
	}
}

func cloneAxes(axes Axes) Axes {
	out := make(Axes, len(axes))
	copy(out, axes)
	return out
}

// Placeholder declares an input with the given axes.
func (g *Graph) Placeholder(name string, axes Axes) *Placeholder {
	g.checkAxes("Placeholder", axes)
	return &Placeholder{node: g.newNode(KindPlaceholder, name, cloneAxes(axes))}
}

// Variable declares persistent mutable state. A nil init starts at zeros.
func (g *Graph) Variable(name string, axes Axes, init *tensor.Dense) *Variable {
	g.checkAxes("Variable", axes)
	if init == nil {
		init = tensor.Zeros(axes.Shape())
	} else if !init.Shape().Equal(axes.Shape()) {
		fail("Variable", ErrValueMismatch, "%s: init shape %v for axes %v", name, init.Shape(), axes)
	}
	return &Variable{
		node: g.newNode(KindVariable, name, cloneAxes(axes)),
		init: init.Clone(),
	}
}

// Constant embeds value with the given axes.
func (g *Graph) Constant(value *tensor.Dense, axes Axes) *Constant {
	g.checkAxes("Constant", axes)
	if !value.Shape().Equal(axes.Shape()) {
		fail("Constant", ErrValueMismatch, "shape %v for axes %v", value.Shape(), axes)
	}
	return &Constant{
		node:  g.newNode(KindConstant, "", cloneAxes(axes)),
		value: value.Clone(),
	}
}

// ScalarConstant embeds a scalar.
func (g *Graph) ScalarConstant(v float64) *Constant {
	return g.Constant(tensor.Scalar(v), Axes{})
}

// ZerosLike returns a zero constant with the axes of n.
func (g *Graph) ZerosLike(n Node) *Constant {
	return g.Constant(tensor.Zeros(n.Axes().Shape()), n.Axes())
}
