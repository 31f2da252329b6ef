// Package autodiff builds gradient expressions for computation graphs.
//
// Differentiation is symbolic: Deriv walks the graph reachable from a scalar
// loss in reverse topological order and emits new graph nodes for the
// adjoint of every node on a path to the requested variable. The gradient is
// an ordinary expression that can be compiled and evaluated like any other.
//
// Usage:
//
//	grad, err := autodiff.Deriv(g, loss, w)
//	update := g.Assign(w, g.Sub(w, g.Mul(lr, grad)))
package autodiff

import (
	"errors"
	"fmt"

	"github.com/born-ml/graphlr/internal/graph"
)

// ErrNotDifferentiable is returned when the loss depends on a node kind
// that has no gradient, such as an assignment.
var ErrNotDifferentiable = errors.New("expression is not differentiable")

// Deriv returns the gradient of the scalar loss with respect to v.
//
// The result has exactly v's axes. If loss does not depend on v the
// gradient is a zero constant.
func Deriv(g *graph.Graph, loss graph.Node, v *graph.Variable) (graph.Node, error) {
	grads, err := Gradients(g, loss, []*graph.Variable{v})
	if err != nil {
		return nil, err
	}
	return grads[0], nil
}

// Gradients returns the gradient of the scalar loss with respect to each
// variable in vars, sharing a single backward sweep.
func Gradients(g *graph.Graph, loss graph.Node, vars []*graph.Variable) ([]graph.Node, error) {
	if loss.Graph() != g {
		return nil, fmt.Errorf("deriv: %w: loss %s", graph.ErrForeignNode, loss.Name())
	}
	for _, v := range vars {
		if v.Graph() != g {
			return nil, fmt.Errorf("deriv: %w: variable %s", graph.ErrForeignNode, v.Name())
		}
	}
	if len(loss.Axes()) != 0 {
		return nil, fmt.Errorf("deriv: %w: %s", graph.ErrNotScalar, loss)
	}

	var (
		grads   []graph.Node
		ruleErr error
	)
	if err := graph.Build(func() {
		grads, ruleErr = backward(g, loss, vars)
	}); err != nil {
		return nil, err
	}
	if ruleErr != nil {
		return nil, ruleErr
	}
	return grads, nil
}

// backward accumulates adjoints from loss down to vars.
//
// Algorithm:
//  1. Topologically sort the nodes reachable from loss
//  2. Mark the nodes that lie on a path to one of vars
//  3. Walk the order in reverse, pushing each marked node's adjoint to its
//     marked inputs with the chain rule
//  4. Sum adjoints when a node feeds several consumers
func backward(g *graph.Graph, loss graph.Node, vars []*graph.Variable) ([]graph.Node, error) {
	order := graph.TopoSort(loss)

	targets := make(map[int64]bool, len(vars))
	for _, v := range vars {
		targets[v.ID()] = true
	}
	needed := make(map[int64]bool, len(order))
	for _, n := range order {
		if targets[n.ID()] {
			needed[n.ID()] = true
			continue
		}
		for _, in := range n.Inputs() {
			if needed[in.ID()] {
				needed[n.ID()] = true
				break
			}
		}
	}

	adjoints := map[int64]graph.Node{loss.ID(): g.ScalarConstant(1)}
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		adj, ok := adjoints[n.ID()]
		if !ok || !needed[n.ID()] {
			continue
		}
		for j, in := range n.Inputs() {
			if !needed[in.ID()] {
				continue
			}
			grad, err := inputGrad(g, n, adj, j)
			if err != nil {
				return nil, err
			}
			grad = g.Conform(grad, in.Axes())
			if existing, ok := adjoints[in.ID()]; ok {
				grad = g.Add(existing, grad)
			}
			adjoints[in.ID()] = grad
		}
	}

	grads := make([]graph.Node, len(vars))
	for i, v := range vars {
		if adj, ok := adjoints[v.ID()]; ok {
			grads[i] = g.Conform(adj, v.Axes())
		} else {
			grads[i] = g.ZerosLike(v)
		}
	}
	return grads, nil
}
