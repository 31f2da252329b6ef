// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides symbolic reverse-mode differentiation.
//
// Gradients are built as new graph nodes rather than computed values, so
// they can be compiled into the same computation as the loss.
//
// Example:
//
//	import (
//	    "github.com/born-ml/graphlr/autodiff"
//	    "github.com/born-ml/graphlr/graph"
//	)
//
//	func main() {
//	    g := graph.New()
//	    x := g.Variable("x", graph.Axes{}, tensor.Scalar(3))
//	    dx, err := autodiff.Deriv(g, g.Mul(x, x), x) // 2x
//	}
package autodiff

import (
	"github.com/born-ml/graphlr/internal/autodiff"
	"github.com/born-ml/graphlr/internal/graph"
)

// ErrNotDifferentiable is returned when the loss depends on a node without a gradient rule.
var ErrNotDifferentiable = autodiff.ErrNotDifferentiable

// Deriv builds the derivative of a scalar loss with respect to v.
func Deriv(g *graph.Graph, loss graph.Node, v *graph.Variable) (graph.Node, error) {
	return autodiff.Deriv(g, loss, v)
}

// Gradients builds the derivatives of loss with respect to every variable in
// vars with one backward sweep.
func Gradients(g *graph.Graph, loss graph.Node, vars []*graph.Variable) ([]graph.Node, error) {
	return autodiff.Gradients(g, loss, vars)
}
