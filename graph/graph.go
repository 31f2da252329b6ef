// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides named-axis computation graphs.
//
// A Graph is the construction context: it owns the axis registry and hands
// out nodes. Operators align their operands by axis name, so a weight over
// (C, D) and an input over (C, D, N) combine without explicit reshaping.
//
// Example:
//
//	g := graph.New()
//	c, _ := g.NewAxis("C", 4)
//	n, _ := g.NewAxis("N", 128, graph.AsBatch())
//	x := g.Placeholder("X", graph.Axes{c, n})
//	w := g.Variable("W", graph.Axes{c}, nil)
//	yHat := g.Sigmoid(g.Dot(w, x)) // axes (N)
package graph

import (
	"github.com/born-ml/graphlr/internal/graph"
)

// Graph is a construction context for nodes and axes.
type Graph = graph.Graph

// Axis is a named dimension.
type Axis = graph.Axis

// Axes is an ordered list of axes.
type Axes = graph.Axes

// AxisOption configures an axis declaration.
type AxisOption = graph.AxisOption

// Node is a vertex of a graph.
type Node = graph.Node

// Leaf and operator nodes.
type (
	Placeholder = graph.Placeholder
	Variable    = graph.Variable
	Constant    = graph.Constant
	Op          = graph.Op
)

// Kind identifies the operation of a node.
type Kind = graph.Kind

// Error is the panic value of a construction contract violation.
type Error = graph.Error

// Common errors.
var (
	ErrInvalidAxis   = graph.ErrInvalidAxis
	ErrAxisConflict  = graph.ErrAxisConflict
	ErrUnknownAxis   = graph.ErrUnknownAxis
	ErrAxesMismatch  = graph.ErrAxesMismatch
	ErrForeignNode   = graph.ErrForeignNode
	ErrNotVariable   = graph.ErrNotVariable
	ErrNotScalar     = graph.ErrNotScalar
	ErrNotSideEffect = graph.ErrNotSideEffect
	ErrValueMismatch = graph.ErrValueMismatch
)

// New creates an empty graph.
func New() *Graph {
	return graph.New()
}

// AsBatch marks an axis as a batch axis.
func AsBatch() AxisOption {
	return graph.AsBatch()
}

// Build runs fn and returns construction panics as errors.
//
// Example:
//
//	err := graph.Build(func() {
//	    loss = g.Div(g.CrossEntropyBinary(yHat, y, graph.Axes{}), g.BatchSize(yHat))
//	})
func Build(fn func()) error {
	return graph.Build(fn)
}

// Variables returns the variables reachable from exprs in first-visit order.
func Variables(exprs ...Node) []*Variable {
	return graph.Variables(exprs...)
}

// Placeholders returns the placeholders reachable from exprs.
func Placeholders(exprs ...Node) []*Placeholder {
	return graph.Placeholders(exprs...)
}

// TopoSort returns every node reachable from roots, operands first.
func TopoSort(roots ...Node) []Node {
	return graph.TopoSort(roots...)
}
