// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient descent update rules.
//
// An optimizer turns a loss into a side-effecting node that assigns new
// values to every variable the loss depends on.
//
// # Basic Usage
//
//	lr := g.Placeholder("lr", graph.Axes{})
//	sgd, err := optim.NewSGD(g, optim.SGDConfig{LR: lr, Momentum: 0.9})
//	updates, err := sgd.Updates(loss)
//
//	train, err := t.Computation([]graph.Node{loss, updates}, lr, x, y)
//	for epoch := range numEpochs {
//	    for i := range xs {
//	        out, err := train.Call(tensor.Scalar(0.1/float64(1+epoch)), xs[i], ys[i])
//	    }
//	}
package optim

import (
	"github.com/born-ml/graphlr/internal/graph"
	"github.com/born-ml/graphlr/internal/optim"
)

// Optimizer builds parameter update rules.
type Optimizer = optim.Optimizer

// SGD is stochastic gradient descent with optional momentum.
type SGD = optim.SGD

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// ErrNoParameters is returned when a loss depends on no variable.
var ErrNoParameters = optim.ErrNoParameters

// NewSGD creates a new SGD optimizer for graph g.
func NewSGD(g *graph.Graph, config SGDConfig) (*SGD, error) {
	return optim.NewSGD(g, config)
}
