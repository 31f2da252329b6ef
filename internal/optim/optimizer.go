// Package optim builds parameter update rules for training.
//
// Optimizers here do not touch tensors. Given a scalar loss expression they
// discover the trainable variables it depends on, differentiate the loss
// with respect to each, and return one side-effecting graph node that
// applies every update when a computation requests it.
//
// Example usage:
//
//	lr := g.Placeholder("lr", graph.Axes{})
//	sgd, err := optim.NewSGD(g, optim.SGDConfig{LR: lr})
//	updates, err := sgd.Updates(loss)
//
//	train, err := transformer.Computation([]graph.Node{loss, updates}, x, y, lr)
package optim

import (
	"errors"

	"github.com/born-ml/graphlr/internal/graph"
)

// ErrNoParameters is returned when a loss depends on no variables.
var ErrNoParameters = errors.New("loss depends on no variables")

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Updates returns a node bundling one assignment per trainable
	// variable of loss. Requesting it from a computation applies one
	// optimization step.
	Updates(loss graph.Node) (graph.Node, error)

	// Params returns the variables discovered by the last Updates call.
	Params() []*graph.Variable
}
