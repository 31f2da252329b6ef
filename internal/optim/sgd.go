package optim

import (
	"fmt"

	"github.com/born-ml/graphlr/internal/autodiff"
	"github.com/born-ml/graphlr/internal/graph"
	"github.com/born-ml/graphlr/internal/tensor"
)

// SGD builds stochastic gradient descent updates with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	g          *graph.Graph
	lr         graph.Node
	momentum   float64
	params     []*graph.Variable
	velocities map[int64]*graph.Variable
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       graph.Node // Scalar learning rate expression (default: constant 0.01)
	Momentum float64    // Momentum factor (default: 0.0, range: [0, 1))
}

// Compile-time check that SGD implements Optimizer.
var _ Optimizer = (*SGD)(nil)

// NewSGD creates a new SGD optimizer for graph g.
//
// LR is usually a scalar placeholder, so the learning rate can change from
// call to call without rebuilding the graph.
func NewSGD(g *graph.Graph, config SGDConfig) (*SGD, error) {
	if config.LR == nil {
		config.LR = g.ScalarConstant(0.01)
	}
	if config.LR.Graph() != g {
		return nil, fmt.Errorf("sgd: %w: learning rate %s", graph.ErrForeignNode, config.LR.Name())
	}
	if len(config.LR.Axes()) != 0 {
		return nil, fmt.Errorf("sgd: %w: learning rate %s", graph.ErrNotScalar, config.LR)
	}
	if config.Momentum < 0 || config.Momentum >= 1 {
		return nil, fmt.Errorf("sgd: momentum %v out of range [0, 1)", config.Momentum)
	}

	return &SGD{
		g:          g,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[int64]*graph.Variable),
	}, nil
}

// Updates builds one assignment per variable of loss and bundles them.
//
// Every assignment reads the variables as they were before the step: the
// gradients are evaluated against the pre-update state and all writes are
// committed together.
func (s *SGD) Updates(loss graph.Node) (graph.Node, error) {
	params := graph.Variables(loss)
	if len(params) == 0 {
		return nil, fmt.Errorf("sgd: %w: %s", ErrNoParameters, loss)
	}

	grads, err := autodiff.Gradients(s.g, loss, params)
	if err != nil {
		return nil, fmt.Errorf("sgd: %w", err)
	}

	var updates []graph.Node
	err = graph.Build(func() {
		for i, param := range params {
			updates = append(updates, s.update(param, grads[i])...)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sgd: %w", err)
	}

	s.params = params
	return s.g.DoAll(updates...), nil
}

// update returns the assignments for one parameter.
func (s *SGD) update(param *graph.Variable, grad graph.Node) []graph.Node {
	if s.momentum == 0 {
		// param -= lr * grad
		return []graph.Node{s.g.Assign(param, s.g.Sub(param, s.g.Mul(s.lr, grad)))}
	}

	velocity := s.velocity(param)
	// velocity = momentum * velocity + grad
	next := s.g.Add(s.g.Mul(s.g.ScalarConstant(s.momentum), velocity), grad)
	// param -= lr * velocity, using the new velocity
	return []graph.Node{
		s.g.Assign(velocity, next),
		s.g.Assign(param, s.g.Sub(param, s.g.Mul(s.lr, next))),
	}
}

// velocity returns the velocity buffer for param, declaring it on first use.
func (s *SGD) velocity(param *graph.Variable) *graph.Variable {
	if v, ok := s.velocities[param.ID()]; ok {
		return v
	}
	v := s.g.Variable(param.Name()+".velocity", param.Axes(), tensor.Zeros(param.Axes().Shape()))
	s.velocities[param.ID()] = v
	return v
}

// Params returns the variables discovered by the last Updates call.
func (s *SGD) Params() []*graph.Variable {
	return s.params
}

// LR returns the learning rate expression.
func (s *SGD) LR() graph.Node {
	return s.lr
}
