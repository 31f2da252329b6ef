// Package logreg builds and trains a logistic regression model on a graph.
//
// The model predicts ŷ = sigmoid(W·X + b) over named axes C and D for the
// features and N for the batch, and minimises the mean binary cross entropy
// with gradient descent updates derived symbolically from the loss.
package logreg

import (
	"fmt"

	"github.com/born-ml/graphlr/internal/backend/cpu"
	"github.com/born-ml/graphlr/internal/exec"
	"github.com/born-ml/graphlr/internal/graph"
	"github.com/born-ml/graphlr/internal/optim"
	"github.com/born-ml/graphlr/internal/tensor"
	"github.com/born-ml/graphlr/internal/train"
)

// Model is a compiled logistic regression graph with its parameter state.
type Model struct {
	Graph *graph.Graph

	C, D, N graph.Axis

	X  *graph.Placeholder // Features (C, D, N)
	Y  *graph.Placeholder // Labels (N)
	LR *graph.Placeholder // Learning rate ()

	W *graph.Variable // Weight (C, D)
	B *graph.Variable // Bias ()

	YHat    graph.Node
	Loss    graph.Node
	Updates graph.Node

	optimizer   *optim.SGD
	transformer *exec.Transformer
	trainStep   *exec.Computation
	evaluate    *exec.Computation
}

// Build declares the model graph and compiles its train and eval computations.
func Build(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Model{Graph: graph.New()}
	if err := m.declareAxes(cfg); err != nil {
		return nil, err
	}
	if err := graph.Build(m.declare); err != nil {
		return nil, fmt.Errorf("logreg: %w", err)
	}

	sgd, err := optim.NewSGD(m.Graph, optim.SGDConfig{LR: m.LR, Momentum: cfg.Momentum})
	if err != nil {
		return nil, fmt.Errorf("logreg: %w", err)
	}
	updates, err := sgd.Updates(m.Loss)
	if err != nil {
		return nil, fmt.Errorf("logreg: %w", err)
	}
	m.optimizer = sgd
	m.Updates = updates

	m.transformer = exec.NewTransformer(cpu.New())
	m.trainStep, err = m.transformer.Computation(
		[]graph.Node{m.Loss, m.W, m.B, m.Updates}, m.LR, m.X, m.Y)
	if err != nil {
		return nil, fmt.Errorf("logreg: train computation: %w", err)
	}
	m.evaluate, err = m.transformer.Computation([]graph.Node{m.Loss}, m.X, m.Y)
	if err != nil {
		return nil, fmt.Errorf("logreg: eval computation: %w", err)
	}
	return m, nil
}

func (m *Model) declareAxes(cfg Config) (err error) {
	if m.C, err = m.Graph.NewAxis("C", cfg.Width); err != nil {
		return fmt.Errorf("logreg: %w", err)
	}
	if m.D, err = m.Graph.NewAxis("D", cfg.Height); err != nil {
		return fmt.Errorf("logreg: %w", err)
	}
	if m.N, err = m.Graph.NewAxis("N", cfg.BatchSize, graph.AsBatch()); err != nil {
		return fmt.Errorf("logreg: %w", err)
	}
	return nil
}

func (m *Model) declare() {
	g := m.Graph
	m.X = g.Placeholder("X", graph.Axes{m.C, m.D, m.N})
	m.Y = g.Placeholder("Y", graph.Axes{m.N})
	m.LR = g.Placeholder("lr", graph.Axes{})

	m.W = g.Variable("W", graph.Axes{m.C, m.D}, nil)
	m.B = g.Variable("b", graph.Axes{}, nil)

	m.YHat = g.Sigmoid(g.Add(g.Dot(m.W, m.X), m.B))
	m.Loss = g.Div(g.CrossEntropyBinary(m.YHat, m.Y, graph.Axes{}), g.BatchSize(m.YHat))
}

// Params returns the trainable variables found in the loss.
func (m *Model) Params() []*graph.Variable {
	return m.optimizer.Params()
}

// Step runs one training step: it returns the loss before the update and
// the parameters after it.
func (m *Model) Step(lr float64, x, y *tensor.Dense) (train.StepResult, error) {
	out, err := m.trainStep.Call(tensor.Scalar(lr), x, y)
	if err != nil {
		return train.StepResult{}, fmt.Errorf("logreg: step: %w", err)
	}
	return train.StepResult{
		Loss:    out[0].Item(),
		W:       out[1],
		B:       out[2],
		Updated: out[3].Item() == 1,
	}, nil
}

// Evaluate returns the loss of a batch under the current parameters.
func (m *Model) Evaluate(x, y *tensor.Dense) (float64, error) {
	out, err := m.evaluate.Call(x, y)
	if err != nil {
		return 0, fmt.Errorf("logreg: evaluate: %w", err)
	}
	return out[0].Item(), nil
}

// Weight returns a copy of the current weight.
func (m *Model) Weight() *tensor.Dense {
	return m.transformer.Value(m.W)
}

// Bias returns a copy of the current bias.
func (m *Model) Bias() *tensor.Dense {
	return m.transformer.Value(m.B)
}

// Reset restores the zero-initialised parameters.
func (m *Model) Reset() {
	m.transformer.Reset()
}
