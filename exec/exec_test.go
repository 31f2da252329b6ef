// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package exec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphlr/autodiff"
	"github.com/born-ml/graphlr/backend/cpu"
	"github.com/born-ml/graphlr/exec"
	"github.com/born-ml/graphlr/graph"
	"github.com/born-ml/graphlr/optim"
	"github.com/born-ml/graphlr/tensor"
)

// TestPublicPipeline drives the public packages from graph construction to
// a compiled update.
func TestPublicPipeline(t *testing.T) {
	g := graph.New()
	c, err := g.NewAxis("C", 2)
	require.NoError(t, err)

	var (
		x    *graph.Placeholder
		w    *graph.Variable
		loss graph.Node
	)
	require.NoError(t, graph.Build(func() {
		x = g.Placeholder("X", graph.Axes{c})
		w = g.Variable("W", graph.Axes{c}, nil)
		diff := g.Sub(w, x)
		loss = g.Sum(g.Mul(diff, diff), graph.Axes{})
	}))

	grad, err := autodiff.Deriv(g, loss, w)
	require.NoError(t, err)
	assert.Equal(t, graph.Axes{c}, grad.Axes())

	sgd, err := optim.NewSGD(g, optim.SGDConfig{LR: g.ScalarConstant(0.25)})
	require.NoError(t, err)
	updates, err := sgd.Updates(loss)
	require.NoError(t, err)

	tr := exec.NewTransformer(cpu.New())
	step, err := tr.Computation([]graph.Node{loss, grad, updates}, x)
	require.NoError(t, err)

	target, err := tensor.FromSlice([]float64{2, -4}, tensor.Shape{2})
	require.NoError(t, err)
	out, err := step.Call(target)
	require.NoError(t, err)

	assert.Equal(t, 20.0, out[0].Item())
	assert.Equal(t, []float64{-4, 8}, out[1].Data())
	assert.Equal(t, 1.0, out[2].Item())
	// Half way to the target: W - 0.25 * 2(W - X).
	assert.Equal(t, []float64{1, -2}, tr.Value(w).Data())

	_, err = step.Call()
	assert.ErrorIs(t, err, exec.ErrArgCount)
}
