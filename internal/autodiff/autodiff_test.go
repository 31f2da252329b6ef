package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphlr/internal/autodiff"
	"github.com/born-ml/graphlr/internal/backend/cpu"
	"github.com/born-ml/graphlr/internal/exec"
	"github.com/born-ml/graphlr/internal/graph"
	"github.com/born-ml/graphlr/internal/tensor"
)

func TestDeriv_Square(t *testing.T) {
	g := graph.New()
	x := g.Variable("x", graph.Axes{}, tensor.Scalar(3))
	y := g.Mul(x, x)

	grad, err := autodiff.Deriv(g, y, x)
	require.NoError(t, err)

	comp, err := exec.NewTransformer(cpu.New()).Computation([]graph.Node{grad})
	require.NoError(t, err)
	out, err := comp.Call()
	require.NoError(t, err)
	assert.Equal(t, 6.0, out[0].Item(), "d(x²)/dx = 2x")
}

func TestDeriv_UnrelatedVariableIsZero(t *testing.T) {
	g := graph.New()
	c := mustAxis(t, g, "C", 2)
	x := g.Variable("x", graph.Axes{}, tensor.Scalar(1))
	unused := g.Variable("unused", graph.Axes{c}, nil)

	grad, err := autodiff.Deriv(g, g.Exp(x), unused)
	require.NoError(t, err)
	assert.Equal(t, graph.KindConstant, grad.Kind())
	assert.Equal(t, graph.Axes{c}, grad.Axes())
	assert.Equal(t, []float64{0, 0}, grad.(*graph.Constant).Value().Data())
}

func TestGradients_SharedSweep(t *testing.T) {
	g := graph.New()
	a := g.Variable("a", graph.Axes{}, tensor.Scalar(2))
	b := g.Variable("b", graph.Axes{}, tensor.Scalar(5))
	loss := g.Mul(a, b)

	grads, err := autodiff.Gradients(g, loss, []*graph.Variable{a, b})
	require.NoError(t, err)
	require.Len(t, grads, 2)

	comp, err := exec.NewTransformer(cpu.New()).Computation(grads)
	require.NoError(t, err)
	out, err := comp.Call()
	require.NoError(t, err)
	assert.Equal(t, 5.0, out[0].Item())
	assert.Equal(t, 2.0, out[1].Item())
}

func TestDeriv_Errors(t *testing.T) {
	g := graph.New()
	n := mustAxis(t, g, "N", 2)
	v := g.Variable("v", graph.Axes{n}, nil)
	s := g.Variable("s", graph.Axes{}, nil)

	_, err := autodiff.Deriv(g, v, v)
	assert.ErrorIs(t, err, graph.ErrNotScalar)

	other := graph.New()
	_, err = autodiff.Deriv(other, g.Sum(v, graph.Axes{}), v)
	assert.ErrorIs(t, err, graph.ErrForeignNode)

	foreign := other.Variable("f", graph.Axes{}, nil)
	_, err = autodiff.Deriv(g, g.Sum(v, graph.Axes{}), foreign)
	assert.ErrorIs(t, err, graph.ErrForeignNode)

	withEffect := g.Add(s, g.Assign(s, s))
	_, err = autodiff.Deriv(g, withEffect, s)
	assert.ErrorIs(t, err, autodiff.ErrNotDifferentiable)
}
