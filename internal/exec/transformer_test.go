package exec_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphlr/internal/backend/cpu"
	"github.com/born-ml/graphlr/internal/exec"
	"github.com/born-ml/graphlr/internal/graph"
	"github.com/born-ml/graphlr/internal/tensor"
)

func mustTensor(t *testing.T, data []float64, shape tensor.Shape) *tensor.Dense {
	t.Helper()
	d, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return d
}

func mustAxis(t *testing.T, g *graph.Graph, name string, length int, opts ...graph.AxisOption) graph.Axis {
	t.Helper()
	ax, err := g.NewAxis(name, length, opts...)
	require.NoError(t, err)
	return ax
}

func TestComputation_Elementwise(t *testing.T) {
	g := graph.New()
	c := mustAxis(t, g, "C", 2)
	n := mustAxis(t, g, "N", 3, graph.AsBatch())

	x := g.Placeholder("X", graph.Axes{c, n})
	y := g.Placeholder("Y", graph.Axes{n})
	// (C, N) + (N) broadcasts y over C; (N) - (C, N) lays out as (N, C).
	sum := g.Add(x, y)
	diff := g.Sub(y, x)

	tr := exec.NewTransformer(cpu.New())
	comp, err := tr.Computation([]graph.Node{sum, diff}, x, y)
	require.NoError(t, err)

	xs := mustTensor(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	ys := mustTensor(t, []float64{10, 20, 30}, tensor.Shape{3})
	out, err := comp.Call(xs, ys)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, tensor.Shape{2, 3}, out[0].Shape())
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, out[0].Data())
	assert.Equal(t, tensor.Shape{3, 2}, out[1].Shape())
	assert.Equal(t, []float64{9, 6, 18, 15, 27, 24}, out[1].Data())
}

func TestComputation_DotAndReductions(t *testing.T) {
	g := graph.New()
	c := mustAxis(t, g, "C", 2)
	d := mustAxis(t, g, "D", 1)
	n := mustAxis(t, g, "N", 3, graph.AsBatch())

	x := g.Placeholder("X", graph.Axes{c, d, n})
	w := g.Variable("W", graph.Axes{c, d}, mustTensor(t, []float64{1, -1}, tensor.Shape{2, 1}))
	dot := g.Dot(w, x)
	total := g.Sum(x, graph.Axes{})
	perN := g.Sum(x, graph.Axes{n})
	bc := g.Broadcast(w, graph.Axes{n, d, c})

	tr := exec.NewTransformer(cpu.New())
	comp, err := tr.Computation([]graph.Node{dot, total, perN, bc}, x)
	require.NoError(t, err)

	out, err := comp.Call(mustTensor(t, []float64{1, 2, 3, 10, 20, 30}, tensor.Shape{2, 1, 3}))
	require.NoError(t, err)
	assert.Equal(t, []float64{-9, -18, -27}, out[0].Data())
	assert.Equal(t, 66.0, out[1].Item())
	assert.Equal(t, []float64{11, 22, 33}, out[2].Data())
	assert.Equal(t, tensor.Shape{3, 1, 2}, out[3].Shape())
	assert.Equal(t, []float64{1, -1, 1, -1, 1, -1}, out[3].Data())
}

func TestComputation_UnaryOps(t *testing.T) {
	g := graph.New()
	n := mustAxis(t, g, "N", 2)
	x := g.Placeholder("X", graph.Axes{n})

	outputs := []graph.Node{g.Neg(x), g.Sigmoid(x), g.Log(x), g.Exp(x), g.Softplus(x)}
	comp, err := exec.NewTransformer(cpu.New()).Computation(outputs, x)
	require.NoError(t, err)

	out, err := comp.Call(mustTensor(t, []float64{1, 2}, tensor.Shape{2}))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -2}, out[0].Data())
	assert.InDelta(t, 1/(1+math.Exp(-1)), out[1].Data()[0], 1e-12)
	assert.InDelta(t, math.Ln2, out[2].Data()[1], 1e-12)
	assert.InDelta(t, math.Exp(2), out[3].Data()[1], 1e-9)
	assert.InDelta(t, math.Log(1+math.E), out[4].Data()[0], 1e-12)
}

func TestComputation_ArgumentErrors(t *testing.T) {
	g := graph.New()
	n := mustAxis(t, g, "N", 2)
	x := g.Placeholder("X", graph.Axes{n})
	y := g.Placeholder("Y", graph.Axes{n})

	tr := exec.NewTransformer(cpu.New())

	_, err := tr.Computation(nil)
	assert.ErrorIs(t, err, exec.ErrNoOutputs)

	_, err = tr.Computation([]graph.Node{g.Add(x, y)}, x)
	assert.ErrorIs(t, err, exec.ErrUnboundPlaceholder)

	_, err = tr.Computation([]graph.Node{x}, x, x)
	assert.ErrorIs(t, err, exec.ErrDuplicateParam)

	other := graph.New()
	_, err = tr.Computation([]graph.Node{x, other.ScalarConstant(1)}, x)
	assert.ErrorIs(t, err, graph.ErrForeignNode)

	comp, err := tr.Computation([]graph.Node{g.Neg(x)}, x)
	require.NoError(t, err)
	assert.Equal(t, []*graph.Placeholder{x}, comp.Params())

	_, err = comp.Call()
	assert.ErrorIs(t, err, exec.ErrArgCount)

	_, err = comp.Call(tensor.Zeros(tensor.Shape{3}))
	assert.ErrorIs(t, err, exec.ErrArgShape)

	_, err = comp.Call(nil)
	assert.ErrorIs(t, err, exec.ErrArgShape)
}

func TestComputation_AssignCommitsAfterEvaluation(t *testing.T) {
	g := graph.New()
	v := g.Variable("v", graph.Axes{}, tensor.Scalar(1))
	one := g.ScalarConstant(1)

	before := g.Add(v, g.ScalarConstant(0))
	update := g.DoAll(g.Assign(v, g.Add(v, one)))

	tr := exec.NewTransformer(cpu.New())
	step, err := tr.Computation([]graph.Node{before, v, update})
	require.NoError(t, err)

	out, err := step.Call()
	require.NoError(t, err)
	assert.Equal(t, 1.0, out[0].Item(), "expressions see the state before the step")
	assert.Equal(t, 2.0, out[1].Item(), "variables are read after the commit")
	assert.Equal(t, 1.0, out[2].Item(), "updates report as applied")

	out, err = step.Call()
	require.NoError(t, err)
	assert.Equal(t, 2.0, out[0].Item())
	assert.Equal(t, 3.0, tr.Value(v).Item())

	tr.Reset()
	assert.Equal(t, 1.0, tr.Value(v).Item())
}

func TestComputation_SimultaneousAssignments(t *testing.T) {
	// Swapping two variables only works if both reads happen before either write.
	g := graph.New()
	a := g.Variable("a", graph.Axes{}, tensor.Scalar(1))
	b := g.Variable("b", graph.Axes{}, tensor.Scalar(2))
	swap := g.DoAll(g.Assign(a, b), g.Assign(b, a))

	tr := exec.NewTransformer(cpu.New())
	comp, err := tr.Computation([]graph.Node{swap})
	require.NoError(t, err)
	_, err = comp.Call()
	require.NoError(t, err)

	assert.Equal(t, 2.0, tr.Value(a).Item())
	assert.Equal(t, 1.0, tr.Value(b).Item())
}

func TestComputation_AssignReordersAxes(t *testing.T) {
	g := graph.New()
	c := mustAxis(t, g, "C", 2)
	d := mustAxis(t, g, "D", 3)
	w := g.Variable("W", graph.Axes{c, d}, nil)
	src := g.Placeholder("S", graph.Axes{d, c})

	tr := exec.NewTransformer(cpu.New())
	comp, err := tr.Computation([]graph.Node{g.Assign(w, src)}, src)
	require.NoError(t, err)

	_, err = comp.Call(mustTensor(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5, 2, 4, 6}, tr.Value(w).Data())
}

func TestComputation_SharedStateAndIdempotentEvaluation(t *testing.T) {
	g := graph.New()
	v := g.Variable("v", graph.Axes{}, nil)
	x := g.Placeholder("x", graph.Axes{})
	read := g.Mul(v, x)

	tr := exec.NewTransformer(cpu.New())
	eval, err := tr.Computation([]graph.Node{read}, x)
	require.NoError(t, err)
	set, err := tr.Computation([]graph.Node{g.Assign(v, x)}, x)
	require.NoError(t, err)

	first, err := eval.Call(tensor.Scalar(3))
	require.NoError(t, err)
	second, err := eval.Call(tensor.Scalar(3))
	require.NoError(t, err)
	assert.True(t, first[0].Equal(second[0]))
	assert.Equal(t, 0.0, first[0].Item())

	_, err = set.Call(tensor.Scalar(5))
	require.NoError(t, err)
	third, err := eval.Call(tensor.Scalar(3))
	require.NoError(t, err)
	assert.Equal(t, 15.0, third[0].Item())
}

func TestComputation_ResultsAreCopies(t *testing.T) {
	g := graph.New()
	v := g.Variable("v", graph.Axes{}, tensor.Scalar(4))
	tr := exec.NewTransformer(cpu.New())
	comp, err := tr.Computation([]graph.Node{v})
	require.NoError(t, err)

	out, err := comp.Call()
	require.NoError(t, err)
	out[0].Data()[0] = -1
	assert.Equal(t, 4.0, tr.Value(v).Item())
}

func TestTransformer_VariablesOfSeparateGraphs(t *testing.T) {
	g1, g2 := graph.New(), graph.New()
	a := g1.Variable("a", graph.Axes{}, tensor.Scalar(1))
	b := g2.Variable("b", graph.Axes{}, tensor.Scalar(7))
	n := mustAxis(t, g2, "N", 3)
	c := g2.Variable("c", graph.Axes{n}, tensor.Full(tensor.Shape{3}, 2))
	require.Equal(t, a.ID(), b.ID(), "both graphs number their first node alike")

	tr := exec.NewTransformer(cpu.New())
	set, err := tr.Computation([]graph.Node{g1.Assign(a, g1.ScalarConstant(42))})
	require.NoError(t, err)
	_, err = set.Call()
	require.NoError(t, err)

	read, err := tr.Computation([]graph.Node{b, c})
	require.NoError(t, err)
	out, err := read.Call()
	require.NoError(t, err)
	assert.Equal(t, 7.0, out[0].Item())
	assert.Equal(t, []float64{2, 2, 2}, out[1].Data())
	assert.Equal(t, 42.0, tr.Value(a).Item())
	assert.Equal(t, 7.0, tr.Value(b).Item())
}
