package autodiff

import (
	"fmt"

	"github.com/born-ml/graphlr/internal/graph"
)

// inputGrad returns the contribution of adj, the adjoint of n, to the
// adjoint of n's input j. The result may carry extra axes; the caller
// conforms it to the input's axes, which sums away broadcast dimensions.
func inputGrad(g *graph.Graph, n graph.Node, adj graph.Node, j int) (graph.Node, error) {
	in := n.Inputs()
	switch n.Kind() {
	case graph.KindAdd:
		// d(a+b)/da = d(a+b)/db = 1
		return adj, nil

	case graph.KindSub:
		if j == 0 {
			return adj, nil
		}
		return g.Neg(adj), nil

	case graph.KindMul:
		// d(a*b)/da = b, d(a*b)/db = a
		return g.Mul(adj, in[1-j]), nil

	case graph.KindDiv:
		// d(a/b)/da = 1/b, d(a/b)/db = -a/b²
		a, b := in[0], in[1]
		if j == 0 {
			return g.Div(adj, b), nil
		}
		return g.Neg(g.Div(g.Mul(adj, a), g.Mul(b, b))), nil

	case graph.KindNeg:
		return g.Neg(adj), nil

	case graph.KindSigmoid:
		// dσ/dx = σ(x) * (1 - σ(x)), reusing the forward node.
		one := g.ScalarConstant(1)
		return g.Mul(adj, g.Mul(n, g.Sub(one, n))), nil

	case graph.KindLog:
		return g.Div(adj, in[0]), nil

	case graph.KindExp:
		return g.Mul(adj, n), nil

	case graph.KindSoftplus:
		// d softplus(x)/dx = σ(x)
		return g.Mul(adj, g.Sigmoid(in[0])), nil

	case graph.KindDot:
		// For a with free axes Fa and b with free axes Fb sharing S,
		// adj spans Fa ∪ Fb: grad_a = adj·b over Fb, grad_b = a·adj over Fa.
		if j == 0 {
			return g.Dot(adj, in[1]), nil
		}
		return g.Dot(in[0], adj), nil

	case graph.KindSum:
		return g.Broadcast(adj, in[0].Axes()), nil

	case graph.KindBroadcast:
		return g.Sum(adj, in[0].Axes()), nil

	default:
		return nil, fmt.Errorf("deriv: %w: %s", ErrNotDifferentiable, n)
	}
}
