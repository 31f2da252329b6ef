package graph

func (g *Graph) newOp(kind Kind, axes Axes, inputs ...Node) *Op {
	return &Op{node: g.newNode(kind, "", axes, inputs...)}
}

func (g *Graph) elementwise(kind Kind, a, b Node) *Op {
	g.checkOwned(kind.String(), a, b)
	return g.newOp(kind, a.Axes().Union(b.Axes()), a, b)
}

// Add returns a + b, broadcasting by axis name.
// The result axes are a's axes followed by the axes only b has.
func (g *Graph) Add(a, b Node) *Op { return g.elementwise(KindAdd, a, b) }

// Sub returns a - b, broadcasting by axis name.
func (g *Graph) Sub(a, b Node) *Op { return g.elementwise(KindSub, a, b) }

// Mul returns a * b, broadcasting by axis name.
func (g *Graph) Mul(a, b Node) *Op { return g.elementwise(KindMul, a, b) }

// Div returns a / b, broadcasting by axis name.
func (g *Graph) Div(a, b Node) *Op { return g.elementwise(KindDiv, a, b) }

func (g *Graph) unary(kind Kind, x Node) *Op {
	g.checkOwned(kind.String(), x)
	return g.newOp(kind, x.Axes(), x)
}

// Neg returns -x.
func (g *Graph) Neg(x Node) *Op { return g.unary(KindNeg, x) }

// Sigmoid returns 1 / (1 + exp(-x)).
func (g *Graph) Sigmoid(x Node) *Op { return g.unary(KindSigmoid, x) }

// Log returns the natural logarithm of x.
func (g *Graph) Log(x Node) *Op { return g.unary(KindLog, x) }

// Exp returns e^x.
func (g *Graph) Exp(x Node) *Op { return g.unary(KindExp, x) }

// Softplus returns log(1 + exp(x)).
func (g *Graph) Softplus(x Node) *Op { return g.unary(KindSoftplus, x) }

// Dot contracts a and b over every axis they share.
// The result axes are a's remaining axes followed by b's remaining axes.
func (g *Graph) Dot(a, b Node) *Op {
	g.checkOwned("Dot", a, b)
	shared := a.Axes().Intersect(b.Axes())
	axes := a.Axes().Difference(shared)
	axes = append(axes, b.Axes().Difference(shared)...)
	return g.newOp(KindDot, axes, a, b)
}

// Sum reduces x over every axis not listed in outAxes. The result has
// exactly outAxes, in that order; an empty outAxes reduces to a scalar.
func (g *Graph) Sum(x Node, outAxes Axes) *Op {
	g.checkOwned("Sum", x)
	if !outAxes.IsSubset(x.Axes()) {
		fail("Sum", ErrAxesMismatch, "cannot reduce %v to %v", x.Axes(), outAxes)
	}
	return g.newOp(KindSum, cloneAxes(outAxes), x)
}

// Broadcast expands x to axes, which must include every axis of x.
func (g *Graph) Broadcast(x Node, axes Axes) *Op {
	g.checkOwned("Broadcast", x)
	g.checkAxes("Broadcast", axes)
	if !x.Axes().IsSubset(axes) {
		fail("Broadcast", ErrAxesMismatch, "cannot broadcast %v to %v", x.Axes(), axes)
	}
	return g.newOp(KindBroadcast, cloneAxes(axes), x)
}

// Conform returns x reshaped to axes: axes x has but axes lacks are summed
// away, axes missing from x are broadcast, and the order follows axes.
// It returns x itself when the axes already match.
func (g *Graph) Conform(x Node, axes Axes) Node {
	if x.Axes().Equal(axes) {
		return x
	}
	var out Node = x
	if !x.Axes().IsSubset(axes) {
		out = g.Sum(out, x.Axes().Intersect(axes))
	}
	if !out.Axes().Equal(axes) {
		out = g.Broadcast(out, axes)
	}
	return out
}

// BatchSize returns a scalar constant equal to the product of the lengths
// of x's batch axes, or 1 when x has none.
func (g *Graph) BatchSize(x Node) *Constant {
	g.checkOwned("BatchSize", x)
	return g.ScalarConstant(float64(x.Axes().BatchAxes().Size()))
}

// CrossEntropyBinary returns the binary cross-entropy between predictions
// yHat in (0, 1) and targets y, summed down to outAxes.
//
// When yHat is a Sigmoid node the loss is built from its logits z as
// y*softplus(-z) + (1-y)*softplus(z), which stays finite when the sigmoid
// saturates.
func (g *Graph) CrossEntropyBinary(yHat, y Node, outAxes Axes) *Op {
	g.checkOwned("CrossEntropyBinary", yHat, y)
	one := g.ScalarConstant(1)

	var elems Node
	if yHat.Kind() == KindSigmoid {
		z := yHat.Inputs()[0]
		pos := g.Mul(y, g.Softplus(g.Neg(z)))
		neg := g.Mul(g.Sub(one, y), g.Softplus(z))
		elems = g.Add(pos, neg)
	} else {
		pos := g.Mul(y, g.Log(yHat))
		neg := g.Mul(g.Sub(one, y), g.Log(g.Sub(one, yHat)))
		elems = g.Neg(g.Add(pos, neg))
	}
	if !outAxes.IsSubset(elems.Axes()) {
		fail("CrossEntropyBinary", ErrAxesMismatch, "cannot reduce %v to %v", elems.Axes(), outAxes)
	}
	return g.Sum(elems, outAxes)
}

// Assign returns a side-effecting node that overwrites v with value when
// the enclosing computation runs. value must span the same axes as v.
func (g *Graph) Assign(v Node, value Node) *Op {
	g.checkOwned("Assign", v, value)
	if _, ok := v.(*Variable); !ok {
		fail("Assign", ErrNotVariable, "%s is a %s", v.Name(), v.Kind())
	}
	if !value.Axes().SameSet(v.Axes()) {
		fail("Assign", ErrAxesMismatch, "assign %v to %s%v", value.Axes(), v.Name(), v.Axes())
	}
	return g.newOp(KindAssign, Axes{}, v, value)
}

// DoAll bundles side-effecting nodes. All of them are applied before the
// computation that requests the bundle returns; their relative order is
// unspecified.
func (g *Graph) DoAll(ops ...Node) *Op {
	g.checkOwned("DoAll", ops...)
	for _, op := range ops {
		if !op.Kind().SideEffect() {
			fail("DoAll", ErrNotSideEffect, "%s", op.Name())
		}
	}
	inputs := make([]Node, len(ops))
	copy(inputs, ops)
	return g.newOp(KindDoAll, Axes{}, inputs...)
}
