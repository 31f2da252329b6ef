package graph

import (
	"fmt"

	"github.com/born-ml/graphlr/internal/tensor"
)

// Kind identifies the operation a node performs.
type Kind int

// Node kinds.
const (
	KindPlaceholder Kind = iota
	KindVariable
	KindConstant
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindNeg
	KindSigmoid
	KindLog
	KindExp
	KindSoftplus
	KindDot
	KindSum
	KindBroadcast
	KindAssign
	KindDoAll
)

var kindNames = [...]string{
	KindPlaceholder: "Placeholder",
	KindVariable:    "Variable",
	KindConstant:    "Constant",
	KindAdd:         "Add",
	KindSub:         "Sub",
	KindMul:         "Mul",
	KindDiv:         "Div",
	KindNeg:         "Neg",
	KindSigmoid:     "Sigmoid",
	KindLog:         "Log",
	KindExp:         "Exp",
	KindSoftplus:    "Softplus",
	KindDot:         "Dot",
	KindSum:         "Sum",
	KindBroadcast:   "Broadcast",
	KindAssign:      "Assign",
	KindDoAll:       "DoAll",
}

// String returns the operation name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SideEffect reports whether nodes of this kind mutate variable state.
func (k Kind) SideEffect() bool {
	return k == KindAssign || k == KindDoAll
}

// Node is a vertex of a computation graph.
//
// Every node records its operands, so the graph reachable from any node is
// an explicit dependency structure that can be walked deterministically.
type Node interface {
	// ID is unique within the owning Graph and increases with creation order.
	ID() int64
	Kind() Kind
	// Axes are the named dimensions of the value the node produces.
	Axes() Axes
	Inputs() []Node
	Graph() *Graph
	Name() string
	String() string
}

type node struct {
	g      *Graph
	id     int64
	kind   Kind
	axes   Axes
	inputs []Node
	name   string
}

func (n *node) ID() int64      { return n.id }
func (n *node) Kind() Kind     { return n.kind }
func (n *node) Axes() Axes     { return n.axes }
func (n *node) Inputs() []Node { return n.inputs }
func (n *node) Graph() *Graph  { return n.g }
func (n *node) Name() string   { return n.name }

func (n *node) String() string {
	return fmt.Sprintf("%s%s", n.name, n.axes)
}

// Placeholder is an input bound to a concrete tensor at call time.
type Placeholder struct {
	node
}

// Variable is persistent mutable state, such as a trainable weight.
type Variable struct {
	node
	init *tensor.Dense
}

// Init returns a copy of the variable's initial value.
func (v *Variable) Init() *tensor.Dense {
	return v.init.Clone()
}

// Constant is a fixed tensor embedded in the graph.
type Constant struct {
	node
	value *tensor.Dense
}

// Value returns the constant's tensor. Callers must not modify it.
func (c *Constant) Value() *tensor.Dense {
	return c.value
}

// Op is a node computed from its inputs.
type Op struct {
	node
}
