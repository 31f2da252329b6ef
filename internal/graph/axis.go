package graph

import (
	"strconv"
	"strings"

	"github.com/born-ml/graphlr/internal/tensor"
)

// Axis is a named dimension with a fixed length.
//
// Axes are identified by name within a Graph. One axis per model is usually
// marked as the batch axis; BatchSize and the loss scaling rely on it.
type Axis struct {
	Name   string
	Length int
	Batch  bool
}

// String returns "name:length", with a trailing '*' for batch axes.
func (a Axis) String() string {
	s := a.Name + ":" + strconv.Itoa(a.Length)
	if a.Batch {
		s += "*"
	}
	return s
}

// Axes is an ordered list of axes. Order determines the memory layout of the
// tensors bound to a node; set operations compare by name.
type Axes []Axis

// Names returns the axis names in order.
func (a Axes) Names() []string {
	names := make([]string, len(a))
	for i, ax := range a {
		names[i] = ax.Name
	}
	return names
}

// Lengths returns the axis lengths in order.
func (a Axes) Lengths() []int {
	return []int(a.Shape())
}

// Shape returns the axis lengths as a tensor shape.
func (a Axes) Shape() tensor.Shape {
	shape := make(tensor.Shape, len(a))
	for i, ax := range a {
		shape[i] = ax.Length
	}
	return shape
}

// Size returns the number of elements spanned by the axes.
func (a Axes) Size() int {
	return a.Shape().NumElements()
}

// Index returns the position of the named axis, or -1.
func (a Axes) Index(name string) int {
	for i, ax := range a {
		if ax.Name == name {
			return i
		}
	}
	return -1
}

// Contains reports whether an axis with the same name is present.
func (a Axes) Contains(ax Axis) bool {
	return a.Index(ax.Name) >= 0
}

// Union returns a followed by every axis of b not already in a.
func (a Axes) Union(b Axes) Axes {
	out := make(Axes, len(a), len(a)+len(b))
	copy(out, a)
	for _, ax := range b {
		if !out.Contains(ax) {
			out = append(out, ax)
		}
	}
	return out
}

// Intersect returns the axes of a that also appear in b, in a's order.
func (a Axes) Intersect(b Axes) Axes {
	out := Axes{}
	for _, ax := range a {
		if b.Contains(ax) {
			out = append(out, ax)
		}
	}
	return out
}

// Difference returns the axes of a that do not appear in b, in a's order.
func (a Axes) Difference(b Axes) Axes {
	out := Axes{}
	for _, ax := range a {
		if !b.Contains(ax) {
			out = append(out, ax)
		}
	}
	return out
}

// IsSubset reports whether every axis of a appears in b.
func (a Axes) IsSubset(b Axes) bool {
	for _, ax := range a {
		if !b.Contains(ax) {
			return false
		}
	}
	return true
}

// SameSet reports whether a and b name the same axes, ignoring order.
func (a Axes) SameSet(b Axes) bool {
	return len(a) == len(b) && a.IsSubset(b)
}

// Equal reports whether a and b hold the same axes in the same order.
func (a Axes) Equal(b Axes) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BatchAxes returns the batch axes of a.
func (a Axes) BatchAxes() Axes {
	out := Axes{}
	for _, ax := range a {
		if ax.Batch {
			out = append(out, ax)
		}
	}
	return out
}

// String returns the axes as "(C:4, N:128*)".
func (a Axes) String() string {
	parts := make([]string, len(a))
	for i, ax := range a {
		parts[i] = ax.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
