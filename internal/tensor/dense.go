// Package tensor provides the dense float64 tensors that flow through
// computation graphs at execution time.
//
// A Dense tensor is a row-major buffer plus a Shape. Tensors carry no axis
// names; the executor maps graph axes onto positional dimensions.
package tensor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Common errors.
var (
	ErrInvalidShape       = errors.New("invalid shape")
	ErrShapeMismatch      = errors.New("shape mismatch")
	ErrInvalidPermutation = errors.New("invalid permutation")
)

// Dense is a row-major float64 tensor.
type Dense struct {
	shape Shape
	data  []float64
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Dense{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}, nil
}

// Zeros is like New but panics on an invalid shape.
func Zeros(shape Shape) *Dense {
	t, err := New(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64) *Dense {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Scalar creates a rank-0 tensor holding v.
func Scalar(v float64) *Dense {
	return &Dense{shape: Shape{}, data: []float64{v}}
}

// FromSlice creates a tensor from data. The slice is copied.
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(data), shape)
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return &Dense{shape: shape.Clone(), data: buf}, nil
}

// Shape returns the tensor's shape.
func (t *Dense) Shape() Shape {
	return t.shape
}

// Rank returns the number of dimensions.
func (t *Dense) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Dense) NumElements() int {
	return len(t.data)
}

// Data returns the underlying buffer.
// WARNING: Direct access to underlying memory. Use with caution.
func (t *Dense) Data() []float64 {
	return t.data
}

// Item returns the single value of a one-element tensor.
// Panics if the tensor holds more than one element.
func (t *Dense) Item() float64 {
	if len(t.data) != 1 {
		panic(fmt.Sprintf("tensor: Item on tensor of shape %v", t.shape))
	}
	return t.data[0]
}

// At returns the element at the given coordinates.
func (t *Dense) At(idx ...int) float64 {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank %d", len(idx), len(t.shape)))
	}
	strides := t.shape.ComputeStrides()
	off := 0
	for i, v := range idx {
		if v < 0 || v >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d of size %d", v, i, t.shape[i]))
		}
		off += v * strides[i]
	}
	return t.data[off]
}

// Clone returns a deep copy.
func (t *Dense) Clone() *Dense {
	buf := make([]float64, len(t.data))
	copy(buf, t.data)
	return &Dense{shape: t.shape.Clone(), data: buf}
}

// CopyFrom overwrites the tensor's values with src's. Shapes must match.
func (t *Dense) CopyFrom(src *Dense) error {
	if !t.shape.Equal(src.shape) {
		return fmt.Errorf("%w: copy %v into %v", ErrShapeMismatch, src.shape, t.shape)
	}
	copy(t.data, src.data)
	return nil
}

// Reshape returns a tensor sharing the same buffer with a new shape.
func (t *Dense) Reshape(shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v to %v", ErrShapeMismatch, t.shape, shape)
	}
	return &Dense{shape: shape.Clone(), data: t.data}, nil
}

// Permute returns a new tensor whose dimension i is dimension perm[i] of t.
// The result is materialized in row-major order.
func (t *Dense) Permute(perm []int) (*Dense, error) {
	outShape, err := t.shape.Permute(perm)
	if err != nil {
		return nil, err
	}

	identity := true
	for i, p := range perm {
		if i != p {
			identity = false
			break
		}
	}
	if identity {
		return t.Clone(), nil
	}

	inStrides := t.shape.ComputeStrides()
	srcStrides := make([]int, len(perm))
	for i, p := range perm {
		srcStrides[i] = inStrides[p]
	}

	out := &Dense{shape: outShape, data: make([]float64, len(t.data))}
	coord := make([]int, len(outShape))
	src := 0
	for i := range out.data {
		out.data[i] = t.data[src]
		// Advance the output coordinate like an odometer, tracking the source offset.
		for d := len(coord) - 1; d >= 0; d-- {
			coord[d]++
			src += srcStrides[d]
			if coord[d] < outShape[d] {
				break
			}
			src -= coord[d] * srcStrides[d]
			coord[d] = 0
		}
	}
	return out, nil
}

// Transpose reverses the order of all dimensions.
func (t *Dense) Transpose() *Dense {
	perm := make([]int, len(t.shape))
	for i := range perm {
		perm[i] = len(perm) - 1 - i
	}
	out, err := t.Permute(perm)
	if err != nil {
		panic(err) // unreachable: perm is always valid
	}
	return out
}

// Equal reports whether both tensors have the same shape and values.
func (t *Dense) Equal(other *Dense) bool {
	return t.shape.Equal(other.shape) && floats.Equal(t.data, other.data)
}

// EqualApprox reports whether both tensors have the same shape and values
// within tol (absolute or relative).
func (t *Dense) EqualApprox(other *Dense, tol float64) bool {
	return t.shape.Equal(other.shape) && floats.EqualApprox(t.data, other.data, tol)
}
