// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public dense tensor type.
//
// Tensors are row-major float64 arrays with a shape. They carry values into
// and out of compiled computations; the graph itself never holds tensors
// except as variable initialisers and constants.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	fmt.Println(x.Transpose()) // [[1 3] [2 4]]
package tensor

import (
	"github.com/born-ml/graphlr/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Dense is a row-major float64 tensor.
type Dense = tensor.Dense

// Common errors.
var (
	ErrInvalidShape       = tensor.ErrInvalidShape
	ErrShapeMismatch      = tensor.ErrShapeMismatch
	ErrInvalidPermutation = tensor.ErrInvalidPermutation
)

// New creates a zero-filled tensor, validating the shape.
func New(shape Shape) (*Dense, error) {
	return tensor.New(shape)
}

// Zeros creates a zero-filled tensor. Panics on an invalid shape.
func Zeros(shape Shape) *Dense {
	return tensor.Zeros(shape)
}

// Full creates a tensor with every element set to value.
func Full(shape Shape, value float64) *Dense {
	return tensor.Full(shape, value)
}

// Scalar creates a rank-0 tensor.
func Scalar(v float64) *Dense {
	return tensor.Scalar(v)
}

// FromSlice creates a tensor holding a copy of data.
//
// Example:
//
//	w, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4, 1})
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	return tensor.FromSlice(data, shape)
}
