// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package exec compiles graph expressions into callable computations.
//
// Example:
//
//	t := exec.NewTransformer(cpu.New())
//	train, err := t.Computation([]graph.Node{loss, w, b, updates}, lr, x, y)
//	eval, err := t.Computation([]graph.Node{loss}, x, y)
package exec

import (
	"github.com/born-ml/graphlr/internal/exec"
)

// Transformer holds variable state and creates computations.
type Transformer = exec.Transformer

// Computation is a compiled list of outputs.
type Computation = exec.Computation

// Backend is the set of kernels a Transformer needs.
type Backend = exec.Backend

// Common errors.
var (
	ErrNoOutputs          = exec.ErrNoOutputs
	ErrUnboundPlaceholder = exec.ErrUnboundPlaceholder
	ErrDuplicateParam     = exec.ErrDuplicateParam
	ErrArgCount           = exec.ErrArgCount
	ErrArgShape           = exec.ErrArgShape
	ErrExecution          = exec.ErrExecution
)

// NewTransformer creates a transformer running on backend.
func NewTransformer(backend Backend) *Transformer {
	return exec.NewTransformer(backend)
}
