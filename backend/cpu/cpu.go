// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for compiled computations.
//
// Elementwise kernels run over strided operands and contractions are handed
// to gonum's matrix multiplication.
//
// Example:
//
//	t := exec.NewTransformer(cpu.New())
package cpu

import (
	internalcpu "github.com/born-ml/graphlr/internal/backend/cpu"
	"github.com/born-ml/graphlr/internal/exec"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend provides every kernel a transformer needs.
var _ exec.Backend = (*Backend)(nil)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}
