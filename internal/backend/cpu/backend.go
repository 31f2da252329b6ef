// Package cpu implements the tensor kernels the executor runs on the CPU.
//
// Kernels work on positional dimensions only. Callers resolve named axes to
// strides before calling in: a stride of 0 broadcasts a dimension.
package cpu

import (
	"fmt"

	"github.com/born-ml/graphlr/internal/tensor"
)

// CPUBackend implements the kernels in pure Go, using gonum for contractions.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// newResult allocates an output tensor, panicking on an invalid shape.
// Shapes reaching a kernel come from validated axes, so failure is a bug.
func newResult(op string, shape tensor.Shape) *tensor.Dense {
	out, err := tensor.New(shape)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return out
}
