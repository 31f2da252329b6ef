package cpu

import (
	"fmt"

	"github.com/born-ml/graphlr/internal/tensor"
)

// walk visits every coordinate of shape in row-major order. For each stride
// set it keeps a running flat offset, so fn receives the offset of the
// current coordinate in every operand without recomputing it.
func walk(shape tensor.Shape, strides [][]int, fn func(i int, offs []int)) {
	for _, s := range strides {
		if len(s) != len(shape) {
			panic(fmt.Sprintf("walk: %d strides for rank %d", len(s), len(shape)))
		}
	}

	total := shape.NumElements()
	coord := make([]int, len(shape))
	offs := make([]int, len(strides))
	for i := 0; i < total; i++ {
		fn(i, offs)
		for d := len(shape) - 1; d >= 0; d-- {
			coord[d]++
			for k := range strides {
				offs[k] += strides[k][d]
			}
			if coord[d] < shape[d] {
				break
			}
			for k := range strides {
				offs[k] -= coord[d] * strides[k][d]
			}
			coord[d] = 0
		}
	}
}

// checkStrides panics if strides would address memory outside x.
func checkStrides(op string, x *tensor.Dense, shape tensor.Shape, strides []int) {
	if len(strides) != len(shape) {
		panic(fmt.Sprintf("%s: %d strides for rank %d", op, len(strides), len(shape)))
	}
	last := 0
	for d, s := range strides {
		if s < 0 {
			panic(fmt.Sprintf("%s: negative stride %d", op, s))
		}
		last += (shape[d] - 1) * s
	}
	if last >= x.NumElements() {
		panic(fmt.Sprintf("%s: strides %v over shape %v exceed %d elements", op, strides, shape, x.NumElements()))
	}
}
