package cpu

import (
	"github.com/born-ml/graphlr/internal/tensor"
)

// SumTo accumulates x into a tensor of outShape. strides has one entry per
// dimension of x giving that dimension's stride in the output; reduced
// dimensions have stride 0.
func (cpu *CPUBackend) SumTo(x *tensor.Dense, outShape tensor.Shape, strides []int) *tensor.Dense {
	out := newResult("sumto", outShape)
	checkStrides("sumto", out, x.Shape(), strides)

	dst, src := out.Data(), x.Data()
	walk(x.Shape(), [][]int{strides}, func(i int, offs []int) {
		dst[offs[0]] += src[i]
	})
	return out
}

// Expand gathers x into a tensor of outShape. strides has one entry per
// output dimension giving its stride in x; broadcast dimensions have stride 0.
func (cpu *CPUBackend) Expand(x *tensor.Dense, outShape tensor.Shape, strides []int) *tensor.Dense {
	checkStrides("expand", x, outShape, strides)

	out := newResult("expand", outShape)
	dst, src := out.Data(), x.Data()
	walk(outShape, [][]int{strides}, func(i int, offs []int) {
		dst[i] = src[offs[0]]
	})
	return out
}
