package exec

import (
	"github.com/born-ml/graphlr/internal/backend/cpu"
	"github.com/born-ml/graphlr/internal/graph"
)

// alignStrides returns, for each axis of out, the stride of the same-named
// axis in a tensor laid out as src, or 0 when src lacks it (broadcast).
func alignStrides(src, out graph.Axes) []int {
	srcStrides := src.Shape().ComputeStrides()
	strides := make([]int, len(out))
	for i, ax := range out {
		if j := src.Index(ax.Name); j >= 0 {
			strides[i] = srcStrides[j]
		}
	}
	return strides
}

// scatterStrides returns, for each axis of src, the stride of the
// same-named axis in a tensor laid out as out, or 0 when out lacks it
// (the axis is summed away).
func scatterStrides(src, out graph.Axes) []int {
	outStrides := out.Shape().ComputeStrides()
	strides := make([]int, len(src))
	for i, ax := range src {
		if j := out.Index(ax.Name); j >= 0 {
			strides[i] = outStrides[j]
		}
	}
	return strides
}

// contractSpec pairs the axes a and b share by name. Free axes keep their
// operand order, matching the result axes of graph.Dot.
func contractSpec(a, b graph.Axes) cpu.ContractSpec {
	var spec cpu.ContractSpec
	for i, ax := range a {
		if j := b.Index(ax.Name); j >= 0 {
			spec.AShared = append(spec.AShared, i)
			spec.BShared = append(spec.BShared, j)
		} else {
			spec.AFree = append(spec.AFree, i)
		}
	}
	for j, ax := range b {
		if !a.Contains(ax) {
			spec.BFree = append(spec.BFree, j)
		}
	}
	return spec
}
