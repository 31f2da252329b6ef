package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/graphlr/internal/tensor"
)

// ContractSpec lists which dimensions of each operand a contraction keeps
// and which it sums over. AShared[i] is paired with BShared[i].
type ContractSpec struct {
	AFree, AShared []int
	BShared, BFree []int
}

// Contract sums a*b over the paired shared dimensions. The result has a's
// free dimensions followed by b's free dimensions.
//
// Both operands are permuted into matrix layout (free x shared and
// shared x free) and multiplied with gonum.
func (cpu *CPUBackend) Contract(a, b *tensor.Dense, spec ContractSpec) (*tensor.Dense, error) {
	if len(spec.AShared) != len(spec.BShared) {
		return nil, fmt.Errorf("contract: %d shared dims in a, %d in b", len(spec.AShared), len(spec.BShared))
	}
	aShape, bShape := a.Shape(), b.Shape()

	k := 1
	for i := range spec.AShared {
		da, db := aShape[spec.AShared[i]], bShape[spec.BShared[i]]
		if da != db {
			return nil, fmt.Errorf("contract: %w: dim %d of a is %d, dim %d of b is %d",
				tensor.ErrShapeMismatch, spec.AShared[i], da, spec.BShared[i], db)
		}
		k *= da
	}

	ap, err := a.Permute(concat(spec.AFree, spec.AShared))
	if err != nil {
		return nil, fmt.Errorf("contract: a: %w", err)
	}
	bp, err := b.Permute(concat(spec.BShared, spec.BFree))
	if err != nil {
		return nil, fmt.Errorf("contract: b: %w", err)
	}

	outShape := make(tensor.Shape, 0, len(spec.AFree)+len(spec.BFree))
	m, n := 1, 1
	for _, d := range spec.AFree {
		outShape = append(outShape, aShape[d])
		m *= aShape[d]
	}
	for _, d := range spec.BFree {
		outShape = append(outShape, bShape[d])
		n *= bShape[d]
	}

	out := newResult("contract", outShape)
	am := mat.NewDense(m, k, ap.Data())
	bm := mat.NewDense(k, n, bp.Data())
	mat.NewDense(m, n, out.Data()).Mul(am, bm)
	return out, nil
}

func concat(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
