package train

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/graphlr/internal/tensor"
)

// ErrNoBatches is returned when there is nothing to evaluate or train on.
var ErrNoBatches = errors.New("no batches")

// EvalFunc computes the loss of one batch without touching parameters.
type EvalFunc func(x, y *tensor.Dense) (float64, error)

// AverageLoss sums eval over the pairs of xs and ys and divides by the batch
// size of the last x.
//
// Pairs are formed up to the shorter of the two lists. The batch size of a
// tensor is its last dimension (1 for scalars). Note that the divisor is not
// the number of batches: with a per-batch mean loss and equal batch sizes the
// result is the summed loss scaled by 1/batchSize.
func AverageLoss(eval EvalFunc, xs, ys []*tensor.Dense) (float64, error) {
	n := min(len(xs), len(ys))
	if n == 0 {
		return 0, fmt.Errorf("average loss: %w", ErrNoBatches)
	}

	losses := make([]float64, n)
	for i := range n {
		l, err := eval(xs[i], ys[i])
		if err != nil {
			return 0, fmt.Errorf("average loss: batch %d: %w", i, err)
		}
		losses[i] = l
	}

	return floats.Sum(losses) / float64(batchSize(xs[n-1])), nil
}

func batchSize(x *tensor.Dense) int {
	shape := x.Shape()
	if len(shape) == 0 {
		return 1
	}
	return shape[len(shape)-1]
}
