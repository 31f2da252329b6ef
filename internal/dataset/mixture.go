// Package dataset generates synthetic classification data.
//
// Samples are drawn from a Gaussian mixture: every mixture component owns a
// random centre and a sample of that component is its centre plus unit
// Gaussian noise. The label of a sample is the index of its component.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/graphlr/internal/tensor"
)

// ErrInvalidMixture is returned for mixture weights that are not a probability vector.
var ErrInvalidMixture = errors.New("invalid mixture weights")

// pvalTolerance bounds how far the mixture weights may sum away from 1.
const pvalTolerance = 1e-6

// pcgStream is the second PCG word; the seed only selects the first.
const pcgStream = 0x9e3779b97f4a7c15

// MixtureGenerator draws labelled samples from a Gaussian mixture.
type MixtureGenerator struct {
	pvals   []float64
	shape   tensor.Shape
	centres [][]float64
	label   distuv.Categorical
	noise   distuv.Normal
}

// NewMixtureGenerator creates a generator over components weighted by pvals.
//
// Every sample has the given feature shape. The same seed always yields the
// same sequence of batches.
func NewMixtureGenerator(pvals []float64, shape tensor.Shape, seed uint64) (*MixtureGenerator, error) {
	if err := validatePvals(pvals); err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("mixture: %w", err)
	}

	src := rand.NewPCG(seed, pcgStream)
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	features := shape.NumElements()
	centres := make([][]float64, len(pvals))
	for k := range centres {
		centres[k] = make([]float64, features)
		for i := range centres[k] {
			centres[k][i] = noise.Rand()
		}
	}

	return &MixtureGenerator{
		pvals:   append([]float64(nil), pvals...),
		shape:   shape.Clone(),
		centres: centres,
		label:   distuv.NewCategorical(pvals, src),
		noise:   noise,
	}, nil
}

func validatePvals(pvals []float64) error {
	if len(pvals) == 0 {
		return fmt.Errorf("mixture: %w: no components", ErrInvalidMixture)
	}
	total := 0.0
	for i, p := range pvals {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("mixture: %w: weight %d is %v", ErrInvalidMixture, i, p)
		}
		total += p
	}
	if math.Abs(total-1) > pvalTolerance {
		return fmt.Errorf("mixture: %w: weights sum to %v", ErrInvalidMixture, total)
	}
	return nil
}

// Components returns the number of mixture components.
func (m *MixtureGenerator) Components() int {
	return len(m.pvals)
}

// Centre returns a copy of the centre of component k.
func (m *MixtureGenerator) Centre(k int) []float64 {
	return append([]float64(nil), m.centres[k]...)
}

// Sample draws numBatches batches of batchSize samples each.
//
// Each x has the generator's feature shape with a trailing batch dimension,
// so column j of x is sample j. Each y has shape [batchSize] and holds the
// component index of every sample.
func (m *MixtureGenerator) Sample(batchSize, numBatches int) (xs, ys []*tensor.Dense, err error) {
	if batchSize <= 0 || numBatches < 0 {
		return nil, nil, fmt.Errorf("mixture: batch size %d, batches %d: %w",
			batchSize, numBatches, tensor.ErrInvalidShape)
	}

	features := m.shape.NumElements()
	xShape := append(m.shape.Clone(), batchSize)

	xs = make([]*tensor.Dense, 0, numBatches)
	ys = make([]*tensor.Dense, 0, numBatches)
	for range numBatches {
		x := tensor.Zeros(xShape)
		y := tensor.Zeros(tensor.Shape{batchSize})
		xd, yd := x.Data(), y.Data()

		for j := range batchSize {
			k := int(m.label.Rand())
			yd[j] = float64(k)
			for i := range features {
				xd[i*batchSize+j] = m.centres[k][i] + m.noise.Rand()
			}
		}

		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}
