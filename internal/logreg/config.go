package logreg

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid logistic regression config")

// Config holds model, data and training settings.
type Config struct {
	Width             int       // Length of feature axis C
	Height            int       // Length of feature axis D
	BatchSize         int       // Length of batch axis N
	BaseLR            float64   // Learning rate of epoch 0
	Epochs            int       // Number of training epochs
	TrainBatches      int       // Training batches generated per run
	ValidationBatches int       // Validation batches generated per run
	Mixture           []float64 // Class probabilities of the generator
	Seed              uint64    // Generator seed
	Momentum          float64   // SGD momentum (0 disables it)
}

// DefaultConfig returns the reference setup: 4×1 features, batches of 128,
// 10 training and 4 validation batches, base rate 5 over 10 epochs.
func DefaultConfig() Config {
	return Config{
		Width:             4,
		Height:            1,
		BatchSize:         128,
		BaseLR:            5.0,
		Epochs:            10,
		TrainBatches:      10,
		ValidationBatches: 4,
		Mixture:           []float64{0.5, 0.5},
		Seed:              0,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: feature shape %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: batch size %d", ErrInvalidConfig, c.BatchSize)
	case c.TrainBatches <= 0 || c.ValidationBatches <= 0:
		return fmt.Errorf("%w: %d training and %d validation batches",
			ErrInvalidConfig, c.TrainBatches, c.ValidationBatches)
	case c.Epochs < 0:
		return fmt.Errorf("%w: epochs %d", ErrInvalidConfig, c.Epochs)
	case c.BaseLR <= 0:
		return fmt.Errorf("%w: base learning rate %v", ErrInvalidConfig, c.BaseLR)
	case len(c.Mixture) != 2:
		// Labels feed a binary cross entropy.
		return fmt.Errorf("%w: %d mixture components, want 2", ErrInvalidConfig, len(c.Mixture))
	}
	return nil
}
