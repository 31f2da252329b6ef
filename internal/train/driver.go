// Package train runs mini-batch gradient descent over compiled computations.
//
// The driver does not know about graphs: it receives a step function that
// applies one update and an evaluation function that computes a loss, and it
// reports the held-out loss after every epoch.
//
// Example:
//
//	driver := train.NewDriver(train.DefaultConfig(), log.New(os.Stdout, "", 0))
//	history, err := driver.Run(model.Step, model.Evaluate, trainSet, validationSet)
package train

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/born-ml/graphlr/internal/tensor"
)

// Config holds the training loop settings.
type Config struct {
	Epochs int     // Number of passes over the training batches
	BaseLR float64 // Learning rate of epoch 0, decayed by LearningRate
}

// DefaultConfig returns the settings of the reference run.
func DefaultConfig() Config {
	return Config{
		Epochs: 10,
		BaseLR: 5.0,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Epochs < 0 {
		return fmt.Errorf("train: negative epoch count %d", c.Epochs)
	}
	if c.BaseLR <= 0 {
		return fmt.Errorf("train: base learning rate %v must be positive", c.BaseLR)
	}
	return nil
}

// StepResult is what one training step reports.
type StepResult struct {
	Loss    float64       // Loss before the update
	W       *tensor.Dense // Weight after the update
	B       *tensor.Dense // Bias after the update
	Updated bool          // Confirmation that the updates were applied
}

// StepFunc applies one gradient descent update on a batch.
type StepFunc func(lr float64, x, y *tensor.Dense) (StepResult, error)

// Batches pairs feature and label batches by index.
type Batches struct {
	X []*tensor.Dense
	Y []*tensor.Dense
}

// Len returns the number of usable pairs.
func (b Batches) Len() int {
	return min(len(b.X), len(b.Y))
}

// EpochReport describes the state at the end of one epoch.
type EpochReport struct {
	Epoch          int
	LR             float64
	W              *tensor.Dense // Weight after the last step of the epoch
	B              *tensor.Dense // Bias after the last step of the epoch
	Loss           float64       // Training loss of the last step of the epoch
	ValidationLoss float64
}

// History is the record of a completed run.
type History struct {
	Baseline float64 // Validation loss before any update
	Epochs   []EpochReport
}

// Final returns the last epoch report, or false when no epoch ran.
func (h History) Final() (EpochReport, bool) {
	if len(h.Epochs) == 0 {
		return EpochReport{}, false
	}
	return h.Epochs[len(h.Epochs)-1], true
}

// Driver runs the training loop and logs progress.
type Driver struct {
	config Config
	logger *log.Logger
}

// NewDriver creates a driver. A nil logger writes bare lines to stdout.
func NewDriver(config Config, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(os.Stdout, "", 0)
	}
	return &Driver{config: config, logger: logger}
}

// Run trains for the configured number of epochs.
//
// It logs the validation loss of the initial parameters once, then for every
// epoch i applies step to each training batch in order with
// LearningRate(base, i) and logs the end-of-epoch parameters with the
// validation loss. Only the last step of an epoch is reported. The first
// error aborts the run.
func (d *Driver) Run(step StepFunc, eval EvalFunc, trainSet, validation Batches) (History, error) {
	if err := d.config.Validate(); err != nil {
		return History{}, err
	}
	if trainSet.Len() == 0 {
		return History{}, fmt.Errorf("train: training set: %w", ErrNoBatches)
	}

	baseline, err := AverageLoss(eval, validation.X, validation.Y)
	if err != nil {
		return History{}, fmt.Errorf("train: baseline: %w", err)
	}
	d.logger.Printf("Starting avg loss: %v", baseline)

	history := History{
		Baseline: baseline,
		Epochs:   make([]EpochReport, 0, d.config.Epochs),
	}
	for i := range d.config.Epochs {
		report, err := d.epoch(i, step, eval, trainSet, validation)
		if err != nil {
			return history, err
		}
		history.Epochs = append(history.Epochs, report)
		d.logger.Printf("After epoch %d: W: %v, b: %v, avg loss %v",
			i, transposed(report.W), report.B, report.ValidationLoss)
	}
	return history, nil
}

// transposed renders a weight for display.
func transposed(w *tensor.Dense) *tensor.Dense {
	if w == nil {
		return nil
	}
	return w.Transpose()
}

var errNotApplied = errors.New("updates not applied")

func (d *Driver) epoch(i int, step StepFunc, eval EvalFunc, trainSet, validation Batches) (EpochReport, error) {
	lr := LearningRate(d.config.BaseLR, i)

	var last StepResult
	for j := range trainSet.Len() {
		res, err := step(lr, trainSet.X[j], trainSet.Y[j])
		if err != nil {
			return EpochReport{}, fmt.Errorf("train: epoch %d batch %d: %w", i, j, err)
		}
		if !res.Updated {
			return EpochReport{}, fmt.Errorf("train: epoch %d batch %d: %w", i, j, errNotApplied)
		}
		last = res
	}

	loss, err := AverageLoss(eval, validation.X, validation.Y)
	if err != nil {
		return EpochReport{}, fmt.Errorf("train: epoch %d: %w", i, err)
	}

	return EpochReport{
		Epoch:          i,
		LR:             lr,
		W:              last.W,
		B:              last.B,
		Loss:           last.Loss,
		ValidationLoss: loss,
	}, nil
}
