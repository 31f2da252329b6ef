package logreg

import (
	"fmt"
	"log"

	"github.com/born-ml/graphlr/internal/dataset"
	"github.com/born-ml/graphlr/internal/tensor"
	"github.com/born-ml/graphlr/internal/train"
)

// Data holds generated training and validation batches.
type Data struct {
	Train      train.Batches
	Validation train.Batches
}

// Generate draws the training and validation batches described by cfg.
//
// Both sets come from one generator, so they share the mixture centres.
func Generate(cfg Config) (Data, error) {
	if err := cfg.Validate(); err != nil {
		return Data{}, err
	}
	gen, err := dataset.NewMixtureGenerator(cfg.Mixture, tensor.Shape{cfg.Width, cfg.Height}, cfg.Seed)
	if err != nil {
		return Data{}, fmt.Errorf("logreg: %w", err)
	}

	var data Data
	data.Train.X, data.Train.Y, err = gen.Sample(cfg.BatchSize, cfg.TrainBatches)
	if err != nil {
		return Data{}, fmt.Errorf("logreg: training data: %w", err)
	}
	data.Validation.X, data.Validation.Y, err = gen.Sample(cfg.BatchSize, cfg.ValidationBatches)
	if err != nil {
		return Data{}, fmt.Errorf("logreg: validation data: %w", err)
	}
	return data, nil
}

// Run generates data, builds the model and trains it, logging progress to
// logger (stdout when nil).
func Run(cfg Config, logger *log.Logger) (train.History, error) {
	data, err := Generate(cfg)
	if err != nil {
		return train.History{}, err
	}
	model, err := Build(cfg)
	if err != nil {
		return train.History{}, err
	}

	driver := train.NewDriver(train.Config{Epochs: cfg.Epochs, BaseLR: cfg.BaseLR}, logger)
	return driver.Run(model.Step, model.Evaluate, data.Train, data.Validation)
}
