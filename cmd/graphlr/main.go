// Package main provides the graphlr CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/born-ml/graphlr/internal/logreg"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("graphlr %s\n", version)
	case "train":
		runTrain(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("graphlr - logistic regression on a computation graph")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Train on synthetic data (see train -h)")
}

func runTrain(args []string) {
	defaults := logreg.DefaultConfig()

	fs := flag.NewFlagSet("train", flag.ExitOnError)
	epochs := fs.Int("epochs", defaults.Epochs, "Number of training epochs")
	batchSize := fs.Int("batch", defaults.BatchSize, "Batch size")
	lr := fs.Float64("lr", defaults.BaseLR, "Base learning rate, decayed as lr/(1+epoch)")
	trainBatches := fs.Int("train-batches", defaults.TrainBatches, "Number of training batches")
	valBatches := fs.Int("val-batches", defaults.ValidationBatches, "Number of validation batches")
	width := fs.Int("width", defaults.Width, "Feature axis C length")
	height := fs.Int("height", defaults.Height, "Feature axis D length")
	seed := fs.Uint64("seed", defaults.Seed, "Data generator seed")
	momentum := fs.Float64("momentum", defaults.Momentum, "SGD momentum (0 disables it)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	cfg := defaults
	cfg.Epochs = *epochs
	cfg.BatchSize = *batchSize
	cfg.BaseLR = *lr
	cfg.TrainBatches = *trainBatches
	cfg.ValidationBatches = *valBatches
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed
	cfg.Momentum = *momentum

	if _, err := logreg.Run(cfg, log.New(os.Stdout, "", 0)); err != nil {
		log.Fatalf("Training failed: %v", err)
	}
}
