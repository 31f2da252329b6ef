package train

// LearningRate returns the decayed rate for a zero-based epoch.
//
//	lr(epoch) = base / (1 + epoch)
func LearningRate(base float64, epoch int) float64 {
	return base / float64(1+epoch)
}
