// Package metrics provides the classification scorers consumed by the
// landmarking measures.
package metrics

import (
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// Accuracy returns the fraction of predictions matching the true labels.
func Accuracy(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty label vector")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("Accuracy", n, len(yPred), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// BalancedAccuracy returns the mean of per-class recall, which compensates
// for class imbalance.
func BalancedAccuracy(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("BalancedAccuracy", "empty label vector")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("BalancedAccuracy", n, len(yPred), 0)
	}

	support := make(map[float64]int)
	hits := make(map[float64]int)
	for i := 0; i < n; i++ {
		support[yTrue[i]]++
		if yTrue[i] == yPred[i] {
			hits[yTrue[i]]++
		}
	}

	var sum float64
	for label, count := range support {
		sum += float64(hits[label]) / float64(count)
	}
	return sum / float64(len(support)), nil
}

// CohenKappa returns Cohen's kappa, the agreement between predictions and
// true labels corrected for chance agreement. A single-class degenerate
// input yields kappa 0.
func CohenKappa(yTrue, yPred []float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("CohenKappa", "empty label vector")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("CohenKappa", n, len(yPred), 0)
	}

	labels := make(map[float64]struct{})
	for i := 0; i < n; i++ {
		labels[yTrue[i]] = struct{}{}
		labels[yPred[i]] = struct{}{}
	}

	trueCount := make(map[float64]int)
	predCount := make(map[float64]int)
	agree := 0
	for i := 0; i < n; i++ {
		trueCount[yTrue[i]]++
		predCount[yPred[i]]++
		if yTrue[i] == yPred[i] {
			agree++
		}
	}

	po := float64(agree) / float64(n)
	var pe float64
	for label := range labels {
		pe += float64(trueCount[label]) * float64(predCount[label])
	}
	pe /= float64(n) * float64(n)

	if pe >= 1 {
		return 0, nil
	}
	return (po - pe) / (1 - pe), nil
}
