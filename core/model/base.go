// Package model defines the estimator lifecycle shared by every fitted
// component in gomfe: the extractor itself, the landmarking classifiers, the
// decision tree and the preprocessing scalers.
package model

// EstimatorState represents the fitted state of an estimator.
type EstimatorState int

const (
	// NotFitted means Fit has not completed successfully yet.
	NotFitted EstimatorState = iota
	// Fitted means the estimator is ready for use.
	Fitted
)

// BaseEstimator is the embedded base of every estimator.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the estimator has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to the unfitted state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
