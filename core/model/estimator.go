package model

import "gonum.org/v1/gonum/mat"

// Classifier is the capability the landmarking and model-based measures
// consume: fit on a feature matrix with class labels, then predict labels.
type Classifier interface {
	// Fit trains the classifier. y holds one class label per row of X.
	Fit(X mat.Matrix, y []float64) error

	// Predict returns the predicted class label for each row of X.
	Predict(X mat.Matrix) ([]float64, error)
}

// Transformer is the capability consumed by fit-time attribute rescaling.
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the learned transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits on X and transforms it in one call.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
