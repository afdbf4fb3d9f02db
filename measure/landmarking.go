package measure

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/model"
	"github.com/YuminosukeSato/gomfe/landmark"
	"github.com/YuminosukeSato/gomfe/metrics"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// landmarkArgs are shared by every landmarker: the fold count feeds the
// folds precomputation, score picks the evaluation metric.
func landmarkArgs() Args {
	return Args{"folds": 10, "score": "accuracy"}
}

// fitter builds and fits a classifier on one training fold.
type fitter func(env *Env, fold int, xTrain mat.Matrix, yTrain []float64) (model.Classifier, error)

func registerLandmarking(r *Registry) {
	register := func(name string, fit fitter) {
		r.Register(&Descriptor{
			Name:     name,
			Group:    GroupLandmarking,
			Task:     AppliesSupervised,
			Output:   OutputVector,
			Requires: []string{PreFolds},
			Defaults: landmarkArgs(),
			Compute: func(env *Env, args Args) ([]float64, error) {
				return foldScores(env, args, fit)
			},
		})
	}

	register("best_node", func(env *Env, _ int, x mat.Matrix, y []float64) (model.Classifier, error) {
		return stumpByGain(x, y, true)
	})
	register("elite_nn", func(env *Env, _ int, x mat.Matrix, y []float64) (model.Classifier, error) {
		best, err := stumpByGain(x, y, true)
		if err != nil {
			return nil, err
		}
		nn := newColumnClassifier(best.Feature, landmark.NewOneNN())
		if err := nn.Fit(x, y); err != nil {
			return nil, err
		}
		return nn, nil
	})
	register("linear_discr", func(env *Env, _ int, x mat.Matrix, y []float64) (model.Classifier, error) {
		clf := landmark.NewLinearDiscriminant()
		if err := clf.Fit(x, y); err != nil {
			return nil, err
		}
		return clf, nil
	})
	register("naive_bayes", func(env *Env, _ int, x mat.Matrix, y []float64) (model.Classifier, error) {
		clf := landmark.NewGaussianNB()
		if err := clf.Fit(x, y); err != nil {
			return nil, err
		}
		return clf, nil
	})
	register("one_nn", func(env *Env, _ int, x mat.Matrix, y []float64) (model.Classifier, error) {
		clf := landmark.NewOneNN()
		if err := clf.Fit(x, y); err != nil {
			return nil, err
		}
		return clf, nil
	})
	register("random_node", func(env *Env, fold int, x mat.Matrix, y []float64) (model.Classifier, error) {
		_, cols := x.Dims()
		rng := env.RNG(uint64(fold) + 1)
		clf := landmark.NewStump(rng.IntN(cols))
		if err := clf.Fit(x, y); err != nil {
			return nil, err
		}
		return clf, nil
	})
	register("worst_node", func(env *Env, _ int, x mat.Matrix, y []float64) (model.Classifier, error) {
		return stumpByGain(x, y, false)
	})
}

// foldScores trains a fresh landmarker per fold and scores it on the
// held-out part, producing one score per fold.
func foldScores(env *Env, args Args, fit fitter) ([]float64, error) {
	folds, err := foldsOf(env, args)
	if err != nil {
		return nil, err
	}
	score, err := scorerFor(stringArg(args, "score"))
	if err != nil {
		return nil, err
	}

	x := env.Data.X()
	y := env.Data.Y()
	out := make([]float64, len(folds))
	for i, fold := range folds {
		xTrain := landmark.Subset(x, fold.TrainIndices)
		yTrain := landmark.SubsetLabels(y, fold.TrainIndices)
		xTest := landmark.Subset(x, fold.TestIndices)
		yTest := landmark.SubsetLabels(y, fold.TestIndices)

		clf, err := fit(env, i, xTrain, yTrain)
		if err != nil {
			return nil, err
		}
		pred, err := clf.Predict(xTest)
		if err != nil {
			return nil, err
		}
		s, err := score(yTest, pred)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func scorerFor(name string) (func(yTrue, yPred []float64) (float64, error), error) {
	switch name {
	case "accuracy":
		return metrics.Accuracy, nil
	case "balanced-accuracy":
		return metrics.BalancedAccuracy, nil
	case "kappa":
		return metrics.CohenKappa, nil
	default:
		return nil, errors.NewConfigurationError(
			"score", `must be one of "accuracy", "balanced-accuracy", "kappa"`, name)
	}
}

// stumpByGain fits one stump per attribute and keeps the one with the
// best (or worst) split gain.
func stumpByGain(x mat.Matrix, y []float64, best bool) (*landmark.Stump, error) {
	_, cols := x.Dims()
	var picked *landmark.Stump
	for j := 0; j < cols; j++ {
		s := landmark.NewStump(j)
		if err := s.Fit(x, y); err != nil {
			return nil, err
		}
		if picked == nil || (best && s.Gain > picked.Gain) || (!best && s.Gain < picked.Gain) {
			picked = s
		}
	}
	return picked, nil
}

// columnClassifier restricts a classifier to a single attribute column.
// The elite nearest neighbor landmarker is a 1-NN over the most
// informative attribute only.
type columnClassifier struct {
	feature int
	inner   model.Classifier
}

func newColumnClassifier(feature int, inner model.Classifier) *columnClassifier {
	return &columnClassifier{feature: feature, inner: inner}
}

func (c *columnClassifier) Fit(x mat.Matrix, y []float64) error {
	return c.inner.Fit(singleColumn(x, c.feature), y)
}

func (c *columnClassifier) Predict(x mat.Matrix) ([]float64, error) {
	return c.inner.Predict(singleColumn(x, c.feature))
}

func singleColumn(x mat.Matrix, j int) *mat.Dense {
	rows, _ := x.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		out.Set(i, 0, x.At(i, j))
	}
	return out
}

var _ model.Classifier = (*columnClassifier)(nil)
