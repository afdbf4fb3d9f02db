package mfe

import (
	"math"
	"strconv"

	"github.com/YuminosukeSato/gomfe/measure"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
	"github.com/YuminosukeSato/gomfe/pkg/log"
	"github.com/YuminosukeSato/gomfe/summary"
)

// dispatch evaluates the descriptors in order and appends their summarized
// features to res. Measures listed in incompatible are reported missing
// without being invoked. Failures are absorbed per measure: the dataset
// and cache are read-only here and a failing measure never affects its
// siblings.
func (ex *Extractor) dispatch(res *Result, env *measure.Env, descs []*measure.Descriptor, args PerMeasureArgs, incompatible map[string]error, logger log.Logger) {
	var failed []string
	for _, desc := range descs {
		merged := desc.MergedArgs(args[desc.Name])

		cause := incompatible[desc.Name]
		if cause == nil {
			cause = ex.checkRequires(env, desc, merged)
		}

		var values []float64
		if cause == nil {
			var err error
			values, err = computeMeasure(env, desc, merged)
			if err != nil {
				cause = errors.NewMeasureError(desc.Name, err)
			}
		}

		if cause != nil {
			failed = append(failed, desc.Name)
			logger.Debug("measure failed",
				log.MeasureKey, desc.Name,
				log.GroupKey, string(desc.Group),
				"error", cause,
			)
			errors.Warn(errors.NewExtractionWarning(desc.Name, cause))
		}
		ex.summarize(res, desc, values, cause)
	}

	if len(failed) > 0 {
		logger.Warn("extraction degraded",
			log.FailedCountKey, len(failed),
			log.FailedMeasuresKey, failed,
		)
	}
	logger.Info("extraction finished",
		log.MeasureCountKey, len(descs),
		log.FeatureCountKey, res.Len(),
		log.FailedCountKey, len(failed),
	)
}

// checkRequires verifies that every precomputation the descriptor depends
// on is available in the run cache, returning the recorded failure
// otherwise.
func (ex *Extractor) checkRequires(env *measure.Env, desc *measure.Descriptor, merged measure.Args) error {
	for _, req := range desc.Requires {
		pre, ok := ex.reg.Precomputer(req)
		if !ok {
			return errors.NewConfigurationError("requires", "unknown precomputation", req)
		}
		_, err, computed := env.Cache.Lookup(pre.CacheKey(merged))
		if err != nil {
			return err
		}
		if !computed {
			return errors.NewPrecomputationError(req, errors.New("result unavailable"))
		}
	}
	return nil
}

// computeMeasure invokes the measure under panic isolation. A panicking
// measure yields a PanicError instead of tearing down the run.
func computeMeasure(env *measure.Env, desc *measure.Descriptor, merged measure.Args) (values []float64, err error) {
	defer errors.Recover(&err, "measure "+desc.Name)
	return desc.Compute(env, merged)
}

// summarize reduces one measure's raw output into reported features.
// Scalar outputs pass through unsuffixed unless scalar summaries are
// enabled; vector outputs are cleaned of non-finite entries once, then
// every configured summary reduces the same slice. Missing measures still
// emit every feature name they would otherwise produce.
func (ex *Extractor) summarize(res *Result, desc *measure.Descriptor, values []float64, cause error) {
	missing := cause != nil

	if desc.Output == measure.OutputScalar && !ex.cfg.scalarSummaries {
		f := Feature{Name: desc.Name, Missing: missing, Cause: cause}
		switch {
		case missing:
		case len(values) == 0:
			f.Missing = true
			f.Cause = errors.NewValueError(desc.Name, "empty result")
		default:
			v := values[0]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				f.Missing = true
				f.Cause = errors.NewValueError(desc.Name, "non-finite result")
			} else {
				f.Value = v
			}
		}
		res.add(f)
		return
	}

	var clean []float64
	if !missing {
		clean = make([]float64, 0, len(values))
		for _, v := range values {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				clean = append(clean, v)
			}
		}
	}

	for _, in := range ex.sums {
		names := featureNames(desc.Name, in)
		if missing {
			for _, name := range names {
				res.add(Feature{Name: name, Missing: true, Cause: cause})
			}
			continue
		}
		out, err := in.Apply(clean)
		for i, name := range names {
			f := Feature{Name: name}
			switch {
			case err != nil:
				f.Missing = true
				f.Cause = err
			case i < len(out) && !math.IsNaN(out[i]) && !math.IsInf(out[i], 0):
				f.Value = out[i]
			default:
				f.Missing = true
				f.Cause = errors.NewValueError(name, "non-finite result")
			}
			res.add(f)
		}
	}
}

// featureNames returns the reported names one summary produces for a
// measure: "measure.summary" for scalar summaries, "measure.summary.<i>"
// for vector-valued ones.
func featureNames(measureName string, in *summary.Instance) []string {
	width := in.Width()
	if width == 1 {
		return []string{measureName + "." + in.Name()}
	}
	out := make([]string, width)
	for i := range out {
		out[i] = measureName + "." + in.Name() + "." + strconv.Itoa(i)
	}
	return out
}
