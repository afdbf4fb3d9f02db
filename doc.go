// Package gomfe is a meta-feature extraction engine for tabular datasets.
//
// Meta-features are dataset characterizations used in meta-learning: given a
// feature matrix and optional class labels, gomfe computes measures from
// seven groups (general, statistical, info-theory, model-based, landmarking,
// clustering and complexity) and reduces vector-valued measures through
// configurable summary functions.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/YuminosukeSato/gomfe/mfe"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 2, []float64{1, 0, 2, 1, 11, 10, 12, 11})
//	    y := []float64{0, 0, 1, 1}
//
//	    ex, err := mfe.NewExtractor(mfe.WithGroups("general", "statistical"))
//	    if err != nil {
//	        panic(err)
//	    }
//	    if err := ex.Fit(X, y); err != nil {
//	        panic(err)
//	    }
//	    res, err := ex.Extract(nil)
//	    if err != nil {
//	        panic(err)
//	    }
//	    for i, name := range res.Names() {
//	        fmt.Println(name, res.Values()[i])
//	    }
//	}
//
// # Packages
//
//   - mfe: the public extraction API (Extractor, options, results)
//   - measure: measure descriptors, the registry and precomputations
//   - summary: the summarization engine's reduction functions
//   - core/dataset: validated dataset representation and column typing
//   - tree: the CART classifier backing the model-based measures
//   - landmark: the simple learners backing the landmarking measures
//   - metrics: classification scores used by landmarking
//   - preprocessing: attribute rescaling
//
// Individual measure failures never abort an extraction: they surface as
// missing features with a typed cause. Runs are reproducible under a fixed
// seed, including bootstrap confidence intervals.
package gomfe
