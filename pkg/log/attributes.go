// Standard attribute keys for meta-feature extraction logging.
//
// Using these keys consistently across the library enables structured log
// analysis and filtering. Keys follow a hierarchical naming convention
// ("run.id", "data.samples", "measure.name").

package log

// Run and component context.
const (
	// RunIDKey carries the unique identifier of one extraction run.
	RunIDKey = "run.id"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "mfe", "measure", "summary", "tree"
	ComponentKey = "mfe.component"

	// OperationKey specifies the pipeline operation being performed.
	// Standard values: "fit", "extract", "extract_from_model",
	// "extract_with_confidence", "precompute", "dispatch", "summarize"
	OperationKey = "mfe.operation"

	// TaskKey records the detected task type: "supervised" or "unsupervised".
	TaskKey = "mfe.task"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of rows in the fitted dataset.
	SamplesKey = "data.samples"

	// AttributesKey is the number of attribute columns.
	AttributesKey = "data.attributes"

	// ClassesKey is the number of distinct target classes.
	ClassesKey = "data.classes"

	// NumericKey is the number of numeric attribute columns.
	NumericKey = "data.numeric"

	// CategoricalKey is the number of categorical attribute columns.
	CategoricalKey = "data.categorical"
)

// Measure and summary context.
const (
	// MeasureKey identifies a single measure by name.
	MeasureKey = "measure.name"

	// GroupKey identifies the measure's owning group.
	GroupKey = "measure.group"

	// PrecomputationKey identifies a precomputation step.
	PrecomputationKey = "precompute.name"

	// SummaryKey identifies a summarization function.
	SummaryKey = "summary.name"

	// FeatureKey identifies one reported feature (measure.summary).
	FeatureKey = "feature.name"
)

// Extraction progress and outcome.
const (
	// MeasureCountKey is the number of measures selected for a run.
	MeasureCountKey = "extract.measures"

	// FeatureCountKey is the number of reported features produced.
	FeatureCountKey = "extract.features"

	// FailedCountKey is the number of measures that failed in a run.
	FailedCountKey = "extract.failed"

	// FailedMeasuresKey lists the names of failed measures.
	FailedMeasuresKey = "extract.failed_measures"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Bootstrap context.
const (
	// ReplicatesKey is the number of bootstrap resamples requested.
	ReplicatesKey = "bootstrap.replicates"

	// ReplicateKey is the index of one bootstrap resample.
	ReplicateKey = "bootstrap.replicate"

	// ConfidenceKey is the requested confidence level.
	ConfidenceKey = "bootstrap.confidence"

	// WorkersKey is the bootstrap worker-pool size.
	WorkersKey = "bootstrap.workers"

	// SeedKey records the random seed for reproducibility.
	SeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
const (
	OperationFit          = "fit"
	OperationExtract      = "extract"
	OperationExtractModel = "extract_from_model"
	OperationConfidence   = "extract_with_confidence"
	OperationPrecompute   = "precompute"
	OperationDispatch     = "dispatch"
	OperationSummarize    = "summarize"

	TaskSupervised   = "supervised"
	TaskUnsupervised = "unsupervised"
)
