// Package errors provides the error taxonomy and warning system for gomfe.
//
// The package wraps github.com/cockroachdb/errors so that every constructed
// error carries a stack trace, and defines structured error types for the
// meta-feature extraction pipeline. Configuration-time errors are fatal;
// per-measure computational errors are absorbed into the extraction result
// as missing values and surfaced through the warning handler.
package errors

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("gomfe-Warning: %v\n", w)
	}
	// zerolog sink, set lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the library-wide warning handler.
// Use it to silence or redirect non-fatal extraction warnings.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc routes warnings through a zerolog-backed function.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the zerolog sink when one is configured,
// falling back to the plain handler otherwise.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ExtractionWarning reports a measure whose computation failed during a run.
// The run continues; the measure's features are reported as missing.
type ExtractionWarning struct {
	Measure string
	Cause   error
}

func (w *ExtractionWarning) Error() string {
	return fmt.Sprintf("measure %q failed and is reported as missing: %v", w.Measure, w.Cause)
}

func (w *ExtractionWarning) Unwrap() error {
	return w.Cause
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *ExtractionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("measure", w.Measure).
		AnErr("cause", w.Cause).
		Str("type", "ExtractionWarning")
}

// NewExtractionWarning creates a new ExtractionWarning.
func NewExtractionWarning(measure string, cause error) *ExtractionWarning {
	return &ExtractionWarning{Measure: measure, Cause: cause}
}

// ===========================================================================
//
//	Configuration-time errors (fatal, raised before any computation)
//
// ===========================================================================

// ConfigurationError reports an invalid option, group, summary name or
// malformed custom argument. It is raised before any computation begins.
type ConfigurationError struct {
	Param  string
	Reason string
	Value  interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gomfe: invalid configuration for %q: %s (got: %v)", e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a new ConfigurationError with a stack trace.
func NewConfigurationError(param, reason string, value interface{}) error {
	err := &ConfigurationError{Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// UnknownMeasureError reports an explicitly requested measure name that is
// not present in the registry, together with the closest valid names.
type UnknownMeasureError struct {
	Name    string
	Closest []string
}

func (e *UnknownMeasureError) Error() string {
	if len(e.Closest) == 0 {
		return fmt.Sprintf("gomfe: unknown measure %q", e.Name)
	}
	closest := make([]string, len(e.Closest))
	copy(closest, e.Closest)
	sort.Strings(closest)
	return fmt.Sprintf("gomfe: unknown measure %q. Did you mean: %s", e.Name, strings.Join(closest, ", "))
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *UnknownMeasureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("measure", e.Name).
		Strs("closest", e.Closest).
		Str("type", "UnknownMeasureError")
}

// NewUnknownMeasureError creates a new UnknownMeasureError with a stack trace.
func NewUnknownMeasureError(name string, closest []string) error {
	err := &UnknownMeasureError{Name: name, Closest: closest}
	return errors.WithStack(err)
}

// CyclicDependencyError reports a cycle among precomputation ordering
// declarations. The names carry the members of the detected cycle.
type CyclicDependencyError struct {
	Names []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("gomfe: cyclic precomputation ordering involving: %s", strings.Join(e.Names, " -> "))
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *CyclicDependencyError) MarshalZerologObject(event *zerolog.Event) {
	event.Strs("names", e.Names).
		Str("type", "CyclicDependencyError")
}

// NewCyclicDependencyError creates a new CyclicDependencyError with a stack trace.
func NewCyclicDependencyError(names []string) error {
	err := &CyclicDependencyError{Names: names}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Run-time per-feature errors (absorbed as missing, never run-fatal)
//
// ===========================================================================

// IncompatibleMeasureError reports an explicitly requested measure that is
// inapplicable to the detected task type. The measure is reported as missing
// with this cause; the run continues.
type IncompatibleMeasureError struct {
	Measure string
	Task    string
}

func (e *IncompatibleMeasureError) Error() string {
	return fmt.Sprintf("gomfe: measure %q is not applicable to a %s dataset", e.Measure, e.Task)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *IncompatibleMeasureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("measure", e.Measure).
		Str("task", e.Task).
		Str("type", "IncompatibleMeasureError")
}

// NewIncompatibleMeasureError creates a new IncompatibleMeasureError with a stack trace.
func NewIncompatibleMeasureError(measure, task string) error {
	err := &IncompatibleMeasureError{Measure: measure, Task: task}
	return errors.WithStack(err)
}

// PrecomputationError reports a precomputation step that failed. Every
// measure depending on the failed step is reported as missing with this
// cause; independent measures are unaffected.
type PrecomputationError struct {
	Name string
	Err  error
}

func (e *PrecomputationError) Error() string {
	return fmt.Sprintf("gomfe: precomputation %q failed: %v", e.Name, e.Err)
}

func (e *PrecomputationError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *PrecomputationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("precomputation", e.Name).
		AnErr("cause", e.Err).
		Str("type", "PrecomputationError")
}

// NewPrecomputationError creates a new PrecomputationError with a stack trace.
func NewPrecomputationError(name string, err error) error {
	pErr := &PrecomputationError{Name: name, Err: err}
	return errors.WithStack(pErr)
}

// MeasureError reports a failure inside an individual measure's computation,
// including recovered panics. It is caught per measure and never aborts
// sibling measures.
type MeasureError struct {
	Measure string
	Err     error
}

func (e *MeasureError) Error() string {
	return fmt.Sprintf("gomfe: measure %q failed: %v", e.Measure, e.Err)
}

func (e *MeasureError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *MeasureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("measure", e.Measure).
		AnErr("cause", e.Err).
		Str("type", "MeasureError")
}

// NewMeasureError creates a new MeasureError with a stack trace.
func NewMeasureError(measure string, err error) error {
	mErr := &MeasureError{Measure: measure, Err: err}
	return errors.WithStack(mErr)
}

// ===========================================================================
//
//	Structural errors (hard failures surfaced to the caller)
//
// ===========================================================================

// NotFittedError reports a call to Extract or a related method before a
// successful Fit.
type NotFittedError struct {
	TypeName string
	Method   string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("gomfe: %s: not fitted yet. Call Fit() before using %s()", e.TypeName, e.Method)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type_name", e.TypeName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(typeName, method string) error {
	err := &NotFittedError{TypeName: typeName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports an input whose dimension differs from the expected
// one on a given axis (0 = rows, 1 = columns).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("gomfe: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument or data value that is invalid for an
// operation, such as non-finite entries in the feature matrix.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("gomfe: %s: %s", e.Op, e.Message)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("message", e.Message).
		Str("type", "ValueError")
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrapper functions
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Sentinel errors
//
// ===========================================================================

var (
	// ErrNotApplicable is returned by a measure that declares its input
	// degenerate (for example, no numeric attributes). The measure is
	// reported as missing, distinguishable from a failure by this cause.
	ErrNotApplicable = New("measure not applicable to the given data")

	// ErrInsufficientBootstrapSamples marks a confidence interval that
	// could not be computed because fewer than two bootstrap replicates
	// produced a value for the feature.
	ErrInsufficientBootstrapSamples = New("fewer than two bootstrap samples available")

	// ErrEmptyData reports empty input data.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix reports a singular matrix where an inverse or
	// decomposition was required.
	ErrSingularMatrix = New("singular matrix")
)
