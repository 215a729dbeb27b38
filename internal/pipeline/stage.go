package pipeline

import (
	"errors"
	"fmt"
)

//go:generate go tool stringer -type=Stage -linecomment

// Stage identifies one step of the pipeline.
type Stage int

const (
	_ Stage = iota // zero value is not a stage

	StageResolveBindings  // resolve-bindings
	StageFetchBindings    // fetch-bindings
	StageGenerateBindings // generate-bindings
	StageRenderMeson      // render-meson
	StageResolveEngine    // resolve-engine
	StageFetchEngine      // fetch-engine
	StageLoadCorpus       // load-corpus
	StageMapHeaders       // map-headers
	StageEmitAdaptors     // emit-adaptors
	StageWriteReport      // write-report
)

// Status is the outcome of one stage. A stage that never ran because an
// earlier one failed is Skipped and carries the failing stage.
type Status struct {
	Stage   Stage
	Err     error
	Skipped bool
	// Cause is the failed stage a skipped stage depended on.
	Cause Stage
}

// OK reports whether the stage ran and succeeded.
func (s Status) OK() bool {
	return !s.Skipped && s.Err == nil
}

// Result collects the outcome of a run.
type Result struct {
	Statuses    []Status
	BindingsTag string
	EngineTag   string
}

// Status returns the status recorded for stage, if any.
func (r *Result) Status(stage Stage) (Status, bool) {
	for _, s := range r.Statuses {
		if s.Stage == stage {
			return s, true
		}
	}

	return Status{}, false
}

// Err joins the errors of every failed stage, or returns nil.
func (r *Result) Err() error {
	var errs []error

	for _, s := range r.Statuses {
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Stage, s.Err))
		}
	}

	return errors.Join(errs...)
}
