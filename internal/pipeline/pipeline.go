// Package pipeline sequences the godot-cpp-wrap stages.
//
// Each stage records a Status. When a stage fails, the stages that depend on
// it are recorded as skipped and independent branches still run. Working
// directories are removed when the run returns, whether or not their branch
// succeeded.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"godot-cpp-wrap/internal/adaptor"
	"godot-cpp-wrap/internal/bindgen"
	"godot-cpp-wrap/internal/bindings"
	"godot-cpp-wrap/internal/config"
	"godot-cpp-wrap/internal/corpus"
	"godot-cpp-wrap/internal/diagnostic"
	"godot-cpp-wrap/internal/fetch"
	"godot-cpp-wrap/internal/match"
	"godot-cpp-wrap/internal/meson"
	"godot-cpp-wrap/internal/report"
	"godot-cpp-wrap/internal/version"
)

// Mode selects which branches of the pipeline run.
type Mode int

const (
	// ModeAll renders meson.build and emits the module adaptor.
	ModeAll Mode = iota
	// ModeMeson renders meson.build only.
	ModeMeson
	// ModeAdaptor emits the module adaptor only.
	ModeAdaptor
)

// Pipeline runs the stages for one configuration.
type Pipeline struct {
	cfg        *config.Config
	resolver   *version.Resolver
	client     *http.Client
	logger     *slog.Logger
	reportPath string

	result *Result
	diags  diagnostic.Diagnostics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithHTTPClient sets the client used for the tag API and archive downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Pipeline) { p.client = c }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithReport writes a YAML mapping report to path after mapping.
func WithReport(path string) Option {
	return func(p *Pipeline) { p.reportPath = path }
}

// WithToken sets the bearer token sent to the tag API.
func WithToken(token string) Option {
	return func(p *Pipeline) { p.resolver.Token = token }
}

// New returns a Pipeline for cfg.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		resolver: version.NewResolver(cfg.API.BaseURL, ""),
		client:   http.DefaultClient,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.resolver.Client = p.client

	return p
}

// Diagnostics returns the warnings and errors of the last run.
func (p *Pipeline) Diagnostics() diagnostic.Diagnostics {
	return p.diags
}

// Run executes the stages selected by mode and returns their statuses.
func (p *Pipeline) Run(ctx context.Context, mode Mode) *Result {
	p.result = &Result{}
	p.diags = diagnostic.Diagnostics{}

	defer p.diags.Log(p.logger)

	tag, ok := p.resolve(ctx, StageResolveBindings, p.cfg.Bindings)
	if !ok {
		p.skipRemaining(mode, StageResolveBindings)
		return p.result
	}

	p.result.BindingsTag = tag

	defer p.cleanup(p.cfg.Bindings.WorkDir)

	if !p.step(StageFetchBindings, func() error { return p.fetch(ctx, p.cfg.Bindings, tag) }) {
		p.skipRemaining(mode, StageFetchBindings)
		return p.result
	}

	if !p.step(StageGenerateBindings, func() error { return p.generate(ctx) }) {
		p.skipRemaining(mode, StageGenerateBindings)
		return p.result
	}

	if mode != ModeAdaptor {
		p.step(StageRenderMeson, func() error { return p.renderMeson(tag) })
	}

	if mode != ModeMeson {
		p.runAdaptor(ctx, mode)
	}

	return p.result
}

// runAdaptor is the engine branch: fetch the engine, map, emit.
func (p *Pipeline) runAdaptor(ctx context.Context, mode Mode) {
	tag, ok := p.resolve(ctx, StageResolveEngine, p.cfg.Engine)
	if !ok {
		p.skipRemaining(mode, StageResolveEngine)
		return
	}

	p.result.EngineTag = tag

	defer p.cleanup(p.cfg.Engine.WorkDir)

	if !p.step(StageFetchEngine, func() error { return p.fetch(ctx, p.cfg.Engine, tag) }) {
		p.skipRemaining(mode, StageFetchEngine)
		return
	}

	var c *corpus.Corpus

	if !p.step(StageLoadCorpus, func() error {
		var err error

		c, err = corpus.Load(p.cfg.Engine.WorkDir, corpus.Options{
			ExcludeDirs:  p.cfg.Corpus.ExcludeDirs,
			ExcludeRoots: p.cfg.Corpus.ExcludeRoots,
			Extensions:   p.cfg.Corpus.Extensions,
		})
		if err == nil {
			p.logger.Info("loaded engine headers", "count", c.Len())
		}

		return err
	}) {
		p.skipRemaining(mode, StageLoadCorpus)
		return
	}

	var (
		headers []bindings.Header
		set     *match.ResultSet
	)

	if !p.step(StageMapHeaders, func() error {
		var err error

		headers, err = bindings.Enumerate(p.cfg.Bindings.WorkDir, p.cfg.Adaptor.IncludeRoots, p.cfg.Adaptor.Exclude)
		if err != nil {
			return err
		}

		set, err = match.NewMapper(c).MapAll(headers)
		if err != nil {
			return err
		}

		p.recordUnmatched(set, c)

		return nil
	}) {
		p.skipRemaining(mode, StageMapHeaders)
		return
	}

	p.step(StageEmitAdaptors, func() error {
		files, shadowed, err := adaptor.Emit(set, len(headers), p.cfg.Adaptor.OutputDir)
		if err != nil {
			return err
		}

		for _, sh := range shadowed {
			p.diags.AddWarning(diagnostic.CodeShadowed, "adaptor already written for "+sh.Kept+"; skipping "+sh.Dropped, sh.Path)
		}

		p.logger.Info("wrote module adaptor", "dir", p.cfg.Adaptor.OutputDir,
			"files", len(files), "unmatched", len(set.Unmatched()))

		return nil
	})

	if p.reportPath != "" {
		p.step(StageWriteReport, func() error {
			return report.WriteFile(report.New(p.result.BindingsTag, tag, set), p.reportPath)
		})
	}
}

func (p *Pipeline) resolve(ctx context.Context, stage Stage, repo config.Repository) (string, bool) {
	var tag string

	ok := p.step(stage, func() error {
		var err error

		tag, err = p.resolver.Latest(ctx, repo.Owner, repo.Name)
		if err == nil {
			p.logger.Info("latest tagged version", "repo", repo.Slug(), "tag", tag)
		}

		return err
	})

	return tag, ok
}

func (p *Pipeline) fetch(ctx context.Context, repo config.Repository, tag string) error {
	if repo.Archive != "" {
		return fetch.Download(ctx, p.client, repo.ArchiveURL(tag), repo.WorkDir)
	}

	return fetch.Clone(ctx, repo.URL, tag, repo.WorkDir)
}

func (p *Pipeline) generate(ctx context.Context) error {
	g := p.cfg.Generator

	return bindgen.Run(ctx, bindgen.Options{
		RepoDir:   p.cfg.Bindings.WorkDir,
		Script:    g.Script,
		Command:   g.Command,
		Schemas:   g.Schemas,
		OutputDir: g.OutputDir,
		Precision: g.Precision,
	})
}

func (p *Pipeline) renderMeson(tag string) error {
	generated, core, err := bindgen.Sources(p.cfg.Bindings.WorkDir)
	if err != nil {
		return err
	}

	g := p.cfg.Generator

	d := meson.DefaultDescriptor(version.Release(tag))
	d.Generator = "./" + filepath.Base(g.Script)
	d.Schemas = g.Schemas
	d.OutputDir = g.OutputDir
	d.GeneratedSources = generated
	d.CoreSources = core

	if err := meson.WriteFile(d, p.cfg.Meson.Output); err != nil {
		return err
	}

	p.logger.Info("generated meson.build", "path", p.cfg.Meson.Output,
		"generated_sources", len(generated), "core_sources", len(core))

	return nil
}

func (p *Pipeline) recordUnmatched(set *match.ResultSet, c *corpus.Corpus) {
	names := c.Names()

	for _, r := range set.Unmatched() {
		msg := fmt.Sprintf("no engine header declares %s", r.Candidate.Identifier())
		if r.Binding.FileName() == adaptor.AggregateHeaderName {
			p.diags.AddInfo(diagnostic.CodeUnmatched, msg+"; using the built-in aggregate header", r.Binding.Rel)
			continue
		}

		p.diags.AddWarning(diagnostic.CodeUnmatched, msg, r.Binding.Rel, match.Suggest(r.Candidate, names, 3)...)
	}
}

// step runs fn as stage and records its status.
func (p *Pipeline) step(stage Stage, fn func() error) bool {
	p.logger.Debug("stage started", "stage", stage)

	err := fn()
	p.result.Statuses = append(p.result.Statuses, Status{Stage: stage, Err: err})

	if err != nil {
		p.diags.AddError(diagnostic.CodeStageFailed, err.Error(), stage.String())
		return false
	}

	p.logger.Debug("stage finished", "stage", stage)

	return true
}

// skipRemaining records every stage of mode that has not run as skipped
// because of cause.
func (p *Pipeline) skipRemaining(mode Mode, cause Stage) {
	for _, stage := range p.stages(mode) {
		if _, ran := p.result.Status(stage); ran {
			continue
		}

		p.result.Statuses = append(p.result.Statuses, Status{Stage: stage, Skipped: true, Cause: cause})
		p.diags.AddInfo(diagnostic.CodeSkipped, "skipped after "+cause.String()+" failed", stage.String())
	}
}

// stages lists the stages mode runs, in order.
func (p *Pipeline) stages(mode Mode) []Stage {
	stages := []Stage{
		StageResolveBindings, StageFetchBindings, StageGenerateBindings, StageRenderMeson,
		StageResolveEngine, StageFetchEngine, StageLoadCorpus, StageMapHeaders, StageEmitAdaptors,
	}

	if p.reportPath != "" {
		stages = append(stages, StageWriteReport)
	}

	switch mode {
	case ModeMeson:
		return stages[:slices.Index(stages, StageRenderMeson)+1]
	case ModeAdaptor:
		return slices.DeleteFunc(stages, func(s Stage) bool { return s == StageRenderMeson })
	default:
		return stages
	}
}

func (p *Pipeline) cleanup(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.diags.AddWarning(diagnostic.CodeCleanup, err.Error(), dir)
		return
	}

	p.logger.Debug("removed working directory", "dir", dir)
}
