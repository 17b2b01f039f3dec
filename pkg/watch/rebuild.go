package watch

import (
	"log/slog"
	"time"

	"github.com/gnana997/figmagen/pkg/parser"
	"github.com/gnana997/figmagen/pkg/pipeline"
	"github.com/gnana997/figmagen/pkg/util"
)

// Report describes one rebuild.
type Report struct {
	Batch    Batch
	Reloaded bool
	Result   *pipeline.Result
	Err      error
	Duration time.Duration
}

// Rebuilder turns batches into pipeline rebuilds: a changed registry or
// theme file reloads everything and changed sources are rescanned.
type Rebuilder struct {
	p      *pipeline.Pipeline
	logger *slog.Logger

	// WriteOutputs rewrites the output directory after each refresh.
	WriteOutputs bool

	// OnReport, when set, is called after every rebuild.
	OnReport func(Report)
}

// NewRebuilder creates a rebuilder for p that writes outputs.
func NewRebuilder(p *pipeline.Pipeline, logger *slog.Logger) *Rebuilder {
	return &Rebuilder{p: p, logger: util.OrDefault(logger), WriteOutputs: true}
}

// Filter accepts pipeline inputs and source files.
func (r *Rebuilder) Filter(path string) bool {
	return r.p.IsInput(path) || parser.GrammarForPath(path) != parser.GrammarUnknown
}

// Roots returns the paths to watch: source roots, theme files and the
// registry.
func (r *Rebuilder) Roots() []string {
	cfg := r.p.Config()
	roots := append([]string{}, cfg.Sources...)
	roots = append(roots, cfg.Theme...)
	if cfg.Registry != "" {
		roots = append(roots, cfg.Registry)
	}
	return roots
}

// Refresh updates the pipeline State for one batch. reloaded reports
// whether a full Reload ran.
func (r *Rebuilder) Refresh(b Batch) (st *pipeline.State, reloaded bool, err error) {
	var sources []string
	for _, f := range b.Files {
		if r.p.IsInput(f) {
			reloaded = true
		} else {
			sources = append(sources, f)
		}
	}
	if reloaded {
		st, err = r.p.Reload()
	} else {
		st, err = r.p.Rescan(sources)
	}
	return st, reloaded, err
}

// Handle refreshes, then writes outputs when WriteOutputs is set.
func (r *Rebuilder) Handle(b Batch) {
	start := time.Now()
	rep := Report{Batch: b}

	var st *pipeline.State
	st, rep.Reloaded, rep.Err = r.Refresh(b)
	if rep.Err == nil && r.WriteOutputs {
		rep.Result, rep.Err = r.p.WriteAll(st)
	}
	rep.Duration = time.Since(start)

	if rep.Err != nil {
		r.logger.Error("rebuild failed", "files", len(b.Files), "error", rep.Err)
	} else {
		r.logger.Info("rebuilt",
			"files", len(b.Files),
			"reloaded", rep.Reloaded,
			"wrote", rep.Result != nil,
			"ms", rep.Duration.Milliseconds())
	}
	if r.OnReport != nil {
		r.OnReport(rep)
	}
}

// Watch starts a watcher over every root wired to r. The caller stops it.
func (r *Rebuilder) Watch(opts Options) (*Watcher, error) {
	if opts.Filter == nil {
		opts.Filter = r.Filter
	}
	w, err := New(r.Handle, opts, r.logger)
	if err != nil {
		return nil, err
	}
	for _, root := range r.Roots() {
		if err := w.Add(root); err != nil {
			w.Stop()
			return nil, err
		}
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
