package logger

import (
	"errors"
	"fmt"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/dispatcher"
	"github.com/philipp01105/hlog/presenter"
	"github.com/philipp01105/hlog/transform"
)

// Pipeline is one transform → present → dispatch chain attached to a logger
type Pipeline struct {
	Transformers []transform.Transformer
	// Presenter defaults to presenter.Message when nil
	Presenter  presenter.Presenter
	Dispatcher dispatcher.Dispatcher
	// Config is passed unchanged to the presenter and the dispatcher
	Config core.Config
}

// NewPipeline creates a pipeline delivering to d
func NewPipeline(d dispatcher.Dispatcher) *Pipeline {
	return &Pipeline{Dispatcher: d}
}

// WithTransformers appends transformers
func (p *Pipeline) WithTransformers(ts ...transform.Transformer) *Pipeline {
	p.Transformers = append(p.Transformers, ts...)
	return p
}

// WithPresenter sets the presenter
func (p *Pipeline) WithPresenter(pr presenter.Presenter) *Pipeline {
	p.Presenter = pr
	return p
}

// WithConfig sets the static configuration
func (p *Pipeline) WithConfig(cfg core.Config) *Pipeline {
	p.Config = cfg
	return p
}

func (p *Pipeline) describe() PipelineConfig {
	d := PipelineConfig{
		Presenter:  typeName(p.Presenter),
		Dispatcher: typeName(p.Dispatcher),
		Config:     p.Config,
	}
	for _, t := range p.Transformers {
		d.Transformers = append(d.Transformers, typeName(t))
	}
	return d
}

func typeName(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%T", v)
}

// DispatchEntry is a pipeline reached by a message, together with the
// state of the logger that declared it at collection time
type DispatchEntry struct {
	Pipeline       *Pipeline
	OwnerName      string
	OwnerLevel     core.Level
	OwnerPropagate bool
}

var defaultPresenter presenter.Presenter = presenter.Message{}

var errNilRecord = errors.New("transformer returned a nil record")

// process runs every entry in order. A failing stage only affects its
// own entry.
func (r *Registry) process(base *core.Record, entries []DispatchEntry) {
	for i := range entries {
		r.processEntry(base, &entries[i])
	}
}

func (r *Registry) processEntry(base *core.Record, e *DispatchEntry) {
	p := e.Pipeline
	rec := base.Clone()
	rec.LoggerName = e.OwnerName

	for _, t := range p.Transformers {
		// each transformer gets its own copy so a failing one cannot
		// leave partial edits on the last good record
		next, err := transformSafely(t, rec.Clone())
		if err == nil && next == nil {
			err = errNilRecord
		}
		if err != nil {
			rec.TransformerError = err.Error()
			r.reportStage(core.StageTransformer, e.OwnerName, err)
			break
		}
		rec = next
	}

	pr := p.Presenter
	if pr == nil {
		pr = defaultPresenter
	}
	msg, err := presentSafely(pr, rec, p.Config)
	if err != nil {
		rec.PresenterError = err.Error()
		msg = presenterFallback(rec, err)
		r.reportStage(core.StagePresenter, e.OwnerName, err)
	}
	rec.PresentedMessage = msg

	if err := dispatchSafely(p.Dispatcher, msg, rec, p.Config); err != nil {
		r.reportStage(core.StageDispatcher, e.OwnerName, err)
	}
}

// presenterFallback renders a record whose presenter failed. It only
// uses fields set at emission so it cannot fail itself.
func presenterFallback(rec *core.Record, err error) string {
	file, line := "?", 0
	if rec.Caller.Defined {
		file, line = rec.Caller.ShortFile, rec.Caller.Line
	}
	return fmt.Sprintf("[PRESENTER ERROR] %s %s:%d %s (logger '%s'): %v",
		rec.LevelName, file, line, rec.MessageFmt, rec.SourceLoggerName, err)
}

func transformSafely(t transform.Transformer, rec *core.Record) (out *core.Record, err error) {
	defer func() {
		if v := recover(); v != nil {
			out, err = nil, &core.PanicError{Value: v}
		}
	}()
	return t.Transform(rec)
}

func presentSafely(p presenter.Presenter, rec *core.Record, cfg core.Config) (out string, err error) {
	defer func() {
		if v := recover(); v != nil {
			out, err = "", &core.PanicError{Value: v}
		}
	}()
	return p.Present(rec, cfg)
}

func dispatchSafely(d dispatcher.Dispatcher, msg string, rec *core.Record, cfg core.Config) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &core.PanicError{Value: v}
		}
	}()
	return d.Dispatch(msg, rec, cfg)
}
