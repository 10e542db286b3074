package config

import (
	"fmt"
	"io"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/dispatcher"
	"github.com/philipp01105/hlog/logger"
)

// File is the TOML document layout
type File struct {
	Loggers map[string]LoggerSection `toml:"loggers"`
}

// LoggerSection configures one logger
type LoggerSection struct {
	Level     *core.Level       `toml:"level"`
	Propagate *bool             `toml:"propagate"`
	Pipelines []PipelineSection `toml:"pipelines"`
}

// PipelineSection names the components of one pipeline
type PipelineSection struct {
	Transformers []string               `toml:"transformers"`
	Presenter    string                 `toml:"presenter"`
	Dispatcher   string                 `toml:"dispatcher"`
	Config       map[string]interface{} `toml:"config"`
	// Async wraps the dispatcher in a bounded background queue
	Async      bool `toml:"async"`
	BufferSize int  `toml:"buffer_size"`
}

// LoadTOML decodes a TOML document from r and resolves it against cat.
// Unknown keys and unknown component names are errors; nothing is
// returned unless the whole document resolves.
func LoadTOML(r io.Reader, cat *Catalog) (map[string]Descriptor, error) {
	var f File
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return f.Resolve(cat)
}

// ApplyTOML loads a TOML document and applies it to reg
func ApplyTOML(reg *logger.Registry, r io.Reader, cat *Catalog) error {
	descs, err := LoadTOML(r, cat)
	if err != nil {
		return err
	}
	return Apply(reg, descs)
}

// Resolve turns the decoded document into descriptors
func (f File) Resolve(cat *Catalog) (map[string]Descriptor, error) {
	names := make([]string, 0, len(f.Loggers))
	for name := range f.Loggers {
		names = append(names, name)
	}
	sort.Strings(names)

	descs := make(map[string]Descriptor, len(names))
	var errs error
	for _, name := range names {
		d, err := f.Loggers[name].resolve(cat)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("logger %q: %w", name, err))
			continue
		}
		descs[name] = d
	}
	if errs != nil {
		return nil, errs
	}
	return descs, nil
}

func (s LoggerSection) resolve(cat *Catalog) (Descriptor, error) {
	d := Descriptor{Level: s.Level, Propagate: s.Propagate}
	var errs error
	for i, ps := range s.Pipelines {
		p, err := ps.resolve(cat)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("pipeline %d: %w", i, err))
			continue
		}
		d.Pipelines = append(d.Pipelines, p)
	}
	if errs != nil {
		return Descriptor{}, errs
	}
	return d, d.Validate()
}

func (s PipelineSection) resolve(cat *Catalog) (*logger.Pipeline, error) {
	if s.Dispatcher == "" {
		return nil, fmt.Errorf("dispatcher is required: %w", core.ErrNilDispatcher)
	}

	var errs error
	pr, err := cat.Presenter(s.Presenter)
	errs = multierr.Append(errs, err)
	d, err := cat.Dispatcher(s.Dispatcher)
	errs = multierr.Append(errs, err)

	p := &logger.Pipeline{Presenter: pr, Config: core.Config(s.Config)}
	for _, name := range s.Transformers {
		t, err := cat.Transformer(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		p.Transformers = append(p.Transformers, t)
	}
	if errs != nil {
		return nil, errs
	}

	if s.Async {
		d = dispatcher.NewAsync(d, dispatcher.AsyncConfig{BufferSize: s.BufferSize})
	}
	p.Dispatcher = d
	return p, nil
}
