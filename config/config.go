package config

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/logger"
)

// Descriptor is the declarative configuration of one logger
type Descriptor struct {
	// Level is left unchanged when nil; NotSet makes the logger inherit
	Level *core.Level
	// Propagate is left unchanged when nil
	Propagate *bool
	// Pipelines are appended after any already attached
	Pipelines []*logger.Pipeline
}

// ErrUnknownComponent is returned for a component name missing from the Catalog
var ErrUnknownComponent = errors.New("unknown component")

// Validate checks a descriptor without touching any registry
func (d Descriptor) Validate() error {
	var err error
	if d.Level != nil && !d.Level.Settable() {
		err = multierr.Append(err, &core.LevelError{Level: *d.Level})
	}
	for i, p := range d.Pipelines {
		if p == nil || p.Dispatcher == nil {
			err = multierr.Append(err, fmt.Errorf("pipeline %d: %w", i, core.ErrNilDispatcher))
		}
	}
	return err
}

// Apply configures reg from descs. Every descriptor is validated before
// the first one is applied, so an invalid map leaves reg untouched.
// Loggers are configured in name order, parents before children.
func Apply(reg *logger.Registry, descs map[string]Descriptor) error {
	names := make([]string, 0, len(descs))
	for name := range descs {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	for _, name := range names {
		if err := descs[name].Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("logger %q: %w", name, err))
		}
	}
	if errs != nil {
		return errs
	}

	loggers := make([]*logger.Logger, len(names))
	for i, name := range names {
		l, err := reg.GetOrCreate(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		loggers[i] = l
	}
	if errs != nil {
		return errs
	}

	for i, name := range names {
		d, l := descs[name], loggers[i]
		if d.Level != nil {
			if err := l.SetLevel(*d.Level); err != nil {
				return err
			}
		}
		if d.Propagate != nil {
			l.SetPropagate(*d.Propagate)
		}
		for _, p := range d.Pipelines {
			if err := l.AddPipeline(p); err != nil {
				return err
			}
		}
	}
	return nil
}
