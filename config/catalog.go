package config

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/philipp01105/hlog/dispatcher"
	"github.com/philipp01105/hlog/presenter"
	"github.com/philipp01105/hlog/transform"
)

// FilePrefix selects an append-only file dispatcher, as in "file:/var/log/app.log"
const FilePrefix = "file:"

// Catalog maps the component names used in configuration files to
// component instances
type Catalog struct {
	mu           sync.Mutex
	presenters   map[string]presenter.Presenter
	transformers map[string]transform.Transformer
	dispatchers  map[string]dispatcher.Dispatcher
	files        map[string]*dispatcher.File
}

// NewCatalog creates a catalog holding the built-in components:
// presenters "message", "text" and "json"; dispatchers "stdout",
// "stderr" and "discard"; transformer "record_id".
func NewCatalog() *Catalog {
	return &Catalog{
		presenters: map[string]presenter.Presenter{
			"message": presenter.Message{},
			"text":    presenter.NewText(presenter.TextConfig{Config: presenter.Config{IncludeCaller: true}}),
			"json":    presenter.NewJSON(presenter.Config{IncludeCaller: true}),
		},
		transformers: map[string]transform.Transformer{
			"record_id": transform.RecordID(""),
		},
		dispatchers: map[string]dispatcher.Dispatcher{
			"stdout":  dispatcher.Stdout(),
			"stderr":  dispatcher.Stderr(),
			"discard": dispatcher.Discard,
		},
		files: make(map[string]*dispatcher.File),
	}
}

// RegisterPresenter makes p available under name
func (c *Catalog) RegisterPresenter(name string, p presenter.Presenter) *Catalog {
	c.mu.Lock()
	c.presenters[name] = p
	c.mu.Unlock()
	return c
}

// RegisterTransformer makes t available under name
func (c *Catalog) RegisterTransformer(name string, t transform.Transformer) *Catalog {
	c.mu.Lock()
	c.transformers[name] = t
	c.mu.Unlock()
	return c
}

// RegisterDispatcher makes d available under name
func (c *Catalog) RegisterDispatcher(name string, d dispatcher.Dispatcher) *Catalog {
	c.mu.Lock()
	c.dispatchers[name] = d
	c.mu.Unlock()
	return c
}

// Presenter looks up a presenter. The empty name yields nil, which
// pipelines treat as the plain message presenter.
func (c *Catalog) Presenter(name string) (presenter.Presenter, error) {
	if name == "" {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.presenters[name]
	if !ok {
		return nil, fmt.Errorf("presenter %q: %w", name, ErrUnknownComponent)
	}
	return p, nil
}

// Transformer looks up a transformer
func (c *Catalog) Transformer(name string) (transform.Transformer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.transformers[name]
	if !ok {
		return nil, fmt.Errorf("transformer %q: %w", name, ErrUnknownComponent)
	}
	return t, nil
}

// Dispatcher looks up a dispatcher. Names with FilePrefix open the file
// once per catalog; later lookups of the same path share it.
func (c *Catalog) Dispatcher(name string) (dispatcher.Dispatcher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if path, ok := strings.CutPrefix(name, FilePrefix); ok {
		if f, ok := c.files[path]; ok {
			return f, nil
		}
		f, err := dispatcher.NewFile(dispatcher.FileConfig{Filename: path})
		if err != nil {
			return nil, fmt.Errorf("dispatcher %q: %w", name, err)
		}
		c.files[path] = f
		return f, nil
	}

	d, ok := c.dispatchers[name]
	if !ok {
		return nil, fmt.Errorf("dispatcher %q: %w", name, ErrUnknownComponent)
	}
	return d, nil
}

// Close closes the files opened through the catalog and every
// registered dispatcher implementing io.Closer
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for path, f := range c.files {
		err = multierr.Append(err, f.Close())
		delete(c.files, path)
	}
	for _, d := range c.dispatchers {
		if closer, ok := d.(io.Closer); ok {
			err = multierr.Append(err, closer.Close())
		}
	}
	return err
}
