package logger

import (
	"errors"
	"path/filepath"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/dispatcher"
)

func TestRegistry_GetOrCreateBuildsAncestors(t *testing.T) {
	reg := NewRegistry()

	abc, err := reg.GetOrCreate("a.b.c")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	ab := abc.Parent()
	if ab == nil || ab.Name() != "a.b" {
		t.Fatalf("Expected parent a.b, got %v", ab)
	}
	a := ab.Parent()
	if a == nil || a.Name() != "a" {
		t.Fatalf("Expected grandparent a, got %v", a)
	}
	if a.Parent() != reg.Root() {
		t.Error("Expected top-level logger to hang off the root")
	}
	if reg.Root().Parent() != nil {
		t.Error("Root must have no parent")
	}

	for _, name := range []string{"a", "a.b", "a.b.c"} {
		again, _ := reg.GetOrCreate(name)
		if again == nil || again.Name() != name {
			t.Errorf("Expected cached logger %q, got %v", name, again)
		}
	}
	if again, _ := reg.GetOrCreate("a.b.c"); again != abc {
		t.Error("Repeated GetOrCreate must return the identical instance")
	}
	if again, _ := reg.GetOrCreate("a"); again != a {
		t.Error("Ancestor created implicitly must be the cached instance")
	}

	want := []string{RootName, "a", "a.b", "a.b.c"}
	if got := reg.Loggers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Loggers() = %v, want %v", got, want)
	}
}

func TestRegistry_NewLoggerDefaults(t *testing.T) {
	reg := NewRegistry()
	l := reg.MustGet("svc.http")

	if l.Level() != NotSet {
		t.Errorf("Expected NotSet, got %v", l.Level())
	}
	if !l.Propagate() {
		t.Error("Expected propagate=true by default")
	}
	if len(l.Pipelines()) != 0 {
		t.Error("Expected no pipelines by default")
	}
	if reg.Root().Level() != WarnLevel {
		t.Errorf("Expected root to start at the default level WARN, got %v", reg.Root().Level())
	}
}

func TestRegistry_CacheHitIgnoresChanges(t *testing.T) {
	reg := NewRegistry()
	l := reg.MustGet("cache")
	_ = l.SetLevel(ErrorLevel)

	again := reg.MustGet("cache")
	if again.Level() != ErrorLevel {
		t.Errorf("Expected cached logger to keep its level, got %v", again.Level())
	}
}

func TestRegistry_InvalidNames(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"", "_internal", "_root.child", "a..b", ".a", "a."} {
		t.Run(name, func(t *testing.T) {
			_, err := reg.GetOrCreate(name)
			if !errors.Is(err, core.ErrInvalidName) {
				t.Errorf("Expected ErrInvalidName for %q, got %v", name, err)
			}
			var ne *core.NameError
			if !errors.As(err, &ne) || ne.Name != name {
				t.Errorf("Expected NameError carrying %q, got %v", name, err)
			}
		})
	}

	root, err := reg.GetOrCreate(RootName)
	if err != nil {
		t.Fatalf("Root name must be accepted, got %v", err)
	}
	if root != reg.Root() {
		t.Error("Expected root name to resolve to the root logger")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected MustGet to panic on an invalid name")
		}
	}()
	reg.MustGet("")
}

func TestRegistry_Reset(t *testing.T) {
	reg := NewRegistry()
	old := reg.MustGet("a.b")
	oldRoot := reg.Root()

	reg.Reset()

	if reg.Root() == oldRoot {
		t.Error("Expected a fresh root after Reset")
	}
	if reg.MustGet("a.b") == old {
		t.Error("Expected a fresh logger after Reset")
	}
	if got := reg.Loggers(); len(got) != 3 {
		t.Errorf("Expected root, a, a.b after re-creation, got %v", got)
	}
}

func TestRegistry_DetachedLoggerKeepsWorking(t *testing.T) {
	reg, diag := newTestRegistry()
	var rec recorder
	old := reg.MustGet("a.b.c")
	_ = old.AddPipeline(NewPipeline(&rec))

	reg.Reset()

	if err := old.Log(ErrorLevel, "hello"); err != nil {
		t.Fatalf("Log() on a detached logger error = %v", err)
	}
	if msgs := rec.messages(); len(msgs) != 1 || msgs[0] != "hello" {
		t.Errorf("Expected message on detached logger, got %q", msgs)
	}
	if got := old.EffectiveLevel(); got != DebugLevel {
		t.Errorf("EffectiveLevel() = %v, want DEBUG from the old root", got)
	}
	if diag.Len() != 0 {
		t.Errorf("Unexpected diagnostics: %s", diag.String())
	}

	reg.Reset()
	reg.Reset()
	if entries := old.EffectiveDispatchEntries(); len(entries) != 1 {
		t.Errorf("Expected 1 entry after repeated resets, got %d", len(entries))
	}
}

func TestRegistry_CloseClosesDispatchersOnce(t *testing.T) {
	reg := NewRegistry()
	f, err := dispatcher.NewFile(dispatcher.FileConfig{Filename: filepath.Join(t.TempDir(), "x.log")})
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	_ = reg.Root().AddPipeline(NewPipeline(f))
	_ = reg.MustGet("a").AddPipeline(NewPipeline(f))
	_ = reg.MustGet("a").AddPipeline(NewPipeline(dispatcher.Discard))

	if err := reg.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := f.Dispatch("x", core.NewRecord(reg.now(), InfoLevel, "a", "x", nil, nil), nil); !errors.Is(err, dispatcher.ErrClosed) {
		t.Errorf("Expected file dispatcher to be closed, got %v", err)
	}
}

func TestRegistry_BuilderOptions(t *testing.T) {
	reg := NewRegistryBuilder().
		WithDefaultLevel(Level(3)).
		WithErrorWriter(nil).
		Build()
	if reg.DefaultLevel() != WarnLevel {
		t.Errorf("Expected invalid default level to be ignored, got %v", reg.DefaultLevel())
	}
	if reg.errWriter == nil {
		t.Error("Expected nil error writer to be ignored")
	}
}

func TestRegistry_CoarseClock(t *testing.T) {
	var rec recorder
	reg := NewRegistryBuilder().
		WithDefaultLevel(DebugLevel).
		WithCoarseClock(true).
		Build()
	_ = reg.Root().AddPipeline(NewPipeline(&rec))

	before := time.Now().Add(-time.Second)
	reg.MustGet("clock").Info("tick")

	got := rec.last()
	if got == nil || got.Time.IsZero() {
		t.Fatal("Expected a timestamped record")
	}
	if got.Time.Before(before) {
		t.Errorf("Coarse timestamp too old: %v", got.Time)
	}
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	reg, diag := newTestRegistry()
	var rec recorder
	_ = reg.Root().AddPipeline(NewPipeline(&rec))

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				l := reg.MustGet(fmt.Sprintf("svc.w%d.n%d", w%3, i%5))
				if i%10 == 0 {
					_ = l.SetLevel(DebugLevel)
					_ = l.AddPipeline(NewPipeline(dispatcher.Discard))
				}
				l.Info("message %d", i)
			}
		}(w)
	}
	wg.Wait()

	if got := len(rec.messages()); got != workers*perWorker {
		t.Errorf("Expected %d root deliveries, got %d", workers*perWorker, got)
	}
	if diag.Len() != 0 {
		t.Errorf("Unexpected diagnostics: %s", diag.String())
	}
}
