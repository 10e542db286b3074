package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/dispatcher"
	"github.com/philipp01105/hlog/logger"
	"github.com/philipp01105/hlog/presenter"
	"github.com/philipp01105/hlog/transform"
)

// newRegistry returns a registry at Debug level whose diagnostics are discarded
func newRegistry(coarse bool) *logger.Registry {
	return logger.NewRegistryBuilder().
		WithDefaultLevel(core.DebugLevel).
		WithErrorWriter(io.Discard).
		WithCoarseClock(coarse).
		Build()
}

func newTextPipeline() *logger.Pipeline {
	return logger.NewPipeline(dispatcher.NewWriter(io.Discard)).
		WithPresenter(presenter.NewText(presenter.TextConfig{Color: presenter.ColorNever}))
}

func newJSONPipeline() *logger.Pipeline {
	return logger.NewPipeline(dispatcher.NewWriter(io.Discard)).
		WithPresenter(presenter.NewJSON(presenter.Config{}))
}

func BenchmarkGetOrCreate(b *testing.B) {
	b.Run("cached", func(b *testing.B) {
		reg := newRegistry(false)
		reg.MustGet("app.http.handler")
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = reg.GetOrCreate("app.http.handler")
		}
	})

	b.Run("new", func(b *testing.B) {
		reg := newRegistry(false)
		names := make([]string, b.N)
		for i := range names {
			names[i] = fmt.Sprintf("app.n%d.leaf", i)
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = reg.GetOrCreate(names[i])
		}
	})
}

func BenchmarkEffectiveLevel(b *testing.B) {
	for _, depth := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			reg := newRegistry(false)
			l := reg.MustGet(strings.Repeat("n.", depth-1) + "n")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = l.EffectiveLevel()
			}
		})
	}
}

func BenchmarkDisabledLevel(b *testing.B) {
	reg := newRegistry(false)
	_ = reg.Root().SetLevel(core.ErrorLevel)
	_ = reg.Root().AddPipeline(newTextPipeline())
	l := reg.MustGet("app.db.pool")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Debug(logger.Context{"key": "value"}, "should be skipped %d", i)
	}
}

func BenchmarkInfoNoArgs(b *testing.B) {
	reg := newRegistry(false)
	_ = reg.Root().AddPipeline(logger.NewPipeline(newNoopDispatcher()))
	l := reg.MustGet("app")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info("info message")
	}
}

func BenchmarkFormattedMessage(b *testing.B) {
	reg := newRegistry(false)
	_ = reg.Root().AddPipeline(logger.NewPipeline(newNoopDispatcher()))
	l := reg.MustGet("app")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info("User %s logged in from %s (attempt %d)", "jane", "10.0.0.1", 3)
	}
}

func BenchmarkPresenters(b *testing.B) {
	pipelines := map[string]*logger.Pipeline{
		"message": logger.NewPipeline(dispatcher.NewWriter(io.Discard)),
		"text":    newTextPipeline(),
		"json":    newJSONPipeline(),
	}
	ctx := logger.Context{
		"method":  "GET",
		"path":    "/api/users",
		"status":  200,
		"latency": 150 * time.Millisecond,
	}

	for name, p := range pipelines {
		b.Run(name, func(b *testing.B) {
			reg := newRegistry(false)
			_ = reg.Root().AddPipeline(p)
			l := reg.MustGet("http")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				l.Info(ctx, "request handled")
			}
		})
	}
}

func BenchmarkPropagationDepth(b *testing.B) {
	for _, depth := range []int{1, 4, 8} {
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			reg := newRegistry(false)
			name := ""
			for d := 0; d < depth; d++ {
				if name != "" {
					name += "."
				}
				name += fmt.Sprintf("n%d", d)
				_ = reg.MustGet(name).AddPipeline(logger.NewPipeline(newNoopDispatcher()))
			}
			l := reg.MustGet(name)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				l.Info("propagated")
			}
		})
	}
}

func BenchmarkTransformerChain(b *testing.B) {
	reg := newRegistry(false)
	_ = reg.Root().AddPipeline(logger.NewPipeline(newNoopDispatcher()).WithTransformers(
		transform.StaticContext(core.Context{"service": "api", "region": "eu-west-1"}),
		transform.Redact("password"),
		transform.RecordID(""),
	))
	l := reg.MustGet("auth")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Warn(logger.Context{"user": "jane", "password": "hunter2"}, "login failed")
	}
}

func BenchmarkSyncVsAsync(b *testing.B) {
	b.Run("sync", func(b *testing.B) {
		reg := newRegistry(false)
		_ = reg.Root().AddPipeline(newTextPipeline())
		l := reg.MustGet("app")
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			l.Info("message")
		}
	})

	for _, policy := range []dispatcher.OverflowPolicy{dispatcher.DropNewest, dispatcher.DropOldest, dispatcher.Block} {
		b.Run("async/"+policy.String(), func(b *testing.B) {
			reg := newRegistry(false)
			async := dispatcher.NewAsync(dispatcher.NewWriter(io.Discard), dispatcher.AsyncConfig{
				BufferSize:     1024,
				OverflowPolicy: map[core.Level]dispatcher.OverflowPolicy{core.InfoLevel: policy},
			})
			_ = reg.Root().AddPipeline(logger.NewPipeline(async).
				WithPresenter(presenter.NewText(presenter.TextConfig{Color: presenter.ColorNever})))
			l := reg.MustGet("app")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				l.Info("message")
			}
			b.StopTimer()
			_ = reg.Close()
		})
	}
}

func BenchmarkMultiDispatcher(b *testing.B) {
	for _, n := range []int{1, 3, 5} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			ds := make([]dispatcher.Dispatcher, n)
			for i := range ds {
				ds[i] = dispatcher.NewWriter(io.Discard)
			}
			reg := newRegistry(false)
			_ = reg.Root().AddPipeline(logger.NewPipeline(dispatcher.NewMulti(ds...)))
			l := reg.MustGet("app")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				l.Info("fan out")
			}
		})
	}
}

func BenchmarkFileDispatcher(b *testing.B) {
	f, err := dispatcher.NewFile(dispatcher.FileConfig{Filename: filepath.Join(b.TempDir(), "bench.log")})
	if err != nil {
		b.Fatal(err)
	}
	reg := newRegistry(false)
	_ = reg.Root().AddPipeline(logger.NewPipeline(f).WithPresenter(presenter.NewJSON(presenter.Config{})))
	l := reg.MustGet("app")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info(logger.Context{"key": "value"}, "file log")
	}
	b.StopTimer()
	_ = reg.Close()
}

func BenchmarkZapBridge(b *testing.B) {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	zl := zap.New(zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.DebugLevel))
	reg := newRegistry(false)
	_ = reg.Root().AddPipeline(logger.NewPipeline(dispatcher.NewZap(zl)))
	l := reg.MustGet("app")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info(logger.Context{"key": "value"}, "bridged")
	}
}

func BenchmarkSlogBridge(b *testing.B) {
	reg := newRegistry(false)
	_ = reg.Root().AddPipeline(newJSONPipeline())
	l := slog.New(logger.NewSlogHandler(reg.MustGet("legacy")))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info("slog message", "key", "value", "count", 42)
	}
}

func BenchmarkCoarseClock(b *testing.B) {
	for _, coarse := range []bool{false, true} {
		b.Run(fmt.Sprintf("coarse=%t", coarse), func(b *testing.B) {
			reg := newRegistry(coarse)
			_ = reg.Root().AddPipeline(newJSONPipeline())
			l := reg.MustGet("app")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				l.Info("timestamped")
			}
		})
	}
}

func BenchmarkParallel(b *testing.B) {
	reg := newRegistry(false)
	_ = reg.Root().AddPipeline(newJSONPipeline())
	l := reg.MustGet("app.worker")

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Info(logger.Context{"worker": true}, "parallel message")
		}
	})
}
