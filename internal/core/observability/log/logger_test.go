package log

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelNone, ParseLevel("off"))
	assert.Equal(t, LevelInfo, ParseLevel("whatever"))
}

func TestFieldsReachZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewWithCore(core).With(String("component", "test"))

	l.Info("registered",
		String("id", "whale"),
		Int("count", 3),
		Bool("ok", true),
		Float64("delta", 0.5),
		Duration("step", 16*time.Millisecond),
		Error(errors.New("boom")),
		Any("size", []int{1, 2}))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "test", ctx["component"])
		assert.Equal(t, "whale", ctx["id"])
		assert.Equal(t, int64(3), ctx["count"])
		assert.Equal(t, true, ctx["ok"])
		assert.Equal(t, 0.5, ctx["delta"])
		assert.Equal(t, 16*time.Millisecond, ctx["step"])
		assert.Equal(t, "boom", ctx["error"])
	}
}

func TestLogLevels(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	l := NewWithCore(core)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown")
	l.Log(LevelError, "shown")
	l.Log(LevelNone, "never")

	assert.Equal(t, 3, logs.Len())
}

func TestSetLevel(t *testing.T) {
	l := NewDevelopment(LevelInfo)
	assert.Equal(t, LevelInfo, l.GetLevel())
	l.SetLevel(LevelError)
	assert.Equal(t, LevelError, l.GetLevel())

	assert.NotNil(t, Provide())
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Error("dropped")
	assert.Equal(t, LevelNone, l.GetLevel())
	assert.Same(t, l, l.WithContext(context.Background()))
}

func TestProvideConcurrentWithBuild(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = NewDevelopment(LevelError)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, Provide())
		}()
	}
	wg.Wait()

	assert.Same(t, Provide(), Provide())
}
