package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGestureHooks{}
	g.OnGestureStart(ctx, "ops", "drag", "cpu")
	g.OnGestureUpdate(ctx, "ops", "drag", "cpu", 3, true, time.Millisecond)
	g.OnGestureEnd(ctx, "ops", "drag", "cpu", true, nil)

	s := NoopStoreHooks{}
	s.OnStoreOp(ctx, "redis", "put", time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "png")
	c.OnCacheMiss(ctx, "png")
	c.OnCacheSet(ctx, "png", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/boards")
	h.OnResponse(ctx, "GET", "/boards", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Gesture().(NoopGestureHooks); !ok {
		t.Error("Gesture() should return NoopGestureHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customGesture := &testGestureHooks{}
	SetGestureHooks(customGesture)
	if Gesture() != customGesture {
		t.Error("SetGestureHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Gesture().(NoopGestureHooks); !ok {
		t.Error("Reset() should restore NoopGestureHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGestureHooks{}
	SetGestureHooks(custom)
	SetGestureHooks(nil)
	if Gesture() != custom {
		t.Error("SetGestureHooks(nil) should keep existing hooks")
	}
	Reset()
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testGestureHooks{}
	SetGestureHooks(h)
	ctx := context.Background()
	Gesture().OnGestureStart(ctx, "ops", "resize", "cpu")
	Gesture().OnGestureUpdate(ctx, "ops", "resize", "cpu", 2, true, 0)
	Gesture().OnGestureEnd(ctx, "ops", "resize", "cpu", false, nil)

	if h.starts != 1 || h.updates != 1 || h.ends != 1 {
		t.Errorf("events = %d/%d/%d, want 1/1/1", h.starts, h.updates, h.ends)
	}
}

type testGestureHooks struct {
	starts, updates, ends int
}

func (h *testGestureHooks) OnGestureStart(context.Context, string, string, string) { h.starts++ }
func (h *testGestureHooks) OnGestureUpdate(context.Context, string, string, string, int, bool, time.Duration) {
	h.updates++
}
func (h *testGestureHooks) OnGestureEnd(context.Context, string, string, string, bool, error) {
	h.ends++
}

type testStoreHooks struct{}

func (*testStoreHooks) OnStoreOp(context.Context, string, string, time.Duration, error) {}

type testCacheHooks struct{}

func (*testCacheHooks) OnCacheHit(context.Context, string)      {}
func (*testCacheHooks) OnCacheMiss(context.Context, string)     {}
func (*testCacheHooks) OnCacheSet(context.Context, string, int) {}

type testHTTPHooks struct{}

func (*testHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (*testHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
