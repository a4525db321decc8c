package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopStoreHooks{}
	s.OnSave(ctx, "lhr-1", 1024, time.Second, nil)
	s.OnLoad(ctx, "/tmp/reports", 3, nil)
	s.OnClear(ctx, "/tmp/reports", 6, nil)
	s.OnRender(ctx, "lhr-1", time.Millisecond, nil)

	r := NoopRewriteHooks{}
	r.OnRewrite("http://localhost/", "https://example.com/", 1, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := Rewrite().(NoopRewriteHooks); !ok {
		t.Error("Rewrite() should return NoopRewriteHooks by default")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customRewrite := &testRewriteHooks{}
	SetRewriteHooks(customRewrite)
	if Rewrite() != customRewrite {
		t.Error("SetRewriteHooks should set custom hooks")
	}

	Reset()
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Reset() should restore NoopStoreHooks")
	}
	if _, ok := Rewrite().(NoopRewriteHooks); !ok {
		t.Error("Reset() should restore NoopRewriteHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testStoreHooks{}
	SetStoreHooks(custom)
	SetStoreHooks(nil)
	if Store() != custom {
		t.Error("SetStoreHooks(nil) should keep the previous hooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testStoreHooks{}
	SetStoreHooks(custom)

	Store().OnSave(context.Background(), "lhr-1", 10, time.Millisecond, nil)
	Store().OnSave(context.Background(), "lhr-2", 10, time.Millisecond, nil)
	if custom.saves != 2 {
		t.Errorf("saves = %d, want 2", custom.saves)
	}
}

type testStoreHooks struct {
	NoopStoreHooks
	saves int
}

func (h *testStoreHooks) OnSave(context.Context, string, int, time.Duration, error) { h.saves++ }

type testRewriteHooks struct {
	NoopRewriteHooks
}
