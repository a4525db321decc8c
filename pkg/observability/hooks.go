// Package observability provides hooks for metrics, tracing, and logging.
//
// The artifact store and the URL rewriter emit events through the hooks
// registered here. Nothing is recorded by default; the CLI registers a
// logging implementation when --verbose is set, and other embedders can
// register their own backend at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    observability.SetRewriteHooks(&myRewriteHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Store().OnSave(ctx, id, len(raw), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from the artifact store.
type StoreHooks interface {
	// OnSave records a saved result and its rendered report.
	OnSave(ctx context.Context, id string, size int, duration time.Duration, err error)

	// OnLoad records an enumeration of saved results.
	OnLoad(ctx context.Context, location string, count int, err error)

	// OnClear records a clear of saved results.
	OnClear(ctx context.Context, location string, removed int, err error)

	// OnRender records a render of a single result.
	OnRender(ctx context.Context, id string, duration time.Duration, err error)
}

// =============================================================================
// Rewrite Hooks
// =============================================================================

// RewriteHooks receives events from the URL rewriter.
type RewriteHooks interface {
	// OnRewrite records a rewrite. to is empty when err is non-nil.
	OnRewrite(from, to string, rules int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, int, time.Duration, error) {}
func (NoopStoreHooks) OnLoad(context.Context, string, int, error)                {}
func (NoopStoreHooks) OnClear(context.Context, string, int, error)               {}
func (NoopStoreHooks) OnRender(context.Context, string, time.Duration, error)    {}

// NoopRewriteHooks is a no-op implementation of RewriteHooks.
type NoopRewriteHooks struct{}

func (NoopRewriteHooks) OnRewrite(string, string, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storeHooks   StoreHooks   = NoopStoreHooks{}
	rewriteHooks RewriteHooks = NoopRewriteHooks{}
	hooksMu      sync.RWMutex
)

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetRewriteHooks registers custom rewrite hooks.
func SetRewriteHooks(h RewriteHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		rewriteHooks = h
	}
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Rewrite returns the registered rewrite hooks.
func Rewrite() RewriteHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return rewriteHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storeHooks = NoopStoreHooks{}
	rewriteHooks = NoopRewriteHooks{}
}
