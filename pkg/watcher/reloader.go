package watcher

import (
	"context"
	"log"
	"sync"

	"github.com/philipparndt/gosnap/pkg/loader"
	"github.com/philipparndt/gosnap/pkg/snap"
)

// LoadFunc loads a model from its source path
type LoadFunc func(ctx context.Context, path string) (*loader.Model, error)

// Reloader reloads a model on change. Face indices are only meaningful for one
// mesh lifetime, so the circle cache is cleared on every successful reload.
type Reloader struct {
	load     LoadFunc
	cache    *snap.Cache
	mu       sync.Mutex
	loading  bool
	pending  bool
	OnReload func(*loader.Model)
	OnError  func(error)
}

// NewReloader creates a reloader clearing cache after each load
func NewReloader(cache *snap.Cache, load LoadFunc) *Reloader {
	if load == nil {
		load = loader.Load
	}
	return &Reloader{load: load, cache: cache}
}

// Reload loads path. A call arriving while a load is running marks the model
// as changed and returns false; the running call then loads again once it is
// done. It reports whether this call ran the loads.
func (r *Reloader) Reload(ctx context.Context, path string) bool {
	r.mu.Lock()
	if r.loading {
		r.pending = true
		r.mu.Unlock()
		return false
	}
	r.loading = true
	r.mu.Unlock()

	for {
		r.loadOnce(ctx, path)

		r.mu.Lock()
		if !r.pending || ctx.Err() != nil {
			r.loading = false
			r.pending = false
			r.mu.Unlock()
			return true
		}
		r.pending = false
		r.mu.Unlock()
	}
}

func (r *Reloader) loadOnce(ctx context.Context, path string) {
	log.Printf("reloading %s", path)
	model, err := r.load(ctx, path)
	if err != nil {
		log.Printf("reload failed: %v", err)
		if r.OnError != nil {
			r.OnError(err)
		}
		return
	}

	if r.cache != nil {
		r.cache.Clear()
	}
	log.Printf("reloaded %s: %d triangles", path, model.Scene.TriangleCount())
	if r.OnReload != nil {
		r.OnReload(model)
	}
}

// Watch loads source, then watches its files and reloads on change until the
// context is done
func (r *Reloader) Watch(ctx context.Context, source string, fw *FileWatcher) error {
	model, err := r.load(ctx, source)
	if err != nil {
		return err
	}
	if r.OnReload != nil {
		r.OnReload(model)
	}

	err = fw.Watch(model.Files, func(changed string) {
		log.Printf("file changed: %s", changed)
		r.Reload(ctx, source)
	})
	if err != nil {
		return err
	}
	return fw.Run(ctx)
}
