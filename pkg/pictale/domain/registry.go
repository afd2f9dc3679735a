package domain

import (
	"context"
	"errors"
	"sync"
)

var errIncompleteModels = errors.New("model loader returned incomplete models")

// ModelRegistry lazily loads the models and memoizes the outcome, successful or not, so that every run within the
// process reuses the same handles and a failed load is never silently retried. Reset clears the memoized outcome.
type ModelRegistry struct {
	mutex  sync.Mutex
	loader ModelLoader
	loaded bool
	models *Models
	err    error
}

func NewModelRegistry(loader ModelLoader) *ModelRegistry {
	return &ModelRegistry{
		loader: loader,
	}
}

// Handles returns the memoized models, loading them on the first call. Concurrent first calls wait for a single
// load. Errors are of type *ModelLoadError.
func (r *ModelRegistry) Handles(ctx context.Context) (*Models, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.loaded {
		return r.models, r.err
	}
	models, err := r.loader.Load(ctx)
	if err == nil && (models == nil || models.Caption == nil || models.Story == nil) {
		err = errIncompleteModels
	}
	if err != nil {
		// The caller went away; this says nothing about the models themselves.
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil, &ModelLoadError{Cause: err}
		}
		r.err = &ModelLoadError{Cause: err}
	} else {
		r.models = models
	}
	r.loaded = true
	return r.models, r.err
}

// Reset forgets the memoized outcome: the next call to Handles loads the models again.
func (r *ModelRegistry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.loaded = false
	r.models = nil
	r.err = nil
}
