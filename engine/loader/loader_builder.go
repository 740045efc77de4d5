package loader

import (
	"github.com/mjolnir-gfx/mjolnir/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the worker count for concurrent model loading.
//
// Parameters:
//   - workers: the number of load workers
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(workers int) LoaderBuilderOption {
	return func(l *loader) {
		if workers > 0 {
			l.workers = workers
		}
	}
}

// WithModel pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, m *model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = m
	}
}
