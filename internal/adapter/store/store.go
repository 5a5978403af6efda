package store

import "go.scopelab.io/focus-api/internal/domain"

// PresetLoader is the interface for loading objective presets.
type PresetLoader interface {
	// LoadObjective loads the preset for a named objective (e.g. "apo100x-oil").
	LoadObjective(name string) (domain.ObjectivePreset, error)

	// ListObjectives returns the available preset names.
	ListObjectives() ([]string, error)
}

// IndexLoader resolves a refractive index for a named medium at a vacuum
// wavelength in nanometers.
type IndexLoader interface {
	IndexAt(medium string, lambdaNm float64) (float64, error)

	// ListMedia returns the media the loader can resolve.
	ListMedia() ([]string, error)
}
