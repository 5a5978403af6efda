// Package dispersion provides access to sampled refractive-index curves
// stored as per-medium NetCDF files.
package dispersion

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fhs/go-netcdf/netcdf"

	"go.scopelab.io/focus-api/internal/adapter/interp"
)

const fileSuffix = "_dispersion.nc"

// Store resolves refractive indices from NetCDF dispersion tables, one file
// per medium, named "<medium>_dispersion.nc".
type Store struct {
	dataDir string
	cache   map[string]*interp.Curve // Loaded curves by medium.
	mu      sync.RWMutex             // Protects cache.
}

// NewStore creates a new NetCDF dispersion store.
func NewStore(dataDir string) *Store {
	return &Store{
		dataDir: dataDir,
		cache:   make(map[string]*interp.Curve),
	}
}

// IndexAt resolves the refractive index of a medium at a vacuum wavelength
// in nanometers, linearly interpolating the stored curve.
func (s *Store) IndexAt(medium string, lambdaNm float64) (float64, error) {
	curve, err := s.loadMedium(medium)
	if err != nil {
		return 0, err
	}

	n, err := curve.At(lambdaNm)
	if err != nil {
		return 0, fmt.Errorf("failed to interpolate %s at %.1f nm: %w", medium, lambdaNm, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("dispersion table for %s yields non-physical index %g at %.1f nm", medium, n, lambdaNm)
	}
	return n, nil
}

// ListMedia returns the media available in the data directory.
func (s *Store) ListMedia() ([]string, error) {
	if _, err := os.Stat(s.dataDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("dispersion data directory does not exist: %s", s.dataDir)
	}

	media := make(map[string]bool)
	err := filepath.WalkDir(s.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasSuffix(name, fileSuffix) {
			media[strings.TrimSuffix(name, fileSuffix)] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan dispersion directory: %w", err)
	}

	names := make([]string, 0, len(media))
	for name := range media {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// loadMedium reads a medium's curve, using the cache when possible.
func (s *Store) loadMedium(medium string) (*interp.Curve, error) {
	key := strings.ToLower(strings.TrimSpace(medium))

	s.mu.RLock()
	curve, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return curve, nil
	}

	path := filepath.Join(s.dataDir, key+fileSuffix)
	curve, err := loadDispersionCurve(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dispersion table for %s: %w", medium, err)
	}

	s.mu.Lock()
	s.cache[key] = curve
	s.mu.Unlock()

	return curve, nil
}

// loadDispersionCurve reads wavelength and index arrays from a NetCDF file.
func loadDispersionCurve(path string) (*interp.Curve, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	// Try multiple variable name patterns.
	wavelengthNames := []string{"wavelength", "lambda", "wl"}
	indexNames := []string{"n", "index", "refractive_index"}

	wavelengths, err := readFirstVar(nc, wavelengthNames)
	if err != nil {
		return nil, fmt.Errorf("wavelength variable not found (tried: %v): %w", wavelengthNames, err)
	}
	indices, err := readFirstVar(nc, indexNames)
	if err != nil {
		return nil, fmt.Errorf("index variable not found (tried: %v): %w", indexNames, err)
	}

	curve := &interp.Curve{X: wavelengths, Values: indices}
	if err := curve.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dispersion curve in %s: %w", path, err)
	}
	return curve, nil
}

func readFirstVar(nc netcdf.Dataset, names []string) ([]float64, error) {
	var lastErr error
	for _, name := range names {
		v, err := nc.Var(name)
		if err != nil {
			lastErr = err
			continue
		}
		data, err := readFloat64Var(v)
		if err != nil {
			lastErr = err
			continue
		}
		return data, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate variable present")
	}
	return nil, lastErr
}

// readFloat64Var reads a 1D variable as float64 regardless of on-disk type.
func readFloat64Var(v netcdf.Var) ([]float64, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1D variable, got %dD", len(dims))
	}
	length, err := dims[0].Len()
	if err != nil {
		return nil, fmt.Errorf("failed to get length: %w", err)
	}

	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get type: %w", err)
	}

	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, length)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		raw := make([]float32, length)
		if err := v.ReadFloat32s(raw); err != nil {
			return nil, err
		}
		data := make([]float64, length)
		for i, x := range raw {
			data[i] = float64(x)
		}
		return data, nil
	case netcdf.INT:
		raw := make([]int32, length)
		if err := v.ReadInt32s(raw); err != nil {
			return nil, err
		}
		data := make([]float64, length)
		for i, x := range raw {
			data[i] = float64(x)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported NetCDF variable type %v", t)
	}
}
